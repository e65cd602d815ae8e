// Package app wires the assistant pipeline from environment config.
// Both binaries (HTTP API and REPL) build the same stack here.
package app

import (
	"context"
	"time"

	"tailortalk/internal/adapters/llm"
	"tailortalk/internal/core/intent"
	"tailortalk/internal/core/rulepack"
	"tailortalk/internal/core/timeparse"
	"tailortalk/internal/platform/config"
	perr "tailortalk/internal/platform/errors"
	"tailortalk/internal/platform/logger"
	"tailortalk/internal/services/assistant"
	"tailortalk/internal/services/calendar"
	"tailortalk/internal/store/pg"
)

// Build assembles the assistant service from the process environment.
// The returned cleanup releases whatever backend was opened and is safe
// to call exactly once.
func Build(ctx context.Context, root config.Conf) (*assistant.Service, func(), error) {
	l := logger.Get()
	asstCfg := root.Prefix("ASSISTANT_")

	loc := location(asstCfg)
	times := timeparse.New(timeparse.Options{Location: loc})

	store, cleanup, err := openStore(ctx, root)
	if err != nil {
		return nil, nil, err
	}

	calSvc := calendar.New(store, logger.Named("calendar"), calendar.Options{
		Label:    asstCfg.MayString("EVENT_LABEL", calendar.DefaultLabel),
		ListMax:  asstCfg.MayInt("LIST_MAX", 5),
		Location: loc,
	})

	pack, err := rulepack.Load()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	probe := func(text string) bool {
		_, ok := times.Extract(text)
		return ok
	}
	cls := intent.New(pack, probe)

	svc := assistant.NewService(cls, times, calSvc, logger.Named("assistant"))

	llmCfg := root.Prefix("SERVICE_LLM_")
	if base := llmCfg.MayString("BASE_URL", ""); base != "" {
		svc.WithSmalltalk(llm.New(llm.Options{
			BaseURL: base,
			APIKey:  llmCfg.MayString("API_KEY", "ollama"),
			Model:   llmCfg.MayString("MODEL", llm.DefaultModel),
		}))
		l.Info().Str("base_url", base).Msg("smalltalk fallback enabled")
	}

	return svc, cleanup, nil
}

func location(cfg config.Conf) *time.Location {
	name := cfg.MayString("TIMEZONE", "Asia/Kolkata")
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Get().Warn().Str("timezone", name).Err(err).Msg("falling back to default location")
		return timeparse.DefaultLocation()
	}
	return loc
}

// openStore selects the calendar backend from SERVICE_CAL_BACKEND:
// memory (default), postgres, or google.
func openStore(ctx context.Context, root config.Conf) (calendar.Store, func(), error) {
	backend := root.Prefix("SERVICE_CAL_").MayString("BACKEND", "memory")
	noop := func() {}

	switch backend {
	case "memory":
		return calendar.NewMemStore(), noop, nil

	case "postgres":
		db, err := pg.Open(ctx, root.Prefix("SERVICE_PGSQL_"))
		if err != nil {
			return nil, nil, err
		}
		store, err := calendar.NewPGStore(ctx, db.Pool)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db.Close, nil

	case "google":
		gcalCfg := root.Prefix("SERVICE_GCAL_")
		store, err := calendar.NewGCalStore(ctx, calendar.GCalOptions{
			ClientID:     gcalCfg.MustString("CLIENT_ID"),
			ClientSecret: gcalCfg.MustString("CLIENT_SECRET"),
			RefreshToken: gcalCfg.MustString("REFRESH_TOKEN"),
			CalendarID:   gcalCfg.MayString("CALENDAR_ID", "primary"),
		})
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	}
	return nil, nil, perr.InvalidArgf("app: unknown calendar backend %q", backend)
}
