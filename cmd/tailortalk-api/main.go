package main

import (
	"context"

	"tailortalk/internal/app"
	"tailortalk/internal/modkit"
	"tailortalk/internal/modkit/httpkit"
	"tailortalk/internal/platform/config"
	"tailortalk/internal/platform/logger"
	phttp "tailortalk/internal/platform/net/http"
	"tailortalk/internal/services/assistant"
)

func main() {
	root := config.New()
	l := logger.Get()
	ctx := context.Background()

	svc, cleanup, err := app.Build(ctx, root)
	if err != nil {
		l.Panic().Err(err).Msg("assistant wiring failed")
	}
	defer cleanup()

	// http server (reads CORE_API_PORT)
	apiCfg := root.Prefix("CORE_API_")
	srv := phttp.NewServer(apiCfg)

	r := srv.Router()
	r.Use(httpkit.CommonStack()...)

	// POST /api/v1/assistant/chat
	mod := assistant.NewModule(modkit.Deps{Log: *l, Cfg: apiCfg}, svc)
	httpkit.MountAPIV1(r, nil, mod.MountRoutes)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
