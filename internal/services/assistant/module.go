package assistant

import (
	"tailortalk/internal/modkit"
	"tailortalk/internal/modkit/httpkit"
	"tailortalk/internal/platform/logger"
)

// Module exposes the assistant over HTTP.
type Module struct {
	built modkit.Built
	svc   *Service
	log   logger.Logger
}

// NewModule builds the assistant module. By default it mounts
// POST /assistant/chat relative to the router it is given.
func NewModule(deps modkit.Deps, svc *Service, opts ...modkit.Option) *Module {
	base := append([]modkit.Option{
		modkit.WithName("assistant"),
		modkit.WithPrefix("/assistant/chat"),
	}, opts...)
	return &Module{built: modkit.Build(base...), svc: svc, log: deps.Log}
}

// Name identifies the module in logs.
func (m *Module) Name() string { return m.built.Name }

// MountRoutes registers the chat endpoint.
func (m *Module) MountRoutes(r modkit.Router) {
	mount := func(sub modkit.Router) {
		if len(m.built.Mw) > 0 {
			sub.Use(m.built.Mw...)
		}
		httpkit.PostJSON(sub, "/", m.handleChat)
	}
	if m.built.Prefix == "" {
		mount(r)
	} else {
		r.Route(m.built.Prefix, mount)
	}
	m.log.Debug().Str("module", m.Name()).Str("prefix", m.built.Prefix).Msg("routes mounted")
}
