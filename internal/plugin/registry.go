// Package plugin defines the extension point through which external
// statistics providers contribute per-user per-date facts. The core only
// knows the tagged-payload shape; payload contents are opaque to it.
package plugin

import (
	"context"
	"log/slog"
	"time"
)

// Extra is one plugin-supplied fact attached to a day's statistics.
type Extra struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Provider computes one kind of extra. Compute returns a nil payload when
// the provider has nothing to say for that user and date.
type Provider interface {
	Type() string
	Compute(ctx context.Context, userID string, date time.Time) (any, error)
}

// Registry is an explicit, constructor-injected list of providers. It is
// built once at process start and handed to the statistics service; there
// is no hidden process-wide list to register into.
type Registry struct {
	providers []Provider
	logger    *slog.Logger
}

// NewRegistry builds a registry over the given providers.
func NewRegistry(providers ...Provider) *Registry {
	return &Registry{providers: providers, logger: slog.Default()}
}

// Register appends a provider. Only meant for wiring at startup, before
// the registry is shared.
func (r *Registry) Register(p Provider) {
	r.providers = append(r.providers, p)
}

// Collect invokes every provider once for (user, date) and returns the
// non-absent results. A failing provider is logged and skipped — one
// broken plugin must not sink the whole report. The result is never nil.
func (r *Registry) Collect(ctx context.Context, userID string, date time.Time) []Extra {
	extras := make([]Extra, 0, len(r.providers))
	for _, p := range r.providers {
		payload, err := p.Compute(ctx, userID, date)
		if err != nil {
			r.logger.WarnContext(ctx, "statistics extra failed",
				"type", p.Type(), "user_id", userID, "date", date.Format("2006-01-02"), "error", err)
			continue
		}
		if payload == nil {
			continue
		}
		extras = append(extras, Extra{Type: p.Type(), Payload: payload})
	}
	return extras
}
