// Package holidays marks weekends and configured non-working days in
// range statistics, so reporting UIs can grey those days out instead of
// showing them as zero-work days.
package holidays

import (
	"context"
	"time"
)

// ExtraType tags payloads produced by this provider.
const ExtraType = "holiday"

// Payload is the fact attached to a non-working day.
type Payload struct {
	Name    string `json:"name"`
	Weekend bool   `json:"weekend"`
}

// Provider reports weekends and a fixed set of named holidays.
type Provider struct {
	// holidays maps "01-02" (month-day) to a display name.
	holidays map[string]string
}

// New builds a Provider from month-day ("MM-DD") to name mappings.
func New(fixed map[string]string) *Provider {
	if fixed == nil {
		fixed = map[string]string{}
	}
	return &Provider{holidays: fixed}
}

func (p *Provider) Type() string { return ExtraType }

// Compute returns a Payload for weekends and configured holidays, nil for
// ordinary working days.
func (p *Provider) Compute(_ context.Context, _ string, date time.Time) (any, error) {
	if name, ok := p.holidays[date.Format("01-02")]; ok {
		return Payload{Name: name}, nil
	}
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return Payload{Name: date.Weekday().String(), Weekend: true}, nil
	}
	return nil, nil
}
