package plugin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeProvider struct {
	tag     string
	payload any
	err     error
}

func (p *fakeProvider) Type() string { return p.tag }

func (p *fakeProvider) Compute(context.Context, string, time.Time) (any, error) {
	return p.payload, p.err
}

func TestRegistry_CollectTagsPayloads(t *testing.T) {
	registry := NewRegistry(
		&fakeProvider{tag: "a", payload: 1},
		&fakeProvider{tag: "b", payload: "two"},
	)

	extras := registry.Collect(context.Background(), "alice", time.Now())
	assert.Len(t, extras, 2)
	assert.Equal(t, "a", extras[0].Type)
	assert.Equal(t, "b", extras[1].Type)
}

func TestRegistry_NilPayloadMeansAbsent(t *testing.T) {
	registry := NewRegistry(&fakeProvider{tag: "silent"})

	extras := registry.Collect(context.Background(), "alice", time.Now())
	assert.Empty(t, extras)
	assert.NotNil(t, extras)
}

func TestRegistry_ErrorsAreSkipped(t *testing.T) {
	registry := NewRegistry(
		&fakeProvider{tag: "broken", err: errors.New("boom")},
		&fakeProvider{tag: "fine", payload: true},
	)

	extras := registry.Collect(context.Background(), "alice", time.Now())
	assert.Len(t, extras, 1)
	assert.Equal(t, "fine", extras[0].Type)
}

func TestRegistry_RegisterAppends(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&fakeProvider{tag: "late", payload: 1})

	extras := registry.Collect(context.Background(), "alice", time.Now())
	assert.Len(t, extras, 1)
}
