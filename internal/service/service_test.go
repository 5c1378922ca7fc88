package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfolio/portfolio-api/internal/events"
	apperrors "github.com/devfolio/portfolio-api/pkg/util/errorutil"
)

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	out := make([]events.EventType, 0, len(d.published))
	for _, e := range d.published {
		out = append(out, e.Type)
	}
	return out
}

// assertDomainError checks the HTTP status and message carried by err.
func assertDomainError(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, status, de.HTTPStatus)
	assert.Equal(t, message, de.Message)
}

