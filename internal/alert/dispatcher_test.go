package alert_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dojolanza/cuotas/go-api-server/internal/alert"
	"github.com/dojolanza/cuotas/go-api-server/internal/model"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDispatcher_SendBulk_Accounting(t *testing.T) {
	// Given: One deliverable member, one failing relay and one without email
	mailer := testutil.NewMockMailer()
	mailer.FailFor["falla@example.com"] = errors.New("smtp: connection refused")

	dispatcher := alert.NewDispatcher(mailer, 0)

	members := []model.Member{
		{ID: 1, FirstName: "Ana", Email: "ana@example.com"},
		{ID: 2, FirstName: "Beto", Email: "falla@example.com"},
		{ID: 3, FirstName: "Carla", Email: ""},
	}

	// When
	outcome := dispatcher.SendBulk(context.Background(), members, "2026-08")

	// Then: Every member lands in exactly one bucket
	assert.Equal(t, 1, outcome.Sent)
	assert.Equal(t, 1, outcome.Failed)
	assert.Equal(t, 1, outcome.NoEmail)
	assert.Equal(t, len(members), outcome.Total())

	// Then: Only the deliverable address was attempted successfully
	assert.Equal(t, []string{"ana@example.com"}, mailer.Sent)
}

func TestDispatcher_SendBulk_Empty(t *testing.T) {
	// Given
	mailer := testutil.NewMockMailer()
	dispatcher := alert.NewDispatcher(mailer, 0)

	// When
	outcome := dispatcher.SendBulk(context.Background(), nil, "2026-08")

	// Then
	assert.Equal(t, 0, outcome.Total())
	assert.Equal(t, 0, mailer.SentCount())
}

func TestDispatcher_SendBulk_FailureDoesNotStopRun(t *testing.T) {
	// Given: The first member fails, the second should still be attempted
	mailer := testutil.NewMockMailer()
	mailer.FailFor["primero@example.com"] = errors.New("smtp: timeout")

	dispatcher := alert.NewDispatcher(mailer, 0)

	members := []model.Member{
		{ID: 1, Email: "primero@example.com"},
		{ID: 2, Email: "segundo@example.com"},
	}

	// When
	outcome := dispatcher.SendBulk(context.Background(), members, "2026-08")

	// Then
	assert.Equal(t, 1, outcome.Sent)
	assert.Equal(t, 1, outcome.Failed)
	assert.Equal(t, []string{"segundo@example.com"}, mailer.Sent)
}

func TestDispatcher_SendBulk_CancelledBetweenSends(t *testing.T) {
	// Given: A cancelled context and a pause between sends
	mailer := testutil.NewMockMailer()
	dispatcher := alert.NewDispatcher(mailer, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	members := []model.Member{
		{ID: 1, Email: "primero@example.com"},
		{ID: 2, Email: "segundo@example.com"},
	}

	// When: The run reaches the pause after the first send
	outcome := dispatcher.SendBulk(ctx, members, "2026-08")

	// Then: The run ended at the pause instead of sleeping for an hour;
	// only the first member was processed
	assert.Equal(t, 1, outcome.Sent)
	assert.Equal(t, 1, outcome.Total())
	assert.Equal(t, []string{"primero@example.com"}, mailer.Sent)
}
