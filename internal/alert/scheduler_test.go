package alert

import (
	"context"
	"testing"
	"time"

	"github.com/dojolanza/cuotas/go-api-server/internal/config"
	"github.com/dojolanza/cuotas/go-api-server/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFinder struct {
	members []model.Member
	err     error
}

func (f *stubFinder) FindOverdue(ctx context.Context, period string) ([]model.Member, error) {
	return f.members, f.err
}

type stubSender struct {
	calls int
}

func (s *stubSender) SendBulk(ctx context.Context, members []model.Member, period string) Outcome {
	s.calls++
	return Outcome{Sent: len(members)}
}

func newTestScheduler() *Scheduler {
	return NewScheduler(&stubFinder{}, &stubSender{}, config.AlertsConfig{
		DailySpec:  "0 9 * * *",
		WeeklySpec: "0 10 * * 5",
	})
}

func TestScheduler_StartRegistersBothJobs(t *testing.T) {
	// Given
	scheduler := newTestScheduler()
	defer scheduler.Stop()

	// When
	require.NoError(t, scheduler.Start())

	// Then
	assert.True(t, scheduler.IsRunning())
	assert.Equal(t, 2, scheduler.entryCount())
}

func TestScheduler_StartIsIdempotent(t *testing.T) {
	// Given: A scheduler that is already running
	scheduler := newTestScheduler()
	defer scheduler.Stop()

	require.NoError(t, scheduler.Start())

	// When: Start is called again
	require.NoError(t, scheduler.Start())
	require.NoError(t, scheduler.Start())

	// Then: Jobs were not double-registered
	assert.Equal(t, 2, scheduler.entryCount())
}

func TestScheduler_StopClearsRunningState(t *testing.T) {
	// Given
	scheduler := newTestScheduler()
	require.NoError(t, scheduler.Start())

	// When
	scheduler.Stop()

	// Then
	assert.False(t, scheduler.IsRunning())
	assert.Equal(t, 0, scheduler.entryCount())
}

func TestScheduler_StopBeforeStartIsSafe(t *testing.T) {
	// Given
	scheduler := newTestScheduler()

	// When / Then: No panic
	scheduler.Stop()
	assert.False(t, scheduler.IsRunning())
}

func TestScheduler_RestartAfterStop(t *testing.T) {
	// Given
	scheduler := newTestScheduler()
	require.NoError(t, scheduler.Start())
	scheduler.Stop()

	// When
	require.NoError(t, scheduler.Start())
	defer scheduler.Stop()

	// Then
	assert.True(t, scheduler.IsRunning())
	assert.Equal(t, 2, scheduler.entryCount())
}

func TestScheduler_RunContainsFinderError(t *testing.T) {
	// Given: A finder that always fails
	sender := &stubSender{}
	scheduler := NewScheduler(
		&stubFinder{err: assert.AnError},
		sender,
		config.AlertsConfig{DailySpec: "0 9 * * *", WeeklySpec: "0 10 * * 5"},
	)

	// When: A job fires with the failing finder
	scheduler.run("daily")

	// Then: The error was swallowed and nothing was sent
	assert.Equal(t, 0, sender.calls)
}

func TestScheduler_RunSendsToOverdueMembers(t *testing.T) {
	// Given
	sender := &stubSender{}
	scheduler := NewScheduler(
		&stubFinder{members: []model.Member{{ID: 1, Email: "a@example.com"}}},
		sender,
		config.AlertsConfig{DailySpec: "0 9 * * *", WeeklySpec: "0 10 * * 5"},
	)

	// When
	scheduler.run("weekly")

	// Then
	assert.Equal(t, 1, sender.calls)
}

// blockingSender holds a dispatch open until released, to observe a run
// that is still in flight.
type blockingSender struct {
	started  chan struct{}
	release  chan struct{}
	finished chan struct{}
}

func newBlockingSender() *blockingSender {
	return &blockingSender{
		started:  make(chan struct{}),
		release:  make(chan struct{}),
		finished: make(chan struct{}),
	}
}

func (s *blockingSender) SendBulk(ctx context.Context, members []model.Member, period string) Outcome {
	close(s.started)
	<-s.release
	defer close(s.finished)
	return Outcome{Sent: len(members)}
}

func TestScheduler_StopDoesNotAbortInFlightRun(t *testing.T) {
	// Given: A running scheduler whose dispatch is blocked mid-send
	sender := newBlockingSender()
	scheduler := NewScheduler(
		&stubFinder{members: []model.Member{{ID: 1, Email: "a@example.com"}}},
		sender,
		config.AlertsConfig{DailySpec: "0 9 * * *", WeeklySpec: "0 10 * * 5"},
	)
	require.NoError(t, scheduler.Start())

	go scheduler.run("daily")
	<-sender.started

	// When: Stop arrives while the run is still in flight
	scheduler.Stop()

	// Then: Future firings are gone but the run was not aborted
	assert.False(t, scheduler.IsRunning())
	assert.Equal(t, 0, scheduler.entryCount())

	select {
	case <-sender.finished:
		t.Fatal("la ejecución terminó antes de ser liberada")
	default:
	}

	close(sender.release)
	select {
	case <-sender.finished:
		// the in-flight run ran to completion
	case <-time.After(2 * time.Second):
		t.Fatal("la ejecución en curso no terminó después de Stop")
	}
}
