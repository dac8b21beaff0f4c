package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/wb-go/wbf/logger"

	"github.com/deccantrails/tourbooker/internal/domain"
	"github.com/deccantrails/tourbooker/internal/scheduler/mocks"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

func TestScheduler_Tick_RunsBothMaintenancePasses(t *testing.T) {
	maintainer := mocks.NewMockBookingMaintainer(t)
	log := newTestLogger(t)

	s := New(maintainer, 50*time.Millisecond, log)

	expired := []*domain.Booking{
		{ID: "b1", UserID: "u1", EntityRef: domain.EntityRef{Kind: domain.KindGuide, ID: "guide-001"}},
	}
	completed := []*domain.Booking{
		{ID: "b2", UserID: "u2", EntityRef: domain.EntityRef{Kind: domain.KindExperience, ID: "experience-001"}},
	}
	maintainer.EXPECT().ExpireStalePending(mock.Anything).Return(expired, nil)
	maintainer.EXPECT().CompleteElapsed(mock.Anything).Return(completed, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	assert.GreaterOrEqual(t, len(maintainer.Calls), 2)
}

func TestScheduler_Tick_HandlesError(t *testing.T) {
	maintainer := mocks.NewMockBookingMaintainer(t)
	log := newTestLogger(t)

	s := New(maintainer, 50*time.Millisecond, log)

	// A failing expiry pass must not stop the completion pass.
	maintainer.EXPECT().ExpireStalePending(mock.Anything).Return(nil, errors.New("db error"))
	maintainer.EXPECT().CompleteElapsed(mock.Anything).Return(nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	assert.GreaterOrEqual(t, len(maintainer.Calls), 2)
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	maintainer := mocks.NewMockBookingMaintainer(t)
	log := newTestLogger(t)

	s := New(maintainer, time.Second, log) // interval longer than test

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
		// success
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on context cancel")
	}
}

func TestScheduler_MultipleTicks(t *testing.T) {
	maintainer := mocks.NewMockBookingMaintainer(t)
	log := newTestLogger(t)

	s := New(maintainer, 30*time.Millisecond, log)

	maintainer.EXPECT().ExpireStalePending(mock.Anything).Return(nil, nil).Times(3)
	maintainer.EXPECT().CompleteElapsed(mock.Anything).Return(nil, nil).Times(3)

	ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	assert.GreaterOrEqual(t, len(maintainer.Calls), 6)
}