package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingProcessor struct {
	calls atomic.Int32
	err   error
}

func (p *countingProcessor) ProcessPending(ctx context.Context) (int, error) {
	p.calls.Add(1)
	return 1, p.err
}

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	p := &countingProcessor{}
	s := NewScheduler(p, 10*time.Millisecond, zap.NewNop())

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return p.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	s.Stop()
	calls := p.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, p.calls.Load())
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	p := &countingProcessor{err: errors.New("store down")}
	s := NewScheduler(p, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	assert.Eventually(t, func() bool { return p.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	// Stop after cancellation must not block
	s.Stop()
}
