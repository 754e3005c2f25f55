package pool

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRunsJobOnWorker(t *testing.T) {
	p := New(2, 4)
	p.Start()
	defer p.Stop()

	job := NewJob(context.Background(), func(ctx context.Context) (interface{}, error) {
		return 42, nil
	})
	v, err := p.Submit(job)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestSubmitPropagatesJobError(t *testing.T) {
	p := New(1, 4)
	p.Start()
	defer p.Stop()

	job := NewJob(context.Background(), func(ctx context.Context) (interface{}, error) {
		return nil, assert.AnError
	})
	_, err := p.Submit(job)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSubmitRejectsWhenQueueFull(t *testing.T) {
	p := New(1, 1)
	// No Start(): nothing drains the queue, so the second submit sees it full.
	blocker := NewJob(context.Background(), func(ctx context.Context) (interface{}, error) {
		return nil, nil
	})
	p.queue <- blocker

	job := NewJob(context.Background(), func(ctx context.Context) (interface{}, error) {
		return nil, nil
	})
	_, err := p.Submit(job)
	require.Error(t, err)
	assert.Equal(t, uint64(1), p.Stats().Rejected)
}

func TestSubmitRespectsContextCancellation(t *testing.T) {
	p := New(1, 4)
	p.Start()
	defer p.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	job := NewJob(ctx, func(ctx context.Context) (interface{}, error) {
		select {
		case <-time.After(50 * time.Millisecond):
			return "late", nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
	_, err := p.Submit(job)
	require.Error(t, err)
}
