// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

func TestNewDefaults(t *testing.T) {
	s, err := New(types.ScheduleConfig{})
	require.NoError(t, err)
	assert.Equal(t, DefaultCron, s.spec)
	assert.Equal(t, time.Local, s.location)
}

func TestNewInvalidTimezone(t *testing.T) {
	_, err := New(types.ScheduleConfig{Timezone: "Invalid/Zone"})
	assert.Error(t, err)
}

func TestNewInvalidCron(t *testing.T) {
	_, err := New(types.ScheduleConfig{Cron: "61 25 * * *"})
	assert.Error(t, err)

	_, err = New(types.ScheduleConfig{Cron: "every morning"})
	assert.Error(t, err)
}

func TestNextBeforeAndAfterSchedule(t *testing.T) {
	s, err := New(types.ScheduleConfig{Cron: "30 14 * * *", Timezone: "UTC"})
	require.NoError(t, err)
	assert.True(t, s.Next().IsZero())

	require.NoError(t, s.Schedule(context.Background(), func(context.Context) {}))
	next := s.Next()
	require.False(t, next.IsZero())
	assert.Equal(t, 14, next.Hour())
	assert.Equal(t, 30, next.Minute())
	assert.True(t, next.After(time.Now()))
}

func TestScheduleReplaces(t *testing.T) {
	s, err := New(types.ScheduleConfig{Cron: "@daily", Timezone: "UTC"})
	require.NoError(t, err)

	require.NoError(t, s.Schedule(context.Background(), func(context.Context) {}))
	first := s.entryID
	require.NoError(t, s.Schedule(context.Background(), func(context.Context) {}))
	assert.NotEqual(t, first, s.entryID)
	assert.Len(t, s.cron.Entries(), 1)
}

func TestRunExecutesJob(t *testing.T) {
	s, err := New(types.ScheduleConfig{Cron: "@every 1s", Timezone: "UTC"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var runs int32
	require.NoError(t, s.Schedule(ctx, func(context.Context) {
		if atomic.AddInt32(&runs, 1) == 1 {
			cancel()
		}
	}))

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("scheduled job did not run")
	}
	assert.GreaterOrEqual(t, atomic.LoadInt32(&runs), int32(1))
}
