package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediascope/mediascope/internal/models"
	"github.com/mediascope/mediascope/internal/utils"
)

func TestTickNotifiesOncePerBatch(t *testing.T) {
	db := testDB(t)
	catalog := NewCatalog(db, nil, false, utils.NewNopLogger())
	queue := NewQueue()

	notified := 0
	loop := NewLoop(queue, catalog, time.Millisecond, 50, func() { notified++ }, utils.NewNopLogger())

	for i := 0; i < 50; i++ {
		queue.Push(event(fmt.Sprintf("video-%d", i)))
	}

	loop.tick()

	assert.Equal(t, 1, notified)
	assert.Equal(t, 0, queue.Len())

	all, err := db.GetAllMedias()
	require.NoError(t, err)
	assert.Len(t, all, 50)
}

func TestTickNoChangesNoNotification(t *testing.T) {
	catalog := NewCatalog(testDB(t), nil, false, utils.NewNopLogger())
	queue := NewQueue()

	notified := 0
	loop := NewLoop(queue, catalog, time.Millisecond, 50, func() { notified++ }, utils.NewNopLogger())

	loop.tick()
	assert.Equal(t, 0, notified)
}

func TestTickInvalidItemDoesNotAbortBatch(t *testing.T) {
	db := testDB(t)
	catalog := NewCatalog(db, nil, false, utils.NewNopLogger())
	queue := NewQueue()
	loop := NewLoop(queue, catalog, time.Millisecond, 50, nil, utils.NewNopLogger())

	queue.Push(event("good-1"))
	bad := event("bad")
	bad.Info.Type = "hologram"
	queue.Push(bad)
	queue.Push(event("good-2"))

	loop.tick()

	all, err := db.GetAllMedias()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTickLeavesOverflowForNextTick(t *testing.T) {
	db := testDB(t)
	catalog := NewCatalog(db, nil, false, utils.NewNopLogger())
	queue := NewQueue()
	loop := NewLoop(queue, catalog, time.Millisecond, 50, nil, utils.NewNopLogger())

	for i := 0; i < 60; i++ {
		queue.Push(event(fmt.Sprintf("video-%d", i)))
	}

	loop.tick()
	assert.Equal(t, 10, queue.Len())

	loop.tick()
	assert.Equal(t, 0, queue.Len())

	all, err := db.GetAllMedias()
	require.NoError(t, err)
	assert.Len(t, all, 60)
}

func TestSubmitRunsOnLoopAndSharesNotification(t *testing.T) {
	db := testDB(t)
	catalog := NewCatalog(db, nil, false, utils.NewNopLogger())
	queue := NewQueue()

	notifyCh := make(chan struct{}, 1)
	loop := NewLoop(queue, catalog, 2*time.Millisecond, 50, func() {
		select {
		case notifyCh <- struct{}{}:
		default:
		}
	}, utils.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	err := loop.Submit(func() (bool, error) {
		m := &models.Media{Title: "direct", Type: models.MediaTypeClip, Source: "youtube", ProviderID: "x1"}
		return true, db.CreateMedia(m)
	})
	require.NoError(t, err)

	select {
	case <-notifyCh:
	case <-time.After(time.Second):
		t.Fatal("expected a change notification after Submit")
	}

	all, err := db.GetAllMedias()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSubmitPropagatesError(t *testing.T) {
	catalog := NewCatalog(testDB(t), nil, false, utils.NewNopLogger())
	loop := NewLoop(NewQueue(), catalog, 2*time.Millisecond, 50, nil, utils.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)
	defer cancel()

	wantErr := errors.New("boom")
	err := loop.Submit(func() (bool, error) { return false, wantErr })
	assert.Equal(t, wantErr, err)
}

func TestSubmitAfterStop(t *testing.T) {
	catalog := NewCatalog(testDB(t), nil, false, utils.NewNopLogger())
	loop := NewLoop(NewQueue(), catalog, time.Millisecond, 50, nil, utils.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)
	cancel()
	<-loop.stopped

	err := loop.Submit(func() (bool, error) { return false, nil })
	assert.Equal(t, ErrLoopStopped, err)
}

func TestChangeTracker(t *testing.T) {
	tracker := NewChangeTracker()

	count, last := tracker.Snapshot()
	assert.Equal(t, uint64(0), count)
	assert.True(t, last.IsZero())

	tracker.Mark()
	tracker.Mark()

	count, last = tracker.Snapshot()
	assert.Equal(t, uint64(2), count)
	assert.False(t, last.IsZero())
}
