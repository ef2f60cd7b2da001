// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package history_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/social/history"
	"github.com/taibuivan/vidora/pkg/pagination"
)

// # Test Doubles

type watchEntry struct {
	videoID   string
	watchedAt time.Time
}

// fakeHistoryRepository keeps per-user entries and mimics the upsert and
// newest-first ordering of the Postgres implementation.
type fakeHistoryRepository struct {
	knownVideos map[string]history.VideoView
	entries     map[string][]watchEntry
	clock       time.Time
}

func newFakeHistoryRepository() *fakeHistoryRepository {
	return &fakeHistoryRepository{
		knownVideos: map[string]history.VideoView{},
		entries:     map[string][]watchEntry{},
		clock:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeHistoryRepository) ListByUser(_ context.Context, userID string, params pagination.Params) ([]history.VideoView, int, error) {
	entries := append([]watchEntry(nil), f.entries[userID]...)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].watchedAt.After(entries[j].watchedAt)
	})

	total := len(entries)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}

	var views []history.VideoView
	for _, entry := range entries[start:end] {
		view := f.knownVideos[entry.videoID]
		view.WatchedAt = entry.watchedAt
		views = append(views, view)
	}
	return views, total, nil
}

func (f *fakeHistoryRepository) Record(_ context.Context, userID, videoID string) error {
	if _, ok := f.knownVideos[videoID]; !ok {
		return apperr.NotFound("Video")
	}

	f.clock = f.clock.Add(time.Minute)
	for i, entry := range f.entries[userID] {
		if entry.videoID == videoID {
			f.entries[userID][i].watchedAt = f.clock
			return nil
		}
	}
	f.entries[userID] = append(f.entries[userID], watchEntry{videoID: videoID, watchedAt: f.clock})
	return nil
}

// # Fixtures

func newTestService(t *testing.T) (*history.Service, *fakeHistoryRepository) {
	t.Helper()
	repo := newFakeHistoryRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, id := range []string{"video-1", "video-2", "video-3"} {
		repo.knownVideos[id] = history.VideoView{
			VideoID: id,
			Title:   "Title " + id,
			Owner:   history.ChannelOwner{UserID: "user-grace", Username: "grace"},
		}
	}

	return history.NewService(repo, logger), repo
}

// # Recording

/*
TestRecordWatch_UpsertsSingleSlot verifies re-watching moves an entry up
instead of duplicating it.
*/
func TestRecordWatch_UpsertsSingleSlot(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.RecordWatch(ctx, "user-ada", "video-1"))
	require.NoError(t, service.RecordWatch(ctx, "user-ada", "video-2"))
	require.NoError(t, service.RecordWatch(ctx, "user-ada", "video-1"))

	views, meta, err := service.ListHistory(ctx, "user-ada", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)

	// 1. Exactly one slot per video
	assert.Equal(t, 2, meta.Total)
	require.Len(t, views, 2)

	// 2. The re-watched video leads the history
	assert.Equal(t, "video-1", views[0].VideoID)
	assert.Equal(t, "video-2", views[1].VideoID)
}

/*
TestRecordWatch_UnknownVideo verifies unknown videos are rejected.
*/
func TestRecordWatch_UnknownVideo(t *testing.T) {
	service, _ := newTestService(t)

	err := service.RecordWatch(context.Background(), "user-ada", "ghost")

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, apperr.CodeNotFound, appError.Code)
}

/*
TestRecordWatch_BlankVideoID verifies the empty ID short-circuits.
*/
func TestRecordWatch_BlankVideoID(t *testing.T) {
	service, repo := newTestService(t)

	err := service.RecordWatch(context.Background(), "user-ada", "")

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, apperr.CodeValidation, appError.Code)
	assert.Empty(t, repo.entries)
}

// # Listing

/*
TestListHistory_OrderAndPagination verifies newest-first order across pages.
*/
func TestListHistory_OrderAndPagination(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	for _, id := range []string{"video-1", "video-2", "video-3"} {
		require.NoError(t, service.RecordWatch(ctx, "user-ada", id))
	}

	// 1. First page holds the two most recent watches
	views, meta, err := service.ListHistory(ctx, "user-ada", pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)
	require.Len(t, views, 2)
	assert.Equal(t, "video-3", views[0].VideoID)
	assert.Equal(t, "video-2", views[1].VideoID)

	// 2. Second page holds the oldest
	views, _, err = service.ListHistory(ctx, "user-ada", pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "video-1", views[0].VideoID)

	// 3. Owner projection rides along
	assert.Equal(t, "grace", views[0].Owner.Username)
}

/*
TestListHistory_Empty verifies a fresh user sees an empty page, not an error.
*/
func TestListHistory_Empty(t *testing.T) {
	service, _ := newTestService(t)

	views, meta, err := service.ListHistory(context.Background(), "user-new", pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.Equal(t, 0, meta.Total)
}

/*
TestListHistory_IsolatedPerUser verifies users never see each other's history.
*/
func TestListHistory_IsolatedPerUser(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.RecordWatch(ctx, "user-ada", "video-1"))
	require.NoError(t, service.RecordWatch(ctx, "user-grace", "video-2"))

	views, meta, err := service.ListHistory(ctx, "user-ada", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, meta.Total)
	require.Len(t, views, 1)
	assert.Equal(t, "video-1", views[0].VideoID)
}
