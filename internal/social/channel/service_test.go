// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package channel_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/social/channel"
)

// # Test Doubles

type subscriptionKey struct {
	subscriberID string
	channelID    string
}

type fakeChannelRepository struct {
	profiles      map[string]*channel.ChannelProfile
	subscriptions map[subscriptionKey]bool
	queries       int
}

func newFakeChannelRepository() *fakeChannelRepository {
	return &fakeChannelRepository{
		profiles:      map[string]*channel.ChannelProfile{},
		subscriptions: map[subscriptionKey]bool{},
	}
}

func (f *fakeChannelRepository) FindProfileByUsername(_ context.Context, username string) (*channel.ChannelProfile, error) {
	f.queries++
	if profile, ok := f.profiles[username]; ok {
		copied := *profile
		copied.SubscriberCount = f.subscriberCount(profile.UserID)
		return &copied, nil
	}
	return nil, apperr.NotFound("Channel")
}

func (f *fakeChannelRepository) IsSubscribed(_ context.Context, subscriberID, channelID string) (bool, error) {
	return f.subscriptions[subscriptionKey{subscriberID, channelID}], nil
}

func (f *fakeChannelRepository) Subscribe(_ context.Context, subscriberID, channelID string) error {
	f.subscriptions[subscriptionKey{subscriberID, channelID}] = true
	return nil
}

func (f *fakeChannelRepository) Unsubscribe(_ context.Context, subscriberID, channelID string) (bool, error) {
	key := subscriptionKey{subscriberID, channelID}
	if f.subscriptions[key] {
		delete(f.subscriptions, key)
		return true, nil
	}
	return false, nil
}

func (f *fakeChannelRepository) subscriberCount(channelID string) int {
	count := 0
	for key := range f.subscriptions {
		if key.channelID == channelID {
			count++
		}
	}
	return count
}

type fakeProfileCache struct {
	entries map[string]channel.ChannelProfile
	getErr  error
}

func newFakeProfileCache() *fakeProfileCache {
	return &fakeProfileCache{entries: map[string]channel.ChannelProfile{}}
}

func (f *fakeProfileCache) Get(_ context.Context, username string) (*channel.ChannelProfile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if entry, ok := f.entries[username]; ok {
		copied := entry
		return &copied, nil
	}
	return nil, apperr.NotFound("Channel profile cache entry")
}

func (f *fakeProfileCache) Set(_ context.Context, profile *channel.ChannelProfile) error {
	f.entries[profile.Username] = *profile
	return nil
}

func (f *fakeProfileCache) Invalidate(_ context.Context, username string) error {
	delete(f.entries, username)
	return nil
}

// # Fixtures

func newTestService(t *testing.T) (*channel.Service, *fakeChannelRepository, *fakeProfileCache) {
	t.Helper()
	repo := newFakeChannelRepository()
	cache := newFakeProfileCache()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo.profiles["ada"] = &channel.ChannelProfile{
		UserID:   "user-ada",
		Username: "ada",
		FullName: "Ada Lovelace",
	}
	repo.profiles["grace"] = &channel.ChannelProfile{
		UserID:   "user-grace",
		Username: "grace",
		FullName: "Grace Hopper",
	}

	return channel.NewService(repo, cache, logger), repo, cache
}

// # Profile Reads

/*
TestGetProfile_CachesAggregate verifies the second read is served from cache.
*/
func TestGetProfile_CachesAggregate(t *testing.T) {
	service, repo, cache := newTestService(t)

	first, err := service.GetProfile(context.Background(), "ada", "")
	require.NoError(t, err)
	assert.Equal(t, "user-ada", first.UserID)
	assert.Equal(t, 1, repo.queries)
	assert.Contains(t, cache.entries, "ada")

	_, err = service.GetProfile(context.Background(), "ada", "")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.queries, "second read must not hit the database")
}

/*
TestGetProfile_ViewerFlagNotCached verifies IsSubscribed stays per viewer.
*/
func TestGetProfile_ViewerFlagNotCached(t *testing.T) {
	service, repo, cache := newTestService(t)
	require.NoError(t, repo.Subscribe(context.Background(), "user-grace", "user-ada"))

	// 1. Subscribed viewer sees the flag
	profile, err := service.GetProfile(context.Background(), "ada", "user-grace")
	require.NoError(t, err)
	assert.True(t, profile.IsSubscribed)

	// 2. The cached entry does not carry any viewer's flag
	assert.False(t, cache.entries["ada"].IsSubscribed)

	// 3. A different viewer, served from the same cache entry, sees false
	profile, err = service.GetProfile(context.Background(), "ada", "user-other")
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)
}

/*
TestGetProfile_NormalizesUsername verifies lookups fold casing and accents.
*/
func TestGetProfile_NormalizesUsername(t *testing.T) {
	service, _, _ := newTestService(t)

	profile, err := service.GetProfile(context.Background(), "  ÁDA ", "")
	require.NoError(t, err)
	assert.Equal(t, "ada", profile.Username)
}

/*
TestGetProfile_CacheOutage verifies a cache failure degrades to the database.
*/
func TestGetProfile_CacheOutage(t *testing.T) {
	service, repo, cache := newTestService(t)
	cache.getErr = assert.AnError

	profile, err := service.GetProfile(context.Background(), "ada", "")
	require.NoError(t, err)
	assert.Equal(t, "user-ada", profile.UserID)
	assert.Equal(t, 1, repo.queries)
}

/*
TestGetProfile_Unknown verifies a missing channel yields NotFound.
*/
func TestGetProfile_Unknown(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.GetProfile(context.Background(), "ghost", "")

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, apperr.CodeNotFound, appError.Code)
}

// # Subscription Toggles

/*
TestToggleSubscription_RoundTrip verifies toggle on, off, and count effects.
*/
func TestToggleSubscription_RoundTrip(t *testing.T) {
	service, _, _ := newTestService(t)

	// 1. First toggle subscribes
	state, err := service.ToggleSubscription(context.Background(), "user-grace", "ada")
	require.NoError(t, err)
	assert.True(t, state.Subscribed)
	assert.Equal(t, "user-ada", state.ChannelID)

	profile, err := service.GetProfile(context.Background(), "ada", "user-grace")
	require.NoError(t, err)
	assert.True(t, profile.IsSubscribed)
	assert.Equal(t, 1, profile.SubscriberCount)

	// 2. Second toggle unsubscribes
	state, err = service.ToggleSubscription(context.Background(), "user-grace", "ada")
	require.NoError(t, err)
	assert.False(t, state.Subscribed)

	profile, err = service.GetProfile(context.Background(), "ada", "user-grace")
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)
	assert.Equal(t, 0, profile.SubscriberCount)
}

/*
TestToggleSubscription_InvalidatesCache verifies counts refresh after a toggle.
*/
func TestToggleSubscription_InvalidatesCache(t *testing.T) {
	service, _, cache := newTestService(t)

	// Warm the cache with a zero-subscriber aggregate
	_, err := service.GetProfile(context.Background(), "ada", "")
	require.NoError(t, err)
	assert.Contains(t, cache.entries, "ada")

	_, err = service.ToggleSubscription(context.Background(), "user-grace", "ada")
	require.NoError(t, err)
	assert.NotContains(t, cache.entries, "ada", "stale aggregate must be dropped")

	profile, err := service.GetProfile(context.Background(), "ada", "")
	require.NoError(t, err)
	assert.Equal(t, 1, profile.SubscriberCount)
}

/*
TestToggleSubscription_SelfSubscription verifies channels cannot subscribe to themselves.
*/
func TestToggleSubscription_SelfSubscription(t *testing.T) {
	service, repo, _ := newTestService(t)

	_, err := service.ToggleSubscription(context.Background(), "user-ada", "ada")

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, apperr.CodeValidation, appError.Code)
	assert.Empty(t, repo.subscriptions)
}

/*
TestToggleSubscription_UnknownChannel verifies toggling a missing channel fails.
*/
func TestToggleSubscription_UnknownChannel(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.ToggleSubscription(context.Background(), "user-ada", "ghost")

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, apperr.CodeNotFound, appError.Code)
}
