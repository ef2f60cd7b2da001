// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/media"
	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/users/account"
	"github.com/taibuivan/vidora/internal/users/auth"
	"github.com/taibuivan/vidora/pkg/pointer"
	"github.com/taibuivan/vidora/pkg/uuid"
)

// # Test Doubles

type fakeAccountRepository struct {
	users     map[string]*auth.User
	detailErr error
	mediaErr  error
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{users: map[string]*auth.User{}}
}

func (f *fakeAccountRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := f.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("Account")
}

func (f *fakeAccountRepository) UpdateDetails(_ context.Context, user *auth.User) error {
	if f.detailErr != nil {
		return f.detailErr
	}
	stored := f.users[user.ID]
	stored.FullName = user.FullName
	stored.Email = user.Email
	return nil
}

func (f *fakeAccountRepository) UpdateAvatar(_ context.Context, user *auth.User) error {
	if f.mediaErr != nil {
		return f.mediaErr
	}
	f.users[user.ID].Avatar = user.Avatar
	return nil
}

func (f *fakeAccountRepository) UpdateCoverImage(_ context.Context, user *auth.User) error {
	if f.mediaErr != nil {
		return f.mediaErr
	}
	f.users[user.ID].CoverImage = user.CoverImage
	return nil
}

// fakeMediaHost records uploads and deletions without touching a network.
type fakeMediaHost struct {
	uploads   int
	deletes   []string
	uploadErr error
	deleteErr error
	nextID    int
}

func (f *fakeMediaHost) Upload(_ context.Context, localPath string, _ media.Kind) (media.Asset, error) {
	if localPath == "" {
		return media.Asset{}, nil
	}
	_ = os.Remove(localPath)
	if f.uploadErr != nil {
		return media.Asset{}, f.uploadErr
	}
	f.nextID++
	f.uploads++
	return media.Asset{
		ID:  uuid.New(),
		URL: "https://media.vidora.app/test/" + localPath,
	}, nil
}

func (f *fakeMediaHost) Delete(_ context.Context, id string, _ media.Kind) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, id)
	return nil
}

// # Fixtures

func newTestService(t *testing.T) (*account.Service, *fakeAccountRepository, *fakeMediaHost, *auth.User) {
	t.Helper()

	repo := newFakeAccountRepository()
	host := &fakeMediaHost{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	user := &auth.User{
		ID:       uuid.New(),
		Username: "ada",
		Email:    "ada@example.com",
		FullName: "Ada Lovelace",
		Avatar:   media.Asset{ID: "avatar-old", URL: "https://media.vidora.app/avatar-old"},
	}
	repo.users[user.ID] = user

	return account.NewService(repo, host, logger), repo, host, user
}

func stageFile(t *testing.T) string {
	t.Helper()
	file, err := os.CreateTemp(t.TempDir(), "vidora-upload-*.png")
	require.NoError(t, err)
	require.NoError(t, file.Close())
	return file.Name()
}

// # Profile Details

/*
TestUpdateDetails_Partial verifies absent fields remain untouched.
*/
func TestUpdateDetails_Partial(t *testing.T) {
	service, repo, _, user := newTestService(t)

	updated, err := service.UpdateDetails(context.Background(), user.ID, account.UpdateDetailsInput{
		FullName: pointer.To("Augusta Ada King"),
	})
	require.NoError(t, err)

	// 1. Provided field changed
	assert.Equal(t, "Augusta Ada King", updated.FullName)

	// 2. Absent field untouched
	assert.Equal(t, "ada@example.com", updated.Email)
	assert.Equal(t, "ada@example.com", repo.users[user.ID].Email)
}

/*
TestUpdateDetails_NormalizesEmail verifies email canonicalization before the write.
*/
func TestUpdateDetails_NormalizesEmail(t *testing.T) {
	service, repo, _, user := newTestService(t)

	updated, err := service.UpdateDetails(context.Background(), user.ID, account.UpdateDetailsInput{
		Email: pointer.To("  ADA@Example.COM  "),
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", updated.Email)
	assert.Equal(t, "ada@example.com", repo.users[user.ID].Email)
}

/*
TestUpdateDetails_BlankField verifies provided-but-blank fields are rejected.
*/
func TestUpdateDetails_BlankField(t *testing.T) {
	service, _, _, user := newTestService(t)

	_, err := service.UpdateDetails(context.Background(), user.ID, account.UpdateDetailsInput{
		FullName: pointer.To("   "),
	})

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, apperr.CodeValidation, appError.Code)
}

// # Profile Media Swaps

/*
TestUpdateAvatar_SwapsAndCleansUp verifies the upload-swap-delete ordering.
*/
func TestUpdateAvatar_SwapsAndCleansUp(t *testing.T) {
	service, repo, host, user := newTestService(t)

	updated, err := service.UpdateAvatar(context.Background(), user.ID, stageFile(t))
	require.NoError(t, err)

	// 1. The profile points at the freshly uploaded asset
	assert.NotEqual(t, "avatar-old", updated.Avatar.ID)
	assert.Equal(t, updated.Avatar, repo.users[user.ID].Avatar)

	// 2. The superseded asset was removed from the host
	assert.Equal(t, []string{"avatar-old"}, host.deletes)
}

/*
TestUpdateCoverImage_NoPriorAsset verifies no deletion happens on first upload.
*/
func TestUpdateCoverImage_NoPriorAsset(t *testing.T) {
	service, repo, host, user := newTestService(t)

	updated, err := service.UpdateCoverImage(context.Background(), user.ID, stageFile(t))
	require.NoError(t, err)

	assert.False(t, updated.CoverImage.IsZero())
	assert.Equal(t, updated.CoverImage, repo.users[user.ID].CoverImage)
	assert.Empty(t, host.deletes, "nothing to clean up on first upload")
}

/*
TestUpdateAvatar_MissingFile verifies an empty staging path is rejected up front.
*/
func TestUpdateAvatar_MissingFile(t *testing.T) {
	service, repo, host, user := newTestService(t)

	_, err := service.UpdateAvatar(context.Background(), user.ID, "")

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, apperr.CodeMissingAsset, appError.Code)

	assert.Equal(t, "avatar-old", repo.users[user.ID].Avatar.ID)
	assert.Zero(t, host.uploads)
}

/*
TestUpdateAvatar_UploadFails verifies the stored asset survives a failed upload.
*/
func TestUpdateAvatar_UploadFails(t *testing.T) {
	service, repo, host, user := newTestService(t)
	host.uploadErr = assert.AnError

	_, err := service.UpdateAvatar(context.Background(), user.ID, stageFile(t))

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, apperr.CodeUploadFailed, appError.Code)

	// The old asset is still linked and was not deleted
	assert.Equal(t, "avatar-old", repo.users[user.ID].Avatar.ID)
	assert.Empty(t, host.deletes)
}

/*
TestUpdateAvatar_CleanupFailureDoesNotFail verifies stale-asset removal is best effort.
*/
func TestUpdateAvatar_CleanupFailureDoesNotFail(t *testing.T) {
	service, repo, host, user := newTestService(t)
	host.deleteErr = assert.AnError

	updated, err := service.UpdateAvatar(context.Background(), user.ID, stageFile(t))
	require.NoError(t, err)

	assert.NotEqual(t, "avatar-old", updated.Avatar.ID)
	assert.Equal(t, updated.Avatar, repo.users[user.ID].Avatar)
}

/*
TestUpdateAvatar_UnknownUser verifies the staged file is released on abort.
*/
func TestUpdateAvatar_UnknownUser(t *testing.T) {
	service, _, host, _ := newTestService(t)

	staged := stageFile(t)
	_, err := service.UpdateAvatar(context.Background(), "missing-user", staged)

	require.Error(t, err)
	assert.Zero(t, host.uploads)
	assert.NoFileExists(t, staged)
}
