// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// # Test Doubles

type fakeObjectAPI struct {
	bucketExists bool
	madeBucket   bool
	putKeys      []string
	removedKeys  []string
	putErr       error
	removeErr    error
}

func (f *fakeObjectAPI) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, nil
}

func (f *fakeObjectAPI) MakeBucket(_ context.Context, _ string, _ minio.MakeBucketOptions) error {
	f.madeBucket = true
	return nil
}

func (f *fakeObjectAPI) FPutObject(_ context.Context, _, objectName, _ string, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	f.putKeys = append(f.putKeys, objectName)
	return minio.UploadInfo{Key: objectName}, nil
}

func (f *fakeObjectAPI) RemoveObject(_ context.Context, _, objectName string, _ minio.RemoveObjectOptions) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removedKeys = append(f.removedKeys, objectName)
	return nil
}

// # Fixtures

func newTestClient(t *testing.T, api *fakeObjectAPI) *Client {
	t.Helper()
	client, err := NewClientWithAPI(context.Background(), api, HostConfig{
		Bucket:    "vidora-media",
		PublicURL: "https://media.vidora.app/",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return client
}

func stageFile(t *testing.T) string {
	t.Helper()
	file, err := os.CreateTemp(t.TempDir(), "vidora-upload-*.png")
	require.NoError(t, err)
	require.NoError(t, file.Close())
	return file.Name()
}

// # Tests

/*
TestNewClient_CreatesMissingBucket verifies first-run bucket provisioning.
*/
func TestNewClient_CreatesMissingBucket(t *testing.T) {
	api := &fakeObjectAPI{bucketExists: false}
	newTestClient(t, api)
	assert.True(t, api.madeBucket)

	api = &fakeObjectAPI{bucketExists: true}
	newTestClient(t, api)
	assert.False(t, api.madeBucket)
}

/*
TestUpload_Success verifies key layout, URL shape, and temp-file consumption.
*/
func TestUpload_Success(t *testing.T) {
	api := &fakeObjectAPI{bucketExists: true}
	client := newTestClient(t, api)
	staged := stageFile(t)

	asset, err := client.Upload(context.Background(), staged, KindImage)
	require.NoError(t, err)

	// 1. Object key is namespaced by kind and keeps the extension
	require.Len(t, api.putKeys, 1)
	assert.True(t, strings.HasPrefix(asset.ID, "image/"))
	assert.True(t, strings.HasSuffix(asset.ID, ".png"))
	assert.Equal(t, api.putKeys[0], asset.ID)

	// 2. URL is public-base/bucket/key with no doubled slash
	assert.Equal(t, "https://media.vidora.app/vidora-media/"+asset.ID, asset.URL)

	// 3. Staged file is gone
	assert.NoFileExists(t, staged)
}

/*
TestUpload_FailureStillRemovesTempFile verifies no staging leak on errors.
*/
func TestUpload_FailureStillRemovesTempFile(t *testing.T) {
	api := &fakeObjectAPI{bucketExists: true, putErr: assert.AnError}
	client := newTestClient(t, api)
	staged := stageFile(t)

	_, err := client.Upload(context.Background(), staged, KindImage)
	require.Error(t, err)
	assert.NoFileExists(t, staged)
}

/*
TestUpload_EmptyPath verifies the optional-asset contract.
*/
func TestUpload_EmptyPath(t *testing.T) {
	api := &fakeObjectAPI{bucketExists: true}
	client := newTestClient(t, api)

	asset, err := client.Upload(context.Background(), "", KindImage)
	require.NoError(t, err)
	assert.True(t, asset.IsZero())
	assert.Empty(t, api.putKeys)
}

/*
TestDelete verifies removals and the empty-identifier no-op.
*/
func TestDelete(t *testing.T) {
	api := &fakeObjectAPI{bucketExists: true}
	client := newTestClient(t, api)

	require.NoError(t, client.Delete(context.Background(), "image/abc.png", KindImage))
	assert.Equal(t, []string{"image/abc.png"}, api.removedKeys)

	require.NoError(t, client.Delete(context.Background(), "", KindImage))
	assert.Len(t, api.removedKeys, 1)
}
