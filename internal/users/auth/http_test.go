// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/platform/constants"
	"github.com/taibuivan/vidora/internal/users/auth"
)

// # Helpers

// registerForm builds a multipart registration request body.
func registerForm(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	for name, value := range fields {
		require.NoError(t, form.WriteField(name, value))
	}
	for field, content := range files {
		part, err := form.CreateFormFile(field, field+".png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}

	require.NoError(t, form.Close())
	return body, form.FormDataContentType()
}

// countStagedUploads counts staged upload files in the OS temp directory.
func countStagedUploads(t *testing.T) int {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(os.TempDir(), constants.TempUploadPrefix+"*"))
	require.NoError(t, err)
	return len(matches)
}

func postRegister(t *testing.T, handler *auth.Handler, fields map[string]string, files map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := registerForm(t, fields, files)
	request := httptest.NewRequest(http.MethodPost, "/register", body)
	request.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()

	handler.Routes().ServeHTTP(recorder, request)
	return recorder
}

func validRegisterFields() map[string]string {
	return map[string]string{
		auth.FieldUsername: "ada",
		auth.FieldEmail:    "ada@example.com",
		auth.FieldPassword: "correct-horse",
		auth.FieldFullName: "Ada Lovelace",
	}
}

// # Registration Endpoint

/*
TestRegisterEndpoint_Success verifies the multipart happy path: the
account is created and the staged upload files are all released.
*/
func TestRegisterEndpoint_Success(t *testing.T) {
	service, repo, _ := newTestService(t)
	handler := auth.NewHandler(service)

	stagedBefore := countStagedUploads(t)
	recorder := postRegister(t, handler, validRegisterFields(), map[string][]byte{
		constants.UploadFieldAvatar:     []byte("avatar-bytes"),
		constants.UploadFieldCoverImage: []byte("cover-bytes"),
	})

	// 1. Created, and the user landed in storage
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Len(t, repo.users, 1)

	// 2. Both staged files are gone after the uploads
	assert.Equal(t, stagedBefore, countStagedUploads(t))
}

/*
TestRegisterEndpoint_ValidationFailureLeavesNoStagedFiles verifies that
a request rejected by field validation never leaves an uploaded file
behind in the OS temp directory.
*/
func TestRegisterEndpoint_ValidationFailureLeavesNoStagedFiles(t *testing.T) {
	service, repo, _ := newTestService(t)
	handler := auth.NewHandler(service)

	// 1. Username below the minimum length, avatar attached anyway
	fields := validRegisterFields()
	fields[auth.FieldUsername] = "ab"

	stagedBefore := countStagedUploads(t)
	recorder := postRegister(t, handler, fields, map[string][]byte{
		constants.UploadFieldAvatar:     []byte("avatar-bytes"),
		constants.UploadFieldCoverImage: []byte("cover-bytes"),
	})

	// 2. Rejected before any file was staged
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, repo.users)
	assert.Equal(t, stagedBefore, countStagedUploads(t))
}

/*
TestRegisterEndpoint_MissingAvatarLeavesNoStagedFiles verifies that the
required-avatar rejection also releases an already-staged cover file.
*/
func TestRegisterEndpoint_MissingAvatarLeavesNoStagedFiles(t *testing.T) {
	service, repo, _ := newTestService(t)
	handler := auth.NewHandler(service)

	stagedBefore := countStagedUploads(t)
	recorder := postRegister(t, handler, validRegisterFields(), map[string][]byte{
		constants.UploadFieldCoverImage: []byte("cover-bytes"),
	})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, repo.users)
	assert.Equal(t, stagedBefore, countStagedUploads(t))
}
