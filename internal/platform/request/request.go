// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/constants"
	"github.com/taibuivan/vidora/internal/platform/ctxutil"
	"github.com/taibuivan/vidora/internal/platform/sec"
	"github.com/taibuivan/vidora/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (UUID/Slug) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {

	// Get user claims
	claims := ctxutil.GetAuthUser(request.Context())

	// If the user is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}

/*
RequiredUserID returns the User ID of the currently logged-in user.

Returns:
  - string: User UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {

	// Get user claims
	claims, err := RequiredClaims(request)

	// If the user is not authenticated, return an error
	if err != nil {
		return "", err
	}

	return claims.UserID, nil
}

/*
FormFilePath stages an uploaded multipart file into the OS temp directory and
returns its local path.

Description: Mirrors the classic upload-middleware flow: the handler hands the
service a plain local path, and the media host adapter owns deleting it after
the remote upload attempt.

Parameters:
  - request: *http.Request (multipart/form-data)
  - field: string (form field name, e.g. "avatar")

Returns:
  - string: Local temp file path, or "" if the field was not present
  - error: apperr.Internal on filesystem or parse failures
*/
func FormFilePath(request *http.Request, field string) (string, error) {
	if request.MultipartForm == nil {
		if err := request.ParseMultipartForm(constants.MaxMultipartMemory); err != nil {
			return "", validate.ErrInvalidJSON
		}
	}

	file, header, err := request.FormFile(field)
	if err != nil {
		// Absence is not an error here. Required-asset policy lives in the service layer.
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", apperr.Internal(fmt.Errorf("requestutil: form file %q: %w", field, err))
	}
	defer func() { _ = file.Close() }()

	tempFile, err := os.CreateTemp("", constants.TempUploadPrefix+"*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("requestutil: create temp file: %w", err))
	}

	if _, err := io.Copy(tempFile, file); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempFile.Name())
		return "", apperr.Internal(fmt.Errorf("requestutil: stage upload: %w", err))
	}

	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempFile.Name())
		return "", apperr.Internal(fmt.Errorf("requestutil: close temp file: %w", err))
	}

	return tempFile.Name(), nil
}
