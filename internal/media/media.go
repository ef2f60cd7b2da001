// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media defines the Media Host Adapter boundary.

It moves locally staged upload files to remote object storage and returns a
stable content identifier plus a public URL, and can later delete assets by
identifier. The rest of the application never talks to the storage SDK
directly.

# Architecture

  - Host: The narrow domain-facing contract (Upload, Delete).
  - Asset: The (identifier, URL) pair persisted on domain records.
  - Client: The MinIO/S3-compatible implementation, constructed from an
    injected configuration struct — no process-wide client state.
*/
package media

import "context"

// Kind classifies an asset for deletion routing on the media host.
type Kind string

const (
	// KindImage covers avatars, cover images, and thumbnails.
	KindImage Kind = "image"

	// KindVideo covers published video files.
	KindVideo Kind = "video"
)

// Asset is the durable reference to a remotely stored file.
type Asset struct {
	// ID is the stable content identifier on the media host (object key).
	ID string `json:"id"`

	// URL is the public address clients use to fetch the asset.
	URL string `json:"url"`
}

// IsZero reports whether the asset reference is empty.
func (a Asset) IsZero() bool {
	return a.ID == "" && a.URL == ""
}

// Host is the Media Host Adapter contract consumed by domain services.
type Host interface {

	/*
		Upload transfers a locally staged file to remote storage.

		Description: The local temp file is ALWAYS removed before returning,
		on both the success and the failure path.

		Parameters:
		  - context: context.Context
		  - localPath: string (staged temp file; "" yields a zero Asset and no error)
		  - kind: Kind

		Returns:
		  - Asset: Content identifier and public URL
		  - error: Upstream transfer failures
	*/
	Upload(context context.Context, localPath string, kind Kind) (Asset, error)

	/*
		Delete removes a remote asset by its content identifier.

		Description: An empty id is a no-op. Callers performing stale-asset
		cleanup treat failures as non-fatal.

		Parameters:
		  - context: context.Context
		  - id: string
		  - kind: Kind

		Returns:
		  - error: Upstream deletion failures
	*/
	Delete(context context.Context, id string, kind Kind) error
}
