// Package blob talks to the object storage bucket that holds uploaded
// receipts.
package blob

import (
	"context"
	"fmt"
	"strings"
)

// Store removes objects from a bucket.
type Store interface {
	Delete(ctx context.Context, path string) error
}

// PublicPrefix is the URL path segment that precedes an object key in a
// public object URL for bucket.
func PublicPrefix(bucket string) string {
	return "/storage/v1/object/public/" + bucket + "/"
}

// PathFromURL extracts the object key from a stored public URL such as
// https://host/storage/v1/object/public/app-images/receipts/a.png.
// It reports false when prefix does not occur in url or nothing follows it.
func PathFromURL(url, prefix string) (string, bool) {
	if prefix == "" {
		return "", false
	}
	i := strings.Index(url, prefix)
	if i < 0 {
		return "", false
	}
	path := url[i+len(prefix):]
	if j := strings.Index(path, prefix); j >= 0 {
		path = path[:j]
	}
	if j := strings.IndexAny(path, "?#"); j >= 0 {
		path = path[:j]
	}
	if path == "" {
		return "", false
	}
	return path, true
}

// Error is a non-success answer from the storage API.
type Error struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("storage delete %q: status %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("storage delete %q: status %d: %s", e.Path, e.StatusCode, e.Body)
}
