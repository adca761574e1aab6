package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPStore deletes objects through the storage REST API:
// DELETE {base}/storage/v1/object/{bucket} with {"prefixes": [...]}.
type HTTPStore struct {
	HTTP    *http.Client
	BaseURL string
	Bucket  string
	Key     string
}

func NewHTTPStore(baseURL, bucket, key string) *HTTPStore {
	return &HTTPStore{
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Bucket:  bucket,
		Key:     key,
	}
}

func (s *HTTPStore) Delete(ctx context.Context, path string) error {
	body, err := json.Marshal(map[string][]string{"prefixes": {path}})
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s", s.BaseURL, url.PathEscape(s.Bucket))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.Key != "" {
		req.Header.Set("Authorization", "Bearer "+s.Key)
		req.Header.Set("apikey", s.Key)
	}

	res, err := s.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("storage delete %q: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
	return &Error{Path: path, StatusCode: res.StatusCode, Body: strings.TrimSpace(string(msg))}
}
