package blob

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPathFromURL(t *testing.T) {
	prefix := PublicPrefix("app-images")
	cases := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://x.supabase.co/storage/v1/object/public/app-images/receipts/a.png", "receipts/a.png", true},
		{"https://x.supabase.co/storage/v1/object/public/app-images/a%20b.jpg?t=1", "a%20b.jpg", true},
		{"https://x.supabase.co/storage/v1/object/public/other-bucket/a.png", "", false},
		{"https://x.supabase.co/storage/v1/object/public/app-images/", "", false},
		{"not a url", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := PathFromURL(tc.url, prefix)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("PathFromURL(%q)=(%q,%v), want (%q,%v)", tc.url, got, ok, tc.want, tc.ok)
		}
	}
	if _, ok := PathFromURL("anything", ""); ok {
		t.Fatalf("empty prefix must never match")
	}
}

func TestHTTPStore_Delete(t *testing.T) {
	var gotPrefixes []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/storage/v1/object/app-images" {
			http.Error(w, `{"error":"bad route"}`, http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		var body struct {
			Prefixes []string `json:"prefixes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
			return
		}
		gotPrefixes = body.Prefixes
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"receipts/a.png"}]`))
	}))
	defer srv.Close()

	s := NewHTTPStore(srv.URL+"/", "app-images", "secret")
	if err := s.Delete(context.Background(), "receipts/a.png"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(gotPrefixes) != 1 || gotPrefixes[0] != "receipts/a.png" {
		t.Fatalf("prefixes=%v", gotPrefixes)
	}
}

func TestHTTPStore_DeleteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"storage down"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := NewHTTPStore(srv.URL, "app-images", "").Delete(context.Background(), "a.png")
	var serr *Error
	if !errors.As(err, &serr) {
		t.Fatalf("err=%v, want *Error", err)
	}
	if serr.StatusCode != http.StatusServiceUnavailable || serr.Path != "a.png" {
		t.Fatalf("err=%+v", serr)
	}
}
