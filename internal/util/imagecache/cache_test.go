package imagecache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantExt string
	}{
		{"png", "https://example.com/wall.png", ".png"},
		{"query string", "https://example.com/wall.JPG?size=large", ".jpg"},
		{"no extension", "https://example.com/image", ".img"},
		{"long extension", "https://example.com/file.original", ".img"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filename(tt.url)
			if !strings.HasSuffix(got, tt.wantExt) {
				t.Errorf("Filename(%q) = %s, want suffix %s", tt.url, got, tt.wantExt)
			}
			if len(got) != 32+len(tt.wantExt) {
				t.Errorf("Filename(%q) = %s, want 32 hex chars + ext", tt.url, got)
			}
			if Filename(tt.url) != got {
				t.Errorf("Filename(%q) is not stable", tt.url)
			}
		})
	}
}

func TestDownloadAndCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("pixels"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	url := srv.URL + "/a.png"

	path, err := DownloadAndCache(context.Background(), url, CacheOptions{CacheDir: dir})
	if err != nil {
		t.Fatalf("DownloadAndCache() error = %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("cached path %s not in %s", path, dir)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "pixels" {
		t.Fatalf("cached file = %q, %v", data, err)
	}

	if _, err := DownloadAndCache(context.Background(), url, CacheOptions{CacheDir: dir}); err != nil {
		t.Fatalf("second DownloadAndCache() error = %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}

	if _, err := DownloadAndCache(context.Background(), url, CacheOptions{CacheDir: dir, Refresh: true}); err != nil {
		t.Fatalf("refresh DownloadAndCache() error = %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("server hits after refresh = %d, want 2", got)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("cache dir has %d entries, want 1 (temporary files removed)", len(entries))
	}
}

func TestDownloadAndCacheInvalidURL(t *testing.T) {
	if _, err := DownloadAndCache(context.Background(), "ftp://example.com/a.png", CacheOptions{CacheDir: t.TempDir()}); err == nil {
		t.Error("expected error for non-HTTP URL")
	}
}
