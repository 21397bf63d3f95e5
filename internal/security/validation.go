// Package security provides input validation for paths and URLs supplied
// on the command line.
package security

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ValidateImageURL validates an HTTP(S) URL before an image is downloaded
// from it.
func ValidateImageURL(urlStr string) error {
	if urlStr == "" {
		return fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("invalid URL protocol (only http:// and https:// allowed): %s", parsed.Scheme)
	}

	if parsed.Hostname() == "" {
		return fmt.Errorf("URL must have a hostname")
	}

	if parsed.User != nil {
		return fmt.Errorf("URL must not embed credentials")
	}

	return nil
}

// ValidateOutputPath checks that a palette can be written to filePath: the
// path must not name a directory and its parent directory must exist.
func ValidateOutputPath(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("empty output path")
	}

	clean := filepath.Clean(filePath)
	if info, err := os.Stat(clean); err == nil && info.IsDir() {
		return fmt.Errorf("output path is a directory: %s", filePath)
	}

	parent := filepath.Dir(clean)
	info, err := os.Stat(parent)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("output directory does not exist: %s", parent)
		}
		return fmt.Errorf("failed to access output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output parent is not a directory: %s", parent)
	}

	return nil
}
