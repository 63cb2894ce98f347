// Package ingestion loads resume text from files or streams for analysis.
package ingestion

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// MaxResumeBytes caps how much input is read from a single source.
const MaxResumeBytes = 4 << 20

// ErrTooLarge is returned when a source exceeds MaxResumeBytes.
var ErrTooLarge = errors.New("resume exceeds maximum size")

// IsHTMLPath reports whether path has an HTML file extension.
func IsHTMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// ReadFile reads resume text from path. HTML files (by extension, or when
// asHTML is set) are reduced to their visible text first.
func ReadFile(path string, asHTML bool) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Read(f, asHTML || IsHTMLPath(path))
}

// Read reads resume text from r. Plain text is returned byte-for-byte.
func Read(r io.Reader, asHTML bool) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxResumeBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read resume: %w", err)
	}
	if len(data) > MaxResumeBytes {
		return "", ErrTooLarge
	}

	if !asHTML {
		return string(data), nil
	}
	return ExtractText(string(data))
}
