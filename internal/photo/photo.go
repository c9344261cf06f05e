// Package photo produces opaque photo references for events.
// It never reads or copies image bytes; a reference is a file:// URI.
package photo

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Mode restricts which media the picker accepts.
type Mode int

const (
	// MediaAll accepts images and videos.
	MediaAll Mode = iota
	// MediaImages accepts images only.
	MediaImages
)

func (m Mode) String() string {
	if m == MediaImages {
		return "images"
	}
	return "all"
}

// ParseMode maps "all" and "images" to a Mode. Empty means MediaAll.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return MediaAll, nil
	case "images", "image":
		return MediaImages, nil
	default:
		return MediaAll, fmt.Errorf("unknown photo mode %q", s)
	}
}

var (
	// ErrUnsupportedMedia is returned when the file type is not allowed by the Mode.
	ErrUnsupportedMedia = errors.New("unsupported media type")
	// ErrNotAFile is returned for directories and other non-regular paths.
	ErrNotAFile = errors.New("not a regular file")
)

// Picker asks the user for a photo. ok is false when the user cancelled.
type Picker interface {
	Pick(ctx context.Context) (ref string, ok bool, err error)
}

// PathPicker resolves a path typed by the user into a file:// reference.
type PathPicker struct {
	Mode Mode
	// Prompt returns the user's answer. An empty answer cancels.
	Prompt func(ctx context.Context) (string, error)
}

// Pick implements Picker.
func (p PathPicker) Pick(ctx context.Context) (string, bool, error) {
	if p.Prompt == nil {
		return "", false, errors.New("photo: no prompt configured")
	}
	answer, err := p.Prompt(ctx)
	if err != nil {
		return "", false, err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", false, nil
	}
	ref, err := Resolve(answer, p.Mode)
	if err != nil {
		return "", false, err
	}
	return ref, true, nil
}

// Resolve checks that path (or a file:// URI) names an existing file of an
// accepted media type and returns its file:// URI.
func Resolve(path string, mode Mode) (string, error) {
	if strings.HasPrefix(path, "file://") {
		u, err := url.Parse(path)
		if err != nil {
			return "", fmt.Errorf("photo %q: %w", path, err)
		}
		path = u.Path
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("photo %q: %w", path, err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("photo %q: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		return "", fmt.Errorf("photo %q: %w", path, ErrNotAFile)
	}
	if !accepts(mode, mime.TypeByExtension(strings.ToLower(filepath.Ext(abs)))) {
		return "", fmt.Errorf("photo %q (%s): %w", path, mode, ErrUnsupportedMedia)
	}

	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

func accepts(mode Mode, mimeType string) bool {
	if strings.HasPrefix(mimeType, "image/") {
		return true
	}
	return mode == MediaAll && strings.HasPrefix(mimeType, "video/")
}
