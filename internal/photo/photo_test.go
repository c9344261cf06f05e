package photo

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
	return p
}

func answer(s string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) { return s, nil }
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	require.Equal(t, MediaAll, m)

	m, err = ParseMode("Images")
	require.NoError(t, err)
	require.Equal(t, MediaImages, m)

	_, err = ParseMode("audio")
	require.Error(t, err)
}

func TestPathPicker_Image(t *testing.T) {
	p := writeFile(t, "flood.jpg")
	ref, ok, err := PathPicker{Mode: MediaImages, Prompt: answer(p)}.Pick(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "file://"+filepath.ToSlash(p), ref)
}

func TestPathPicker_EmptyAnswerCancels(t *testing.T) {
	ref, ok, err := PathPicker{Prompt: answer("   ")}.Pick(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, ref)
}

func TestPathPicker_PromptError(t *testing.T) {
	boom := errors.New("eof")
	_, ok, err := PathPicker{Prompt: func(context.Context) (string, error) { return "", boom }}.Pick(context.Background())
	require.ErrorIs(t, err, boom)
	require.False(t, ok)
}

func TestResolve_Missing(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "nope.png"), MediaAll)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestResolve_Directory(t *testing.T) {
	_, err := Resolve(t.TempDir(), MediaAll)
	require.ErrorIs(t, err, ErrNotAFile)
}

func TestResolve_NotMedia(t *testing.T) {
	p := writeFile(t, "notes.unknownext")
	_, err := Resolve(p, MediaImages)
	require.ErrorIs(t, err, ErrUnsupportedMedia)
}

func TestResolve_FileURI(t *testing.T) {
	p := writeFile(t, "fire.png")
	uri := "file://" + filepath.ToSlash(p)
	ref, err := Resolve(uri, MediaImages)
	require.NoError(t, err)
	require.Equal(t, uri, ref)
}
