package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tagforest/pkg/fsutil"
)

func TestReadSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>hi</p>"), 0o600))

	content, info, err := fsutil.ReadSource(context.Background(), path, 0)
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(content))
	assert.Equal(t, path, info.Path)
	assert.Equal(t, int64(9), info.Size)
	assert.False(t, info.ModTime.IsZero())
}

func TestReadSource_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	big := filepath.Join(dir, "big.html")
	require.NoError(t, os.WriteFile(big, []byte("0123456789"), 0o600))

	tests := []struct {
		name    string
		path    string
		maxSize int64
		wantErr error
	}{
		{name: "missing", path: filepath.Join(dir, "missing.html"), wantErr: fsutil.ErrNotFound},
		{name: "directory", path: dir, wantErr: fsutil.ErrIsDirectory},
		{name: "too large", path: big, maxSize: 4, wantErr: fsutil.ErrTooLarge},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := fsutil.ReadSource(context.Background(), testCase.path, testCase.maxSize)
			require.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestReadSource_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := fsutil.ReadSource(ctx, "whatever.html", 0)
	require.ErrorIs(t, err, context.Canceled)
}
