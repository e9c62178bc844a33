package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func relPaths(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, file := range files {
		rel, err := filepath.Rel(root, file)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"index.html":        "<p>",
		"about.HTM":         "<p>",
		"docs/guide.xhtml":  "<p>",
		"docs/notes.txt":    "x",
		".hidden/skip.html": "<p>",
		".dot.html":         "<p>",
	})

	files, err := Discover(context.Background(), Options{WorkingDir: root})
	require.NoError(t, err)

	assert.Equal(t, []string{"about.HTM", "docs/guide.xhtml", "index.html"}, relPaths(t, root, files))
}

func TestDiscover_ExplicitFileIgnoresExtension(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{"page.tmpl": "<p>"})

	files, err := Discover(context.Background(), Options{WorkingDir: root, Paths: []string{"page.tmpl"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"page.tmpl"}, relPaths(t, root, files))
}

func TestDiscover_CustomExtensionsAndExcludes(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.tmpl":          "",
		"vendor/b.tmpl":   "",
		"src/c.tmpl":      "",
		"src/gen/d.tmpl":  "",
		"src/skip_e.tmpl": "",
	})

	files, err := Discover(context.Background(), Options{
		WorkingDir:   root,
		Extensions:   []string{".tmpl"},
		ExcludeGlobs: []string{"vendor/**", "**/gen", "skip_*"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.tmpl", "src/c.tmpl"}, relPaths(t, root, files))
}

func TestDiscover_DeduplicatesAndSorts(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{"b.html": "", "a.html": ""})

	files, err := Discover(context.Background(), Options{
		WorkingDir: root,
		Paths:      []string{"b.html", ".", "a.html"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.html", "b.html"}, relPaths(t, root, files))
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := Discover(context.Background(), Options{WorkingDir: t.TempDir(), Paths: []string{"nope"}})
	require.Error(t, err)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Discover(ctx, Options{WorkingDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"index.html", "*.html", true},
		{"docs/index.html", "*.html", true},
		{"docs/index.html", "docs/*.html", true},
		{"docs/index.html", "other/*.html", false},
		{"vendor/x/y.html", "vendor/**", true},
		{"vendor", "vendor/**", true},
		{"vendorx/y.html", "vendor/**", false},
		{"a/node_modules/b.html", "**/node_modules", true},
		{"a/b/c.html", "**", true},
		{"a/b.html", "**/*.html", true},
		{"a/b.htm", "**/*.html", false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, matchGlob(tc.path, tc.pattern), "%s ~ %s", tc.path, tc.pattern)
	}
}
