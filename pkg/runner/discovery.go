package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Discover finds markup files matching opts. Files named explicitly are
// always included, whatever their extension; directories are walked for
// files with a matching extension. The result is sorted and deduplicated.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	extensions := opts.effectiveExtensions()
	seen := make(map[string]struct{})
	var files []string

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			add(absPath)
			continue
		}

		walked, err := walkDirectory(ctx, absPath, workDir, extensions, opts.ExcludeGlobs)
		if err != nil {
			return nil, err
		}
		for _, path := range walked {
			add(path)
		}
	}

	slices.Sort(files)

	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walkDirectory collects matching files under root, skipping hidden entries
// and anything matching an exclude pattern. Symlinked directories are not
// followed.
func walkDirectory(
	ctx context.Context,
	root string,
	workDir string,
	extensions []string,
	excludes []string,
) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath, relErr := filepath.Rel(workDir, path)
		if relErr != nil {
			relPath = path
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || matchesAny(relPath, excludes) {
				return filepath.SkipDir
			}
			return nil
		}

		if hidden || (entry.Type()&fs.ModeSymlink != 0 && isSymlinkDir(path)) {
			return nil
		}

		if hasExtension(path, extensions) && !matchesAny(relPath, excludes) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func isSymlinkDir(path string) bool {
	info, err := os.Stat(path)
	return err != nil || info.IsDir()
}

func hasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	return slices.ContainsFunc(extensions, func(candidate string) bool {
		return strings.EqualFold(candidate, ext)
	})
}

func matchesAny(relPath string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(pattern string) bool {
		return matchGlob(relPath, pattern)
	})
}

// matchGlob matches a slash-separated path against a glob pattern. Besides
// filepath.Match syntax it understands "dir/**" (anything under dir) and
// "**/name" (name as any path component or suffix). A pattern without a
// slash also matches the base name.
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	prefix, suffix, hasDoubleStar := strings.Cut(pattern, "**")
	if !hasDoubleStar {
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
		matched, _ := filepath.Match(pattern, filepath.Base(path))
		return matched
	}

	prefix = strings.TrimSuffix(prefix, "/")
	suffix = strings.TrimPrefix(suffix, "/")

	if prefix != "" && path != prefix && !strings.HasPrefix(path, prefix+"/") {
		return false
	}
	if suffix == "" {
		return true
	}

	for _, part := range strings.Split(path, "/") {
		if matched, _ := filepath.Match(suffix, part); matched {
			return true
		}
	}
	return strings.HasSuffix(path, "/"+suffix) || path == suffix
}
