package candidate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/extract"
)

// Load resolves patterns to resume files and extracts their text. A pattern
// is a file, a directory (searched recursively for supported resumes) or a
// doublestar glob such as "resumes/**/*.pdf". Extraction failures are kept
// on the candidate instead of failing the load.
func Load(ctx context.Context, patterns []string, extractText extract.Func, logger *zap.Logger) (*Candidates, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	paths, err := resolve(patterns, logger)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.New("no resumes matched the given patterns")
	}

	candidates := &Candidates{Items: make([]*Candidate, 0, len(paths))}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c := &Candidate{
			ID:   path,
			Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Path: path,
		}

		text, err := extractText(path)
		if err != nil {
			logger.Warn("extracting resume text failed", zap.String("path", path), zap.Error(err))
			c.Error = err.Error()
		} else {
			c.Text = text
		}

		candidates.Items = append(candidates.Items, c)
	}

	return candidates, nil
}

func resolve(patterns []string, logger *zap.Logger) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		info, statErr := os.Stat(pattern)
		switch {
		case statErr == nil && info.IsDir():
			found, err := doublestar.Glob(os.DirFS(pattern), "**/*", doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("walk %s: %w", pattern, err)
			}
			slices.Sort(found)
			for _, rel := range found {
				if isResume(rel) {
					add(filepath.Join(pattern, filepath.FromSlash(rel)))
				}
			}
		case statErr == nil:
			add(pattern)
		case hasMeta(pattern):
			found, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("glob %s: %w", pattern, err)
			}
			if len(found) == 0 {
				logger.Warn("pattern matched no files", zap.String("pattern", pattern))
			}
			slices.Sort(found)
			for _, p := range found {
				add(p)
			}
		default:
			return nil, fmt.Errorf("resume %s: %w", pattern, statErr)
		}
	}

	return paths, nil
}

func isResume(path string) bool {
	return slices.Contains(extract.ResumeExtensions, strings.ToLower(filepath.Ext(path)))
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
