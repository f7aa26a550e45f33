// Package gitindex implements domain.StagedSource on top of go-git.
package gitindex

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/sniffgate/sniffgate/internal/domain"
)

// Client is a stateless git index adapter. Every call opens the repository
// fresh so each orchestration run sees the live index.
type Client struct{}

func New() *Client {
	return &Client{}
}

// StagedFiles returns the staged entries under dir whose extension is in
// extensions, excluding deletions. A dir that is not inside a git
// repository yields an empty result, not an error: "nothing to check" is a
// valid terminal state.
//
// go-git exposes the status as a map, so the diff order is not observable;
// entries are sorted by path for a deterministic, stable order.
func (c *Client) StagedFiles(dir string, extensions []string) ([]domain.StagedFile, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, nil
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, nil
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading git status: %w", err)
	}

	root := wt.Filesystem.Root()

	var files []domain.StagedFile
	for rel, st := range status {
		kind, ok := stagingKind(st.Staging)
		if !ok {
			continue
		}
		if !hasExtension(rel, extensions) {
			continue
		}
		files = append(files, domain.StagedFile{
			Path:    filepath.Join(root, filepath.FromSlash(rel)),
			RelPath: rel,
			Status:  kind,
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// Restage adds paths (relative to the repository root) back to the index.
// One atomic call per orchestration run, issued only after the fix pass has
// fully completed.
func (c *Client) Restage(dir string, paths []string) error {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return fmt.Errorf("opening git repo: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	for _, p := range paths {
		if _, err := wt.Add(p); err != nil {
			return fmt.Errorf("re-staging %s: %w", p, err)
		}
	}
	return nil
}

// stagingKind maps a go-git staging code to a domain status. Deleted and
// unstaged entries are dropped.
func stagingKind(code git.StatusCode) (string, bool) {
	switch code {
	case git.Added:
		return domain.StatusAdded, true
	case git.Modified:
		return domain.StatusModified, true
	case git.Renamed:
		return domain.StatusRenamed, true
	case git.Copied:
		return domain.StatusCopied, true
	default:
		return "", false
	}
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	for _, e := range extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
