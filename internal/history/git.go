package history

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// warmConcurrency bounds parallel git invocations during prefetch
const warmConcurrency = 8

// GitProvider queries git for last-commit times, one file per query.
type GitProvider struct {
	root string
}

// NewGitProvider creates a provider querying the repository at root.
func NewGitProvider(root string) *GitProvider {
	return &GitProvider{root: root}
}

// LastRevision returns the commit time of the file's most recent commit.
func (g *GitProvider) LastRevision(ctx context.Context, path string) (time.Time, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", g.root, "log", "-1", "--format=%ct", "--", path)
	out, err := cmd.Output()
	if err != nil {
		return time.Time{}, fmt.Errorf("git log failed for %s: %w", path, err)
	}

	raw := strings.TrimSpace(string(out))
	if raw == "" {
		// File exists but has no commits (untracked or freshly added).
		return time.Time{}, ErrUnavailable
	}

	unix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("unexpected git log output %q: %w", raw, err)
	}
	return time.Unix(unix, 0).UTC(), nil
}

// Warm prefetches revision times for a set of paths with bounded
// parallelism. This is pure I/O scheduling ahead of the sequential pipeline;
// individual query failures are ignored here and resurface on the per-file
// query during the run. Providers that do not cache gain nothing from
// warming, so Warm is a no-op unless the provider implements Warmable.
func Warm(ctx context.Context, p Provider, paths []string) {
	if _, ok := p.(warmable); !ok {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(warmConcurrency)
	for _, path := range paths {
		g.Go(func() error {
			_, _ = p.LastRevision(gctx, path)
			return nil
		})
	}
	_ = g.Wait()
}

// warmable marks providers whose LastRevision results are retained, making
// prefetch worthwhile.
type warmable interface {
	warmable()
}
