package index

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phuslu/log"

	"github.com/dshills/codeatlas/pkg/types"
)

// Load reads an index artifact and returns the full reconstructed entry
// list. If the artifact is a partition manifest, each referenced partition
// artifact is resolved relative to the main artifact's directory and its
// entries are concatenated in manifest order. A referenced partition that is
// missing is skipped with a warning; a malformed entry is fatal to the load.
func Load(path string) ([]types.IndexEntry, error) {
	art, err := LoadArtifact(path)
	if err != nil {
		return nil, err
	}

	if !art.IsManifest() {
		return art.Entries, nil
	}

	dir := filepath.Dir(path)
	var entries []types.IndexEntry
	for _, ref := range art.Partitions {
		part, err := LoadArtifact(filepath.Join(dir, ref.Artifact))
		if err != nil {
			if os.IsNotExist(err) {
				log.Warn().Str("artifact", ref.Artifact).Str("partition", ref.Name).
					Msg("referenced partition artifact missing, skipping")
				continue
			}
			return nil, fmt.Errorf("failed to load partition %s: %w", ref.Name, err)
		}
		entries = append(entries, part.Entries...)
	}
	return entries, nil
}

// LoadArtifact reads and parses a single artifact file without resolving
// partition references.
func LoadArtifact(path string) (*types.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	art, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return art, nil
}

// Find locates the main index artifact in a directory: the single
// "*-index.yaml" file that is not a partition artifact. Returns
// types.ErrNoArtifact when none exists.
func Find(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*-index.yaml"))
	if err != nil {
		return "", err
	}

	// The glob alone cannot be trusted: a domain whose name ends in "index"
	// yields a partition artifact like "demo-index-search-index.yaml", which
	// also matches. Partition artifacts name themselves with a top-level
	// partition scalar, so candidates are filtered on that header.
	var mains []string
	for _, m := range matches {
		isPart, err := isPartitionArtifact(m)
		if err != nil {
			return "", err
		}
		if !isPart {
			mains = append(mains, m)
		}
	}

	if len(mains) == 0 {
		return "", types.ErrNoArtifact
	}
	if len(mains) > 1 {
		return "", fmt.Errorf("multiple index artifacts in %s: %s", dir, strings.Join(basenames(mains), ", "))
	}
	return mains[0], nil
}

// isPartitionArtifact reports whether the artifact's header carries the
// top-level partition scalar that WritePartition stamps into every
// partition artifact.
func isPartitionArtifact(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read artifact %s: %w", filepath.Base(path), err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		// Header scalars end where indented content or the first section
		// header begins.
		if strings.HasPrefix(line, " ") || strings.HasSuffix(trimmed, ":") {
			break
		}
		if strings.HasPrefix(line, "partition:") {
			return true, nil
		}
	}
	return false, nil
}

// LoadDir locates the main artifact in dir and loads its full entry list.
func LoadDir(dir string) ([]types.IndexEntry, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

func basenames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}
