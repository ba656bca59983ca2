package metadata

import (
	"path/filepath"
	"strings"
)

// FallbackDomain is assigned when no path rule yields a value
const FallbackDomain = "core"

// sourceRootMarkers are directory names whose next segment names the domain
var sourceRootMarkers = map[string]bool{
	"src":        true,
	"packages":   true,
	"lib":        true,
	"organs":     true,
	"apps":       true,
	"components": true,
}

// docsSkipSegments are segments after "docs" that do not name a domain
var docsSkipSegments = map[string]bool{
	"index":  true,
	"images": true,
	"assets": true,
	"static": true,
}

// testMarkers are directory names that classify a path as testing
var testMarkers = map[string]bool{
	"tests":       true,
	"test":        true,
	"__tests__":   true,
	"e2e":         true,
	"evaluations": true,
}

// commonDomains are well-known domain keywords matched case-insensitively
// against path segments
var commonDomains = map[string]bool{
	"api":          true,
	"auth":         true,
	"ui":           true,
	"core":         true,
	"server":       true,
	"client":       true,
	"database":     true,
	"websocket":    true,
	"chatbot":      true,
	"specs":        true,
	"architecture": true,
	"tickets":      true,
	"railway":      true,
	"state-server": true,
}

// skipFolders are build/VCS/cache directories that never name a domain
var skipFolders = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"out":          true,
	".git":         true,
	".next":        true,
	".cache":       true,
	"coverage":     true,
	"vendor":       true,
	"tmp":          true,
}

// DomainForPath derives a coarse topical label from a relative file path.
// Rules apply in order until one yields a value; the final fallback is "core".
func DomainForPath(path string) string {
	segments := splitPath(path)
	if len(segments) == 0 {
		return FallbackDomain
	}
	// Drop the file name; only directory segments name domains.
	dirs := segments[:len(segments)-1]

	// Rule (a): segment after a source-root marker.
	for i, seg := range dirs {
		if sourceRootMarkers[seg] && i+1 < len(dirs) && !strings.Contains(dirs[i+1], ".") {
			return dirs[i+1]
		}
	}

	// Rule (b): segment after "docs", unless it is a structural folder.
	for i, seg := range dirs {
		if seg == "docs" {
			if i+1 < len(dirs) && !docsSkipSegments[dirs[i+1]] {
				return dirs[i+1]
			}
			return "docs"
		}
	}

	// Rule (c): test-directory markers.
	for _, seg := range dirs {
		if testMarkers[seg] {
			return "testing"
		}
	}

	// Rule (d): known common-domain keywords.
	for _, seg := range dirs {
		if commonDomains[strings.ToLower(seg)] {
			return strings.ToLower(seg)
		}
	}

	// Rule (e): last plain directory segment.
	for i := len(dirs) - 1; i >= 0; i-- {
		if !skipFolders[dirs[i]] && !strings.Contains(dirs[i], ".") {
			return dirs[i]
		}
	}

	// Rule (f): first path segment.
	if len(dirs) > 0 {
		return dirs[0]
	}

	return FallbackDomain
}

// splitPath splits a relative path into clean segments.
func splitPath(path string) []string {
	path = filepath.ToSlash(path)
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || p == "." {
			continue
		}
		segments = append(segments, p)
	}
	return segments
}
