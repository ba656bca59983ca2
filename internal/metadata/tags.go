package metadata

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// extensionTags maps file extensions to their technology tags
var extensionTags = map[string][]string{
	".ts":   {"typescript"},
	".tsx":  {"typescript", "react"},
	".js":   {"javascript"},
	".jsx":  {"javascript", "react"},
	".md":   {"documentation"},
	".mdx":  {"documentation"},
	".json": {"config"},
	".yaml": {"config"},
	".yml":  {"config"},
}

// frameworkImports maps import-statement patterns to framework tags
var frameworkImports = []struct {
	re  *regexp.Regexp
	tag string
}{
	{regexp.MustCompile(`(?m)^\s*import\s+.*from\s+['"]react['"]`), "react"},
	{regexp.MustCompile(`(?m)^\s*import\s+.*from\s+['"]express['"]`), "express"},
	{regexp.MustCompile(`(?m)^\s*import\s+.*from\s+['"]vue['"]`), "vue"},
	{regexp.MustCompile(`(?m)import\s+.*from\s+['"]socket\.io(-client)?['"]`), "websocket"},
	{regexp.MustCompile(`(?m)import\s+.*from\s+['"](pg|postgres|prisma|@prisma/client)['"]`), "database"},
	{regexp.MustCompile(`(?m)import\s+.*from\s+['"](redis|ioredis)['"]`), "redis"},
	{regexp.MustCompile(`(?m)import\s+.*from\s+['"]zustand['"]`), "state"},
}

// Code-pattern detectors
var (
	routeHandlerRe = regexp.MustCompile(`\b(?:app|router|server)\.(?:get|post|put|delete|patch)\s*\(`)
	pubSubRe       = regexp.MustCompile(`\.(?:publish|subscribe|emit)\s*\(`)
	uiHookRe       = regexp.MustCompile(`\buse(?:State|Effect|Memo|Callback|Reducer|Ref|Context)\s*\(`)
	testAssertRe   = regexp.MustCompile(`\b(?:expect|assert)\s*\(`)
)

// pathSegmentTags maps directory names to role tags
var pathSegmentTags = map[string]string{
	"components": "components",
	"hooks":      "hooks",
	"utils":      "utils",
	"services":   "services",
	"models":     "models",
	"types":      "types",
	"tests":      "testing",
	"test":       "testing",
	"__tests__":  "testing",
	"e2e":        "e2e",
}

// infraFilenameTags maps container/CI/deployment basenames to infra tags
var infraFilenameTags = map[string][]string{
	"dockerfile":          {"docker", "infra"},
	"docker-compose.yml":  {"docker", "infra"},
	"docker-compose.yaml": {"docker", "infra"},
	"railway.json":        {"railway", "deployment"},
	".gitlab-ci.yml":      {"ci", "infra"},
}

// TagsForFile derives the deterministic tag set for a file from its path
// and content patterns. The result is sorted and deduplicated; an empty
// set is valid.
func TagsForFile(path, content string) []string {
	seen := make(map[string]bool)

	// Extension tags
	ext := strings.ToLower(filepath.Ext(path))
	for _, tag := range extensionTags[ext] {
		seen[tag] = true
	}

	// Framework imports
	for _, fi := range frameworkImports {
		if fi.re.MatchString(content) {
			seen[fi.tag] = true
		}
	}

	// Code patterns
	if routeHandlerRe.MatchString(content) {
		seen["api"] = true
		seen["routes"] = true
	}
	if pubSubRe.MatchString(content) {
		seen["events"] = true
	}
	if uiHookRe.MatchString(content) {
		seen["hooks"] = true
		seen["react"] = true
	}
	if testAssertRe.MatchString(content) {
		seen["testing"] = true
	}

	// Path segments
	for _, seg := range splitPath(path) {
		if tag, ok := pathSegmentTags[strings.ToLower(seg)]; ok {
			seen[tag] = true
		}
	}

	// Infra filenames
	base := strings.ToLower(filepath.Base(path))
	for _, tag := range infraFilenameTags[base] {
		seen[tag] = true
	}
	if strings.Contains(filepath.ToSlash(path), ".github/workflows/") {
		seen["ci"] = true
		seen["infra"] = true
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
