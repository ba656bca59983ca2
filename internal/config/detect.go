package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// DetectProjectName derives a project name from manifest files at the root:
// package.json "name", then the go.mod module path's last element, then the
// root directory's basename.
func DetectProjectName(root string) string {
	if name := nameFromPackageJSON(filepath.Join(root, "package.json")); name != "" {
		return name
	}
	if name := nameFromGoMod(filepath.Join(root, "go.mod")); name != "" {
		return name
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return filepath.Base(root)
	}
	return filepath.Base(abs)
}

func nameFromPackageJSON(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	var manifest struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return ""
	}

	// Scoped package names ("@org/app") flatten to the final element.
	name := manifest.Name
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	return sanitizeName(name)
}

func nameFromGoMod(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if module, ok := strings.CutPrefix(line, "module "); ok {
			module = strings.TrimSpace(module)
			if idx := strings.LastIndex(module, "/"); idx >= 0 {
				module = module[idx+1:]
			}
			return sanitizeName(module)
		}
	}
	return ""
}

// sanitizeName keeps project names safe for artifact file names.
func sanitizeName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
