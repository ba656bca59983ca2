// Package config populates the pipeline's configuration surface.
//
// The pipeline consumes Config. Everything about how it gets filled in,
// meaning the TOML file at the indexed root, defaults, and project-name
// auto-detection from manifest files, lives here at the edge rather than
// in the core packages.
package config
