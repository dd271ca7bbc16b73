// Package model locates the optional trained-model artifact. The artifact
// is only described, never decoded: no inference feature consumes it yet.
package model

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrArtifactNotFound is returned when a configured artifact path does not exist.
var ErrArtifactNotFound = errors.New("model artifact not found")

// Artifact describes a model file on disk.
type Artifact struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Locate stats the artifact at path. An empty path means no model is
// configured and returns nil, nil.
func Locate(path string) (*Artifact, error) {
	if path == "" {
		return nil, nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("stat model artifact: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("model artifact %s is a directory", path)
	}
	return &Artifact{Path: path, Size: info.Size(), ModTime: info.ModTime().UTC()}, nil
}
