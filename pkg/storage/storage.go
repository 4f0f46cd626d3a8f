// Package storage persists validated extraction records as JSON artifacts.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"invoicebatch/models"
)

// Storage writes one JSON artifact per validated invoice into outputDir.
// Existing artifacts are silently overwritten; callers that want skip
// semantics check HasFile first.
type Storage struct {
	outputDir string
}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

// New ensures the output directory exists and returns a Storage rooted there.
func New(outputDir string) (*Storage, error) {
	if outputDir == "" {
		outputDir = models.DefaultOutputDir
	}
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	return &Storage{outputDir: outputDir}, nil
}

// ArtifactPath derives the output path for a source document:
// the source base name with its extension replaced by "_data.json".
// Deterministic so reruns land on the same file.
func (s *Storage) ArtifactPath(sourcePath string) string {
	base := filepath.Base(sourcePath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(s.outputDir, name+"_data.json")
}

// SaveResult serializes the record as indented JSON at the derived path and
// returns the path and the number of bytes written.
func (s *Storage) SaveResult(result models.ExtractionResult, sourcePath string) (string, int64, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", 0, fmt.Errorf("failed to marshal result for %s: %w", sourcePath, err)
	}

	path := s.ArtifactPath(sourcePath)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", 0, fmt.Errorf("failed to save artifact %s: %w", path, err)
	}
	return path, int64(len(data)), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

// HasFile reports whether an artifact already exists at the given path.
func (s *Storage) HasFile(path string) bool {
	return fileExists(path)
}

// GetFileStats returns size and mtime for a written artifact.
func (s *Storage) GetFileStats(path string) (*FileStats, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}
	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}
