// Package ingest discovers payslip documents under an input directory.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Document is one discovered input file.
type Document struct {
	Path    string // as walked, rooted at the scan root
	RelPath string // relative to the scan root, slash separated
}

type DirStats struct {
	Scanned uint32 // every entry the walk visited
	Matched uint32 // PDF files handed to the visitor
	Failed  uint32 // entries the walk could not read
}

// VisitFunc handles one document. Returning an error stops the scan.
type VisitFunc func(ctx context.Context, doc Document) error

// WalkError is an entry the directory walk itself could not read.
type WalkError struct {
	Path string
	Err  error
}

// ScanDirectory walks root in lexical order, skips hidden entries if requested,
// and calls visit for each PDF. Unreadable entries are collected, not fatal.
func ScanDirectory(ctx context.Context, root string, skipHidden bool, visit VisitFunc) (DirStats, []WalkError, error) {
	if strings.TrimSpace(root) == "" {
		return DirStats{}, nil, errors.New("root path is required")
	}

	var stats DirStats
	var walkErrs []WalkError

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Scanned++
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			walkErrs = append(walkErrs, WalkError{Path: path, Err: walkErr})
			stats.Failed++
			return nil // continue walking
		}
		if skipHidden && path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !AllowedExt(filepath.Ext(path)) {
			return nil
		}
		stats.Matched++

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		return visit(ctx, Document{Path: path, RelPath: filepath.ToSlash(rel)})
	})
	if err != nil {
		return stats, walkErrs, fmt.Errorf("walk %s: %w", root, err)
	}
	return stats, walkErrs, nil
}
