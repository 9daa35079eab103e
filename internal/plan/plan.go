// Package plan computes collision-safe rename destinations for single files.
// It only ever reads the filesystem; executing a plan is the caller's job.
package plan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Plan is one pending rename.
type Plan struct {
	Source string
	Dest   string
}

// Resolver plans renames within one processing pass. It remembers
// destinations promised to earlier files, so two files that normalize to the
// same stem get distinct destinations even in a dry run where nothing is
// actually renamed yet.
type Resolver struct {
	claimed map[string]struct{}
}

// NewResolver returns a Resolver for a fresh pass over a folder.
func NewResolver() *Resolver {
	return &Resolver{claimed: make(map[string]struct{})}
}

// Rename builds the destination path for src using the desired stem and the
// source extension lowercased. The second return value is false when the
// destination name equals the current name, which makes repeated runs over an
// already-normalized folder no-ops.
//
// When the candidate path exists on disk, or was claimed earlier in this
// pass, a " (N)" suffix is appended before the extension (N counting up from
// 1) until a free path is found.
func (r *Resolver) Rename(src, desiredStem string) (Plan, bool) {
	ext := strings.ToLower(filepath.Ext(src))
	dest := filepath.Join(filepath.Dir(src), desiredStem+ext)

	if filepath.Base(dest) == filepath.Base(src) {
		return Plan{}, false
	}

	dest = r.uniqueDestination(dest)
	r.claimed[dest] = struct{}{}

	return Plan{Source: src, Dest: dest}, true
}

func (r *Resolver) uniqueDestination(dest string) string {
	if !r.occupied(dest) {
		return dest
	}

	dir := filepath.Dir(dest)
	ext := filepath.Ext(dest)
	base := strings.TrimSuffix(filepath.Base(dest), ext)

	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", base, n, ext))
		if !r.occupied(candidate) {
			return candidate
		}
	}
}

// occupied treats any stat outcome other than "does not exist" as taken, so
// an unreadable path makes the loop keep probing instead of claiming it.
func (r *Resolver) occupied(path string) bool {
	if _, ok := r.claimed[path]; ok {
		return true
	}

	_, err := os.Lstat(path)
	if err == nil {
		return true
	}

	return !errors.Is(err, fs.ErrNotExist)
}
