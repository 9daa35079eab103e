// Package library walks the configured audio folders and drives the
// per-file flow: normalize the stem, plan a rename, report it, and apply it
// when requested.
package library

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/go-audio-tidy/internal/plan"
	"github.com/example/go-audio-tidy/internal/stem"
)

// Recognized audio file extensions (lowercase, with leading dot).
var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".m4a":  true,
	".aac":  true,
	".ogg":  true,
	".opus": true,
	".wav":  true,
}

// IsAudioFile reports whether name carries a recognized audio extension.
// The comparison is case-insensitive.
func IsAudioFile(name string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}

// Folder pairs a directory with the stem ruleset applied to its files.
type Folder struct {
	Path string
	Mode stem.Mode
}

// Summary reports one folder pass.
type Summary struct {
	// Scanned counts the audio files considered.
	Scanned int
	// Changes counts the rename plans produced.
	Changes int
	// Failed counts renames that were attempted but failed.
	Failed int
	// Missing is set when the folder did not exist.
	Missing bool
}

// Processor processes folders one file at a time, in sorted name order.
// Report lines go to Out; Log receives structured progress events.
type Processor struct {
	// Apply executes renames. When false the processor only reports plans.
	Apply bool
	Out   io.Writer
	Log   *slog.Logger
}

func (p *Processor) logger() *slog.Logger {
	if p.Log != nil {
		return p.Log
	}

	return slog.Default()
}

// Process runs one pass over folder. A missing folder is reported and
// skipped, not an error. Individual rename failures are reported and counted
// but do not stop the pass; the only error return is a broken folder listing
// or an unknown mode.
func (p *Processor) Process(folder Folder) (Summary, error) {
	var sum Summary

	entries, err := os.ReadDir(folder.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(p.Out, "Skip (missing): %s\n", folder.Path)
			sum.Missing = true

			return sum, nil
		}

		return Summary{}, fmt.Errorf("list %s: %w", folder.Path, err)
	}

	fmt.Fprintf(p.Out, "\nScanning: %s\n", folder.Path)

	// os.ReadDir returns entries sorted by name, which keeps the report
	// deterministic and reviewable.
	resolver := plan.NewResolver()
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		name := entry.Name()
		if !IsAudioFile(name) {
			continue
		}
		sum.Scanned++

		ext := filepath.Ext(name)
		normalized, err := stem.Normalize(strings.TrimSuffix(name, ext), folder.Mode)
		if err != nil {
			return Summary{}, fmt.Errorf("normalize %s: %w", name, err)
		}

		pl, ok := resolver.Rename(filepath.Join(folder.Path, name), normalized)
		if !ok {
			continue
		}

		sum.Changes++
		fmt.Fprintf(p.Out, "%s\n  -> %s\n", filepath.Base(pl.Source), filepath.Base(pl.Dest))

		if !p.Apply {
			continue
		}

		if err := os.Rename(pl.Source, pl.Dest); err != nil {
			sum.Failed++
			p.logger().Error("rename failed", "source", pl.Source, "dest", pl.Dest, "error", err)
			fmt.Fprintf(p.Out, "  FAILED: %v\n", err)

			continue
		}

		p.logger().Debug("renamed", "source", pl.Source, "dest", pl.Dest)
	}

	p.printSummary(sum)

	return sum, nil
}

func (p *Processor) printSummary(sum Summary) {
	switch {
	case sum.Changes == 0:
		fmt.Fprintln(p.Out, "No changes needed.")
	case p.Apply && sum.Failed > 0:
		fmt.Fprintf(p.Out, "Applied %d rename(s), %d failed.\n", sum.Changes-sum.Failed, sum.Failed)
	case p.Apply:
		fmt.Fprintf(p.Out, "Applied %d rename(s).\n", sum.Changes)
	default:
		fmt.Fprintf(p.Out, "Planned %d rename(s). Run again with --apply to execute.\n", sum.Changes)
	}
}
