// Package doctor provides library preflight checks for audiotidy.
package doctor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/wav"

	"github.com/example/go-audio-tidy/internal/library"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// Config holds the folders to check and probe options.
type Config struct {
	// Folders are checked in order.
	Folders []library.Folder
	// ProbeWAV additionally opens each .wav file and validates its header.
	// Headers only; sample data is never read and nothing is written.
	ProbeWAV bool
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	for _, folder := range cfg.Folders {
		checkFolder(&res, folder, cfg.ProbeWAV, w)
	}

	return res
}

func checkFolder(res *Result, folder library.Folder, probeWAV bool, w io.Writer) {
	info, err := os.Stat(folder.Path)
	if err != nil {
		res.fail(fmt.Sprintf("folder %q: %v", folder.Path, err))
		fmt.Fprintf(w, "%s folder %s: not found\n", FailMark, folder.Path)

		return
	}

	if !info.IsDir() {
		res.fail(fmt.Sprintf("folder %q: not a directory", folder.Path))
		fmt.Fprintf(w, "%s folder %s: not a directory\n", FailMark, folder.Path)

		return
	}

	if err := checkWritable(folder.Path); err != nil {
		res.fail(fmt.Sprintf("folder %q: %v", folder.Path, err))
		fmt.Fprintf(w, "%s folder %s: not writable (%v)\n", FailMark, folder.Path, err)

		return
	}

	entries, err := os.ReadDir(folder.Path)
	if err != nil {
		res.fail(fmt.Sprintf("folder %q: %v", folder.Path, err))
		fmt.Fprintf(w, "%s folder %s: unreadable (%v)\n", FailMark, folder.Path, err)

		return
	}

	audio := 0
	for _, entry := range entries {
		if entry.Type().IsRegular() && library.IsAudioFile(entry.Name()) {
			audio++
		}
	}

	fmt.Fprintf(w, "%s folder %s (mode %s): %d audio file(s)\n", PassMark, folder.Path, folder.Mode, audio)

	if probeWAV {
		probeWAVFiles(res, folder.Path, entries, w)
	}
}

// checkWritable creates and removes a hidden probe file. Renaming needs
// write permission on the directory itself, which a plain Stat cannot show.
func checkWritable(dir string) error {
	probe, err := os.CreateTemp(dir, ".audiotidy-probe-*")
	if err != nil {
		return fmt.Errorf("not writable: %w", err)
	}

	name := probe.Name()
	_ = probe.Close()

	return os.Remove(name)
}

func probeWAVFiles(res *Result, dir string, entries []os.DirEntry, w io.Writer) {
	checked := 0

	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || !strings.EqualFold(filepath.Ext(name), ".wav") {
			continue
		}

		path := filepath.Join(dir, name)
		if err := probeWAVFile(path); err != nil {
			res.fail(fmt.Sprintf("wav %q: %v", path, err))
			fmt.Fprintf(w, "%s wav %s: %v\n", FailMark, name, err)

			continue
		}
		checked++
	}

	fmt.Fprintf(w, "%s wav probe: %d file(s) ok\n", PassMark, checked)
}

// probeWAVFile validates the RIFF/WAVE header of the file at path.
func probeWAVFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return errors.New("invalid WAV header")
	}

	return nil
}
