package doctor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/example/go-audio-tidy/internal/library"
	"github.com/example/go-audio-tidy/internal/stem"
	"github.com/example/go-audio-tidy/internal/testutil"
)

func TestRun_HealthyFolders(t *testing.T) {
	tapes := t.TempDir()
	tracks := t.TempDir()
	testutil.WriteFile(t, tapes, "DJ Screw - Chapter 1 - Intro.mp3")
	testutil.WriteFile(t, tracks, "Artist - Title.flac")
	testutil.WriteFile(t, tracks, "cover.jpg")

	var buf bytes.Buffer
	res := Run(Config{
		Folders: []library.Folder{
			{Path: tapes, Mode: stem.ModeTapes},
			{Path: tracks, Mode: stem.ModeTracks},
		},
	}, &buf)

	if res.Failed() {
		t.Fatalf("expected all checks to pass, failures: %v", res.Failures())
	}

	out := buf.String()
	if !strings.Contains(out, "1 audio file(s)") {
		t.Errorf("expected audio counts in output, got %q", out)
	}

	if strings.Contains(out, FailMark) {
		t.Errorf("unexpected fail mark in output: %q", out)
	}
}

func TestRun_MissingFolderFails(t *testing.T) {
	var buf bytes.Buffer
	res := Run(Config{
		Folders: []library.Folder{
			{Path: "/does/not/exist/anywhere", Mode: stem.ModeTapes},
		},
	}, &buf)

	if !res.Failed() {
		t.Fatal("expected failure for missing folder")
	}

	if !strings.Contains(buf.String(), "not found") {
		t.Errorf("expected not-found line, got %q", buf.String())
	}
}

func TestRun_FileInsteadOfFolderFails(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "not-a-folder")

	var buf bytes.Buffer
	res := Run(Config{
		Folders: []library.Folder{{Path: path, Mode: stem.ModeTracks}},
	}, &buf)

	if !res.Failed() {
		t.Fatal("expected failure for non-directory path")
	}

	if !strings.Contains(buf.String(), "not a directory") {
		t.Errorf("expected not-a-directory line, got %q", buf.String())
	}
}

func TestRun_ProbeAcceptsValidWAV(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteWAV(t, dir, "tape.wav")
	testutil.WriteFile(t, dir, "track.mp3")

	var buf bytes.Buffer
	res := Run(Config{
		Folders:  []library.Folder{{Path: dir, Mode: stem.ModeTapes}},
		ProbeWAV: true,
	}, &buf)

	if res.Failed() {
		t.Fatalf("expected probe to pass, failures: %v", res.Failures())
	}

	if !strings.Contains(buf.String(), "wav probe: 1 file(s) ok") {
		t.Errorf("expected probe summary, got %q", buf.String())
	}
}

func TestRun_ProbeFlagsCorruptWAV(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "broken.wav")

	var buf bytes.Buffer
	res := Run(Config{
		Folders:  []library.Folder{{Path: dir, Mode: stem.ModeTapes}},
		ProbeWAV: true,
	}, &buf)

	if !res.Failed() {
		t.Fatal("expected failure for corrupt wav")
	}

	if !strings.Contains(buf.String(), "broken.wav") {
		t.Errorf("expected corrupt file named in output, got %q", buf.String())
	}
}

func TestRun_ProbeSkippedByDefault(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "broken.wav")

	var buf bytes.Buffer
	res := Run(Config{
		Folders: []library.Folder{{Path: dir, Mode: stem.ModeTapes}},
	}, &buf)

	if res.Failed() {
		t.Fatalf("expected no failures without probe, got: %v", res.Failures())
	}

	if strings.Contains(buf.String(), "wav probe") {
		t.Errorf("unexpected probe line without ProbeWAV, got %q", buf.String())
	}
}
