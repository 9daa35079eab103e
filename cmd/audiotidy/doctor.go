package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/example/go-audio-tidy/internal/doctor"
	"github.com/example/go-audio-tidy/internal/library"
	"github.com/example/go-audio-tidy/internal/stem"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	var probeWAV bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the library folders before renaming",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			dcfg := doctor.Config{
				Folders: []library.Folder{
					{Path: cfg.Library.TapesDir, Mode: stem.ModeTapes},
					{Path: cfg.Library.TracksDir, Mode: stem.ModeTracks},
				},
				ProbeWAV: probeWAV || cfg.Doctor.ProbeWAV,
			}

			result := doctor.Run(dcfg, cmd.OutOrStdout())

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(os.Stderr, "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "doctor checks passed")

			return nil
		},
	}

	cmd.Flags().BoolVar(&probeWAV, "probe-wav", false, "Also validate WAV headers (read-only)")

	return cmd
}
