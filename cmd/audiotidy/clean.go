package main

import (
	"fmt"

	"github.com/example/go-audio-tidy/internal/config"
	"github.com/example/go-audio-tidy/internal/library"
	"github.com/example/go-audio-tidy/internal/stem"
	"github.com/spf13/cobra"
)

func newCleanCmd() *cobra.Command {
	var apply bool
	var only string

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Plan or apply filename normalization (dry-run by default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			folders, err := selectFolders(cfg, only)
			if err != nil {
				return err
			}

			proc := &library.Processor{
				Apply: apply,
				Out:   cmd.OutOrStdout(),
			}

			for _, folder := range folders {
				if _, err := proc.Process(folder); err != nil {
					return fmt.Errorf("process %s: %w", folder.Path, err)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Rename files (default is dry-run)")
	cmd.Flags().StringVar(&only, "only", "both", "Which folder(s) to process (tapes|tracks|both)")

	return cmd
}

// selectFolders maps the --only selector onto the configured folders, tapes
// before tracks.
func selectFolders(cfg config.Config, only string) ([]library.Folder, error) {
	tapes := library.Folder{Path: cfg.Library.TapesDir, Mode: stem.ModeTapes}
	tracks := library.Folder{Path: cfg.Library.TracksDir, Mode: stem.ModeTracks}

	switch only {
	case "tapes":
		return []library.Folder{tapes}, nil
	case "tracks":
		return []library.Folder{tracks}, nil
	case "both":
		return []library.Folder{tapes, tracks}, nil
	default:
		return nil, fmt.Errorf("invalid --only value %q (want tapes|tracks|both)", only)
	}
}
