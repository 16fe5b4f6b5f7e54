package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/Desmoss900/srt2dvbsub/internal/config"
	"github.com/Desmoss900/srt2dvbsub/internal/fs"
	"github.com/Desmoss900/srt2dvbsub/internal/logging"
	"github.com/Desmoss900/srt2dvbsub/internal/progress"
	"github.com/Desmoss900/srt2dvbsub/internal/render"
	"github.com/Desmoss900/srt2dvbsub/internal/snapshot"
	"github.com/Desmoss900/srt2dvbsub/internal/srt"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [flags] <input-file>",
	Short: "Write one PNG debug snapshot per subtitle cue",
	Long: "Reads an SRT file and writes one raster snapshot per cue into the output directory.\n" +
		"The " + flagOutputDir + " flag accepts what the resolver accepts: " + snapshot.UsageHint() + ".\n" +
		"If it cannot be provisioned, snapshots go to a process-scoped directory under the system temp dir.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Allow resolving tuning flags from env vars.
		if err := resolveStringFlagFromEnv(cmd, flagOutputDir, envOutputDir); err != nil {
			return err
		}
		if err := resolveIntFlagFromEnv(cmd, flagTrack, envTrack); err != nil {
			return err
		}
		if err := resolveStringFlagFromEnv(cmd, flagGeometry, envGeometry); err != nil {
			return err
		}
		if err := resolveStringFlagFromEnv(cmd, flagForeground, envForeground); err != nil {
			return err
		}
		if err := resolveStringFlagFromEnv(cmd, flagBackground, envBackground); err != nil {
			return err
		}
		if err := resolveFloat64FlagFromEnv(cmd, flagProgressRate, envProgressRate); err != nil {
			return err
		}

		ctx := cmd.Context()
		log := logging.FromContext(ctx)

		inputPath := args[0]
		if inputPath == "-" {
			return errors.New("stdin is not supported yet; pass a subtitle file path")
		}
		absInput, err := fs.ResolveAbsPath(inputPath)
		if err != nil {
			return err
		}
		inputPath = absInput

		cfg := config.DefaultConfig()
		if cfgPath, err := config.Path(); err != nil {
			log.Debug("no user config dir; using built-in defaults", "err", err)
		} else if cfg, err = config.Load(cfgPath); err != nil {
			return err
		}

		outputDir := stringFlagOr(cmd, flagOutputDir, cfg.OutputDir)
		track := intFlagOr(cmd, flagTrack, cfg.Track)
		geometry := stringFlagOr(cmd, flagGeometry, cfg.Geometry)
		fg := stringFlagOr(cmd, flagForeground, cfg.Foreground)
		bg := stringFlagOr(cmd, flagBackground, cfg.Background)
		rate, _ := cmd.Flags().GetFloat64(flagProgressRate)

		params, err := render.NewParams(geometry, fg, bg)
		if err != nil {
			return err
		}

		resolver := snapshot.NewResolver()
		if err := resolver.Init(outputDir); err != nil {
			return fmt.Errorf("no usable output directory: %w", err)
		}
		if n := resolver.Notice(); n != "" {
			log.Warn(n)
		}
		log.Debug("using output dir", "dir", resolver.Dir())

		in, err := os.Open(inputPath)
		if err != nil {
			return err
		}
		defer fs.CloseOrLog(in, inputPath)

		cues, err := srt.ReadAll(in)
		if err != nil {
			return fmt.Errorf("parse %s: %w", inputPath, err)
		}
		if len(cues) == 0 {
			return fmt.Errorf("no cues in %s", inputPath)
		}

		status := progress.NewPrinter(os.Stderr, rate)
		for seq, cue := range cues {
			path, err := resolver.Filename(seq, track, cue.Index)
			if err != nil {
				return err
			}
			if err := render.WriteSnapshot(path, cue, params); err != nil {
				return err
			}
			log.Debug("wrote snapshot", "path", path, "cue", cue.Index)
			status.Update("cue %d/%d at %s", seq+1, len(cues), srt.FormatTimestamp(cue.FromTime))
		}
		status.Final("wrote %d snapshots to %s", len(cues), resolver.Dir())

		log.Info("snapshots written", "count", len(cues), "dir", resolver.Dir())
		return nil
	},
}

// stringFlagOr returns the flag value when it was set via CLI or env, and the
// config-file/built-in fallback otherwise.
func stringFlagOr(cmd *cobra.Command, name, fallback string) string {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return fallback
	}
	v, _ := cmd.Flags().GetString(name)
	return v
}

func intFlagOr(cmd *cobra.Command, name string, fallback int) int {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return fallback
	}
	v, _ := cmd.Flags().GetInt(name)
	return v
}

func init() {
	snapshotCmd.Flags().StringP(flagOutputDir, flagOutputDirShorthand, "", "Output directory for snapshots (default: "+snapshot.DefaultDir+", created if missing)")
	snapshotCmd.Flags().IntP(flagTrack, flagTrackShorthand, 0, "DVB track identifier embedded in filenames (0-7)")
	snapshotCmd.Flags().String(flagGeometry, render.DefaultGeometry, "Raster size as WxH")
	snapshotCmd.Flags().String(flagForeground, render.DefaultForeground, "Text band color (#RRGGBB)")
	snapshotCmd.Flags().String(flagBackground, render.DefaultBackground, "Background color (#RRGGBB)")
	snapshotCmd.Flags().Float64(flagProgressRate, progress.DefaultUpdatesPerSecond, "Max progress line updates per second")
}
