package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

const (
	envVerbose = "SRT2DVBSUB_VERBOSE"
	// Snapshot tuning flags.
	envOutputDir    = "SRT2DVBSUB_OUTPUT_DIR"
	envTrack        = "SRT2DVBSUB_TRACK"
	envGeometry     = "SRT2DVBSUB_GEOMETRY"
	envForeground   = "SRT2DVBSUB_FG"
	envBackground   = "SRT2DVBSUB_BG"
	envProgressRate = "SRT2DVBSUB_PROGRESS_RATE"
)

const (
	flagBackground         = "bg"
	flagForeground         = "fg"
	flagGeometry           = "geometry"
	flagOutputDir          = "output-dir"
	flagOutputDirShorthand = "o"
	flagProgressRate       = "progress-rate"
	flagTrack              = "track"
	flagTrackShorthand     = "t"
	flagVerbose            = "verbose"
	flagVerboseShorthand   = "v"
)

func parseEnvBool(key string) (bool, bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return false, false, nil
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return false, false, nil
	}

	switch strings.ToLower(v) {
	case "1", "t", "true", "y", "yes", "on":
		return true, true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, true, nil
	default:
		// Try Go's bool parser too (covers True/False etc.)
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, false, fmt.Errorf("invalid %s=%q (expected true/false)", key, v)
		}
		return b, true, nil
	}
}

func envString(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}

func resolveBoolFlagFromEnv(cmd *cobra.Command, flagName, envKey string) error {
	f := cmd.Flags().Lookup(flagName)
	if f == nil {
		return nil
	}
	// If CLI flag was provided, it wins.
	if f.Changed {
		return nil
	}
	b, ok, err := parseEnvBool(envKey)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return cmd.Flags().Set(flagName, strconv.FormatBool(b))
}

func resolveStringFlagFromEnv(cmd *cobra.Command, flagName, envKey string) error {
	f := cmd.Flags().Lookup(flagName)
	if f == nil {
		return nil
	}
	// If CLI flag was provided, it wins.
	if f.Changed {
		return nil
	}
	v, ok := envString(envKey)
	if !ok {
		return nil
	}
	return cmd.Flags().Set(flagName, v)
}

func resolveIntFlagFromEnv(cmd *cobra.Command, flagName, envKey string) error {
	f := cmd.Flags().Lookup(flagName)
	if f == nil {
		return nil
	}
	// If CLI flag was provided, it wins.
	if f.Changed {
		return nil
	}
	v, ok := envString(envKey)
	if !ok {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s=%q (expected integer): %w", envKey, v, err)
	}
	return cmd.Flags().Set(flagName, strconv.Itoa(i))
}

func resolveFloat64FlagFromEnv(cmd *cobra.Command, flagName, envKey string) error {
	f := cmd.Flags().Lookup(flagName)
	if f == nil {
		return nil
	}
	// If CLI flag was provided, it wins.
	if f.Changed {
		return nil
	}
	v, ok := envString(envKey)
	if !ok {
		return nil
	}
	fl, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s=%q (expected float): %w", envKey, v, err)
	}
	return cmd.Flags().Set(flagName, strconv.FormatFloat(fl, 'f', -1, 64))
}
