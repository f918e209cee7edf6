package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dac/internal/diagfmt"
	"dac/internal/driver"
	"dac/internal/observ"
	"dac/internal/project"
	"dac/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <fixture.toml>",
	Short: "Check distributed-actor declarations in a fixture file",
	Long:  `Check loads a declaration fixture, synthesizes implicit members, and reports constructor, signature, and property violations`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for function checks (0=auto)")
	checkCmd.Flags().Bool("probe", false, "count violations without emitting diagnostics")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("disk-cache", false, "cache check results keyed by fixture content")
}

func runCheck(cmd *cobra.Command, args []string) error {
	fixturePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	probe, err := cmd.Flags().GetBool("probe")
	if err != nil {
		return fmt.Errorf("failed to get probe flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	useDiskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	opts := driver.Options{
		Jobs:  jobs,
		Probe: probe,
	}
	if showTimings {
		opts.Timer = observ.NewTimer()
	}

	// Manifest defaults apply beneath explicit flags.
	manifest, err := loadNearestManifest(fixturePath)
	if err != nil {
		return err
	}
	if manifest != nil {
		opts.ExtraModules = manifest.Modules.Loaded
		opts.MaxDiagnostics = manifest.Checker.MaxDiagnostics
	}
	if maxDiagnostics > 0 {
		opts.MaxDiagnostics = maxDiagnostics
	}

	var (
		files   *source.FileSet
		results []driver.ActorResult
	)
	if useDiskCache {
		cache, err := driver.OpenDiskCache("dac")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		var hit bool
		files, results, hit, err = driver.CheckFixtureCached(cmd.Context(), fixturePath, cache, opts)
		if err != nil {
			return err
		}
		if hit && !quiet {
			fmt.Fprintln(os.Stderr, "disk cache hit: replaying stored results")
		}
	} else {
		world, checked, err := driver.CheckFixture(cmd.Context(), fixturePath, opts)
		if err != nil {
			return err
		}
		files, results = world.Files, checked
	}

	merged := driver.MergeBags(results)

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch format {
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		}
		if err := diagfmt.JSON(os.Stdout, merged, files, jsonOpts); err != nil {
			return fmt.Errorf("failed to encode diagnostics: %w", err)
		}
	case "pretty":
		colorOn, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		prettyOpts := diagfmt.PrettyOpts{
			Color:     colorOn,
			PathMode:  pathMode,
			ShowNotes: withNotes,
			Summary:   !quiet,
		}
		diagfmt.Pretty(os.Stdout, merged, files, prettyOpts)
	default:
		return fmt.Errorf("unknown format %q (expected pretty or json)", format)
	}

	if probe && !quiet {
		total := 0
		for i := range results {
			total += results[i].Violations
		}
		fmt.Printf("%d violation(s) across %d actor(s)\n", total, len(results))
	}

	if showTimings && opts.Timer != nil && !quiet {
		fmt.Fprint(os.Stderr, opts.Timer.Summary())
	}

	if merged.HasErrors() {
		os.Exit(1)
	}
	return nil
}

// loadNearestManifest walks up from the fixture's directory; a missing
// manifest is not an error.
func loadNearestManifest(fixturePath string) (*project.Manifest, error) {
	dir := filepath.Dir(fixturePath)
	path, ok, err := project.FindManifest(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to locate manifest: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return project.LoadManifest(path)
}

