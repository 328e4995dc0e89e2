package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"casemerge/internal/cache"
	"casemerge/internal/config"
	"casemerge/internal/diag"
	"casemerge/internal/diagfmt"
	"casemerge/internal/driver"
	"casemerge/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path ...]",
	Short: "Report fallthrough-only cases without rewriting",
	Long:  `Check analyzes the given files and directories and reports every case clause that only falls through. The exit code is 1 when findings exist.`,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	checkCmd.Flags().Int("jobs", 0, "number of files analyzed in parallel (0 = all CPUs)")
	checkCmd.Flags().Bool("no-cache", false, "skip the result cache")
}

func runCheck(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); !noCache {
		// A broken cache only costs a cold run.
		if c, cacheErr := cache.Open("casemerge"); cacheErr == nil {
			opts.Cache = c
		}
	}

	fileSet, results, err := driver.Check(cmd.Context(), paths, opts)
	if err != nil {
		return err
	}

	total := emitResults(cmd, fileSet, results, format)

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet && format != "json" {
		fmt.Fprintf(os.Stderr, "%d file(s) checked, %d finding(s)\n", len(results), total)
	}
	if total > 0 {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("%d finding(s)", total)
	}
	return nil
}

// buildOptions merges the discovered casemerge.toml with the persistent flags.
func buildOptions(cmd *cobra.Command) (driver.Options, error) {
	cfg, _, err := config.Discover(".")
	if err != nil {
		return driver.Options{}, err
	}

	opts := driver.Options{
		MaxDiagnostics: cfg.MaxDiagnostics,
		Jobs:           cfg.Jobs,
		Extensions:     cfg.Extensions,
		Severity:       cfg.Severity,
	}
	if maxDiag, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics"); maxDiag > 0 {
		opts.MaxDiagnostics = maxDiag
	}
	if jobsFlag := cmd.Flags().Lookup("jobs"); jobsFlag != nil && jobsFlag.Changed {
		jobs, _ := cmd.Flags().GetInt("jobs")
		opts.Jobs = jobs
	}
	return opts, nil
}

// emitResults prints per-file diagnostics and returns the finding count.
func emitResults(cmd *cobra.Command, fileSet *source.FileSet, results []driver.FileResult, format string) int {
	merged := diag.NewBag(0)
	total := 0
	for _, res := range results {
		res.Bag.Sort()
		total += res.Bag.Len()
		merged.Merge(res.Bag)
	}

	switch format {
	case "json":
		_ = diagfmt.JSON(os.Stdout, merged, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			PathMode:         diagfmt.PathModeRelative,
		})
	case "short":
		if out := diag.FormatShortDiagnostics(merged.Items(), fileSet, false); out != "" {
			fmt.Fprintln(os.Stdout, out)
		}
	default:
		diagfmt.Pretty(os.Stdout, merged, fileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stdout),
			Context:   2,
			ShowNotes: true,
			PathMode:  diagfmt.PathModeRelative,
		})
	}
	return total
}
