package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"casemerge/internal/diag"
	"casemerge/internal/diagfmt"
	"casemerge/internal/driver"
	"casemerge/internal/source"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [path ...]",
	Short: "Merge fallthrough-only cases in place",
	Long:  `Fix rewrites the given files, folding each fallthrough-only case label into the following case. Files that fail to lex or parse are reported and left untouched.`,
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().String("format", "pretty", "diagnostic format (pretty|short|json)")
	fixCmd.Flags().Int("jobs", 0, "number of files analyzed in parallel (0 = all CPUs)")
	fixCmd.Flags().Bool("check", false, "report files that would change, write nothing, exit 1 when any would")
	fixCmd.Flags().Bool("stdout", false, "print rewritten content to stdout instead of writing files")
	fixCmd.Flags().Bool("diff", false, "list changed files")
}

func runFix(cmd *cobra.Command, args []string) error {
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

	checkOnly, _ := cmd.Flags().GetBool("check")
	toStdout, _ := cmd.Flags().GetBool("stdout")
	showDiff, _ := cmd.Flags().GetBool("diff")
	if toStdout && len(args) != 1 {
		return fmt.Errorf("--stdout requires exactly one file argument")
	}

	base, err := buildOptions(cmd)
	if err != nil {
		return err
	}
	if jobsFlag := cmd.Flags().Lookup("jobs"); jobsFlag != nil && jobsFlag.Changed {
		base.Jobs, _ = cmd.Flags().GetInt("jobs")
	}

	opts := driver.FixOptions{Options: base, CheckOnly: checkOnly}
	if toStdout {
		opts.CheckOnly = true
		opts.Stdout = os.Stdout
	}

	fileSet, results, err := driver.Fix(cmd.Context(), paths, opts)
	if err != nil {
		return err
	}

	// Diagnostics go to stderr so --stdout output stays clean.
	diagOut := os.Stdout
	if toStdout {
		diagOut = os.Stderr
	}
	emitFixDiagnostics(cmd, fileSet, results, format, diagOut)

	changed := 0
	hadErrors := false
	for _, res := range results {
		if res.Changed {
			changed++
			if showDiff {
				fmt.Fprintf(os.Stderr, "%s\n", res.Path)
			}
		}
		if res.Bag.HasErrors() {
			hadErrors = true
		}
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet && !toStdout {
		verb := "rewrote"
		if checkOnly {
			verb = "would rewrite"
		}
		fmt.Fprintf(os.Stderr, "%d file(s) processed, %s %d\n", len(results), verb, changed)
	}

	if hadErrors {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("some files could not be parsed")
	}
	if checkOnly && !toStdout && changed > 0 {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("%d file(s) would change", changed)
	}
	return nil
}

func emitFixDiagnostics(cmd *cobra.Command, fileSet *source.FileSet, results []driver.FileResult, format string, out *os.File) {
	merged := diag.NewBag(0)
	for _, res := range results {
		res.Bag.Sort()
		merged.Merge(res.Bag)
	}
	if merged.Len() == 0 && format != "json" {
		return
	}

	switch format {
	case "json":
		_ = diagfmt.JSON(out, merged, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			PathMode:         diagfmt.PathModeRelative,
		})
	case "short":
		if s := diag.FormatShortDiagnostics(merged.Items(), fileSet, false); s != "" {
			fmt.Fprintln(out, s)
		}
	default:
		diagfmt.Pretty(out, merged, fileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, out),
			Context:   2,
			ShowNotes: true,
			PathMode:  diagfmt.PathModeRelative,
		})
	}
}
