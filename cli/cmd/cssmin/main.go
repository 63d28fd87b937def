package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"cssmin/cli/internal/config"
	"cssmin/cli/internal/cssfile"
	"cssmin/cli/internal/erruser"
	"cssmin/cli/internal/minify"
	"cssmin/cli/internal/run"
	"cssmin/cli/internal/stats"
	"cssmin/cli/internal/trace"
	"cssmin/cli/internal/version"
)

// errExit is an error that carries an exit code for the CLI. Use errors.As to detect it.
type errExit int

func (e errExit) Error() string {
	return "exit " + strconv.Itoa(int(e))
}

func main() {
	os.Exit(Run())
}

// Run is the entry point for the CLI. It is exported for testing so that
// main.go can meet per-file coverage requirements.
func Run() int {
	return runCLI(os.Args[1:])
}

func runCLI(args []string) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		var exitErr errExit
		if errors.As(err, &exitErr) {
			return int(exitErr)
		}
		fmt.Fprintln(os.Stderr, err)
		if u := errors.Unwrap(err); u != nil {
			fmt.Fprintf(os.Stderr, "Details: %v\n", u)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "cssmin",
		Short:   "Single-pass CSS minifier",
		Version: version.String(),
	}
	rootCmd.AddCommand(newMinifyCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	return rootCmd
}

func newMinifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minify [path ...]",
		Short: "Minify stylesheets (stdin to stdout when no paths are given)",
		Long: `Minify stylesheets. With no arguments, reads CSS from stdin and writes the
minified result to stdout. With --output, minifies exactly one input file into
the given output file. Otherwise each path is minified in batch: directories
are walked recursively for .css files, and each input gets a sibling output
with the configured suffix (in.css -> in.min.css) unless --write is set.`,
		RunE: runMinify,
	}
	cmd.Flags().StringP("output", "o", "", "Output file (exactly one input file)")
	cmd.Flags().String("suffix", "", "Batch output suffix replacing .css (overrides config and env)")
	cmd.Flags().BoolP("write", "w", false, "Rewrite inputs in place instead of writing siblings")
	cmd.Flags().Int("jobs", 0, "Files minified concurrently in batch mode (overrides config and env)")
	cmd.Flags().Bool("stats", false, "Print a size-savings summary to stderr")
	cmd.Flags().Bool("json", false, "Emit the savings report as JSON to stdout (implies --stats; batch or --output only)")
	cmd.Flags().Bool("trace", false, "Print internal steps to stderr (expansion, per-file savings)")
	return cmd
}

func runMinify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	var traceOut io.Writer
	if cfg.Trace {
		traceOut = cmd.ErrOrStderr()
	}
	tr := trace.New(traceOut)

	output, _ := cmd.Flags().GetString("output")
	showStats, _ := cmd.Flags().GetBool("stats")
	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		showStats = true
	}

	if len(args) == 0 {
		if output != "" {
			return errors.New("--output requires an input file argument.")
		}
		if asJSON {
			return errors.New("--json requires file arguments; stdout carries the minified CSS.")
		}
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return erruser.New("Could not read stdin.", err)
		}
		minified := minify.Minify(string(data))
		if _, err := io.WriteString(cmd.OutOrStdout(), minified); err != nil {
			return erruser.New("Could not write stdout.", err)
		}
		if showStats {
			report := &stats.Report{}
			report.Add(stats.NewFileSavings("stdin", "stdout", len(data), len(minified)))
			return writeReportHuman(cmd.ErrOrStderr(), report)
		}
		return nil
	}

	if output != "" {
		if len(args) != 1 {
			return errors.New("--output accepts exactly one input file.")
		}
		if err := cssfile.MinifyFile(cmd.Context(), args[0], output); err != nil {
			return err
		}
		if showStats {
			inInfo, err := os.Stat(args[0])
			if err != nil {
				return erruser.New("Could not stat "+args[0]+".", err)
			}
			outInfo, err := os.Stat(output)
			if err != nil {
				return erruser.New("Could not stat "+output+".", err)
			}
			report := &stats.Report{}
			report.Add(stats.NewFileSavings(args[0], output, int(inInfo.Size()), int(outInfo.Size())))
			return writeReport(cmd, report, asJSON)
		}
		return nil
	}

	inPlace, _ := cmd.Flags().GetBool("write")
	report, err := run.Minify(cmd.Context(), run.Options{
		Paths:   args,
		Suffix:  cfg.Suffix,
		InPlace: inPlace,
		Jobs:    cfg.Jobs,
		Tracer:  tr,
	})
	if err != nil {
		return err
	}
	if len(report.Files) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No stylesheets found.")
		return errExit(1)
	}
	for _, f := range report.Files {
		if f.Error != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", f.Path, f.Error)
		}
	}
	if showStats {
		if err := writeReport(cmd, report, asJSON); err != nil {
			return err
		}
	}
	if report.Errors > 0 {
		return errExit(1)
	}
	return nil
}

// writeReport emits the savings report: JSON to stdout, human summary to stderr.
func writeReport(cmd *cobra.Command, r *stats.Report, asJSON bool) error {
	if asJSON {
		return writeReportJSON(cmd.OutOrStdout(), r)
	}
	return writeReportHuman(cmd.ErrOrStderr(), r)
}

func writeReportJSON(w io.Writer, r *stats.Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return erruser.New("Could not write report.", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return erruser.New("Could not write report.", err)
	}
	return nil
}

// writeReportHuman writes one line per file (path  in -> out bytes  percent),
// then a totals line.
func writeReportHuman(w io.Writer, r *stats.Report) error {
	for _, f := range r.Files {
		if f.Error != "" {
			if _, err := fmt.Fprintf(w, "%s  failed: %s\n", f.Path, f.Error); err != nil {
				return erruser.New("Could not write report.", err)
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s  %d -> %d bytes (%.1f%% saved)\n", f.Path, f.InputBytes, f.OutputBytes, f.SavedPercent); err != nil {
			return erruser.New("Could not write report.", err)
		}
	}
	if _, err := fmt.Fprintf(w, "%d file(s), %d -> %d bytes (%.1f%% saved)\n",
		len(r.Files), r.TotalInputBytes, r.TotalOutputBytes, r.TotalSavedPercent); err != nil {
		return erruser.New("Could not write report.", err)
	}
	return nil
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <path> [path ...]",
		Short: "Exit non-zero when a stylesheet is not already minified",
		Long: `Check whether stylesheets are already minified. Each path is expanded like
minify (directories are walked for .css files), every file is minified in
memory, and files whose content would change are listed on stdout. Exits 1
when any file would change; nothing is written to disk.`,
		RunE: runCheck,
	}
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("check requires at least one file or directory.")
	}
	// Empty suffix: prior .min.css outputs are checked too, that is the point.
	files, err := run.Expand(args, "")
	if err != nil {
		return erruser.New("Could not expand arguments.", err)
	}
	var dirty int
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return erruser.New("Could not read "+f+".", err)
		}
		if minify.Minify(string(data)) != string(data) {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), f); err != nil {
				return erruser.New("Could not write file list.", err)
			}
			dirty++
		}
	}
	if dirty > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d file(s) would change.\n", dirty)
		return errExit(1)
	}
	return nil
}

// loadConfig loads configuration for the working directory with any flag overrides applied.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, erruser.New("Could not determine current directory.", err)
	}
	return config.Load(config.LoadOptions{
		WorkDir:   cwd,
		Overrides: overridesFromFlags(cmd),
	})
}

// overridesFromFlags returns Overrides for suffix, jobs, and trace when the
// corresponding flags were set on this command.
func overridesFromFlags(cmd *cobra.Command) *config.Overrides {
	suffixChanged := cmd.Flags().Lookup("suffix") != nil && cmd.Flags().Lookup("suffix").Changed
	jobsChanged := cmd.Flags().Lookup("jobs") != nil && cmd.Flags().Lookup("jobs").Changed
	traceChanged := cmd.Flags().Lookup("trace") != nil && cmd.Flags().Lookup("trace").Changed
	if !suffixChanged && !jobsChanged && !traceChanged {
		return nil
	}
	o := &config.Overrides{}
	if suffixChanged {
		v, _ := cmd.Flags().GetString("suffix")
		o.Suffix = &v
	}
	if jobsChanged {
		v, _ := cmd.Flags().GetInt("jobs")
		o.Jobs = &v
	}
	if traceChanged {
		v, _ := cmd.Flags().GetBool("trace")
		o.Trace = &v
	}
	return o
}
