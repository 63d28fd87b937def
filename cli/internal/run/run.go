// Package run implements the batch minify flow: expand file and directory
// arguments into a stylesheet list, minify each file through a bounded worker
// pool, and aggregate size savings into a report.
package run

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"cssmin/cli/internal/cssfile"
	"cssmin/cli/internal/stats"
	"cssmin/cli/internal/trace"
)

// Options configures a batch run.
type Options struct {
	// Paths are the files and directories to minify. Directories are walked
	// recursively for .css files; explicit file paths are taken as-is.
	Paths []string
	// Suffix replaces the .css extension on outputs (in.css -> in.min.css).
	// Files already carrying the suffix are skipped during directory walks.
	// Ignored when InPlace is set.
	Suffix string
	// InPlace overwrites each input instead of writing a sibling.
	InPlace bool
	// Jobs is the number of files minified concurrently. Values below 1 mean 1.
	Jobs int
	// Tracer receives step output; nil-writer tracers no-op.
	Tracer *trace.Tracer
}

// Minify expands opts.Paths and minifies every stylesheet found. Per-file
// failures are recorded in the report rather than aborting the batch; the
// returned error covers argument expansion only. The report lists files in
// expansion order regardless of which worker finished first.
func Minify(ctx context.Context, opts Options) (*stats.Report, error) {
	tr := opts.Tracer

	tr.Section("Expand")
	files, err := Expand(opts.Paths, opts.Suffix)
	if err != nil {
		return nil, err
	}
	tr.Printf("%d stylesheet(s) from %d argument(s)\n", len(files), len(opts.Paths))

	report := &stats.Report{}
	if len(files) == 0 {
		return report, nil
	}

	outputs := make([]string, len(files))
	for i, f := range files {
		if opts.InPlace {
			outputs[i] = f
		} else {
			outputs[i] = OutputPath(f, opts.Suffix)
		}
	}

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	tr.Section("Minify")
	results := make([]stats.FileSavings, len(files))
	work := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				results[i] = minifyOne(ctx, files[i], outputs[i])
			}
		}()
	}
	// No select on ctx here: a cancelled context makes workers fail fast per
	// file, so every index still gets a result entry and the sends never block.
	for i := range files {
		work <- i
	}
	close(work)
	wg.Wait()

	for _, entry := range results {
		if entry.Error != "" {
			tr.Printf("%s: %s\n", entry.Path, entry.Error)
		} else {
			tr.Printf("%s: %d -> %d bytes (%.1f%% saved)\n", entry.Path, entry.InputBytes, entry.OutputBytes, entry.SavedPercent)
		}
		report.Add(entry)
	}
	return report, nil
}

// minifyOne minifies a single input/output pair and returns its savings entry.
// Failures become the entry's Error field.
func minifyOne(ctx context.Context, inputPath, outputPath string) stats.FileSavings {
	inInfo, err := os.Stat(inputPath)
	if err != nil {
		return stats.FileSavings{Path: inputPath, Output: outputPath, Error: err.Error()}
	}
	if err := cssfile.MinifyFile(ctx, inputPath, outputPath); err != nil {
		return stats.FileSavings{
			Path:       inputPath,
			Output:     outputPath,
			InputBytes: int(inInfo.Size()),
			Error:      err.Error(),
		}
	}
	outInfo, err := os.Stat(outputPath)
	if err != nil {
		return stats.FileSavings{
			Path:       inputPath,
			Output:     outputPath,
			InputBytes: int(inInfo.Size()),
			Error:      err.Error(),
		}
	}
	return stats.NewFileSavings(inputPath, outputPath, int(inInfo.Size()), int(outInfo.Size()))
}

// Expand resolves paths into a flat list of stylesheets. Directories are
// walked recursively for .css files, skipping names that already end in
// suffix (prior outputs); explicit file arguments are accepted whatever
// their extension. The order is deterministic: arguments in the order given,
// directory contents in lexical walk order.
func Expand(paths []string, suffix string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			name := d.Name()
			if !strings.HasSuffix(name, ".css") {
				return nil
			}
			if suffix != "" && strings.HasSuffix(name, suffix) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// OutputPath derives the output path for an input: a trailing .css extension
// is replaced with suffix, otherwise suffix is appended.
func OutputPath(inputPath, suffix string) string {
	if strings.HasSuffix(inputPath, ".css") {
		return strings.TrimSuffix(inputPath, ".css") + suffix
	}
	return inputPath + suffix
}
