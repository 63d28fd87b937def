// Package stats aggregates per-file size savings for a minify batch into a
// JSON-serializable report.
package stats

// FileSavings holds the size outcome for one minified stylesheet. Error is
// set (and the byte fields left at whatever was known) when the file failed.
type FileSavings struct {
	Path         string  `json:"path"`
	Output       string  `json:"output,omitempty"`
	InputBytes   int     `json:"input_bytes"`
	OutputBytes  int     `json:"output_bytes"`
	SavedBytes   int     `json:"saved_bytes"`
	SavedPercent float64 `json:"saved_percent"`
	Error        string  `json:"error,omitempty"`
}

// Report aggregates a batch of FileSavings. Failed files count into Errors
// and are listed in Files, but contribute nothing to the byte totals.
type Report struct {
	Files             []FileSavings `json:"files"`
	TotalInputBytes   int           `json:"total_input_bytes"`
	TotalOutputBytes  int           `json:"total_output_bytes"`
	TotalSavedBytes   int           `json:"total_saved_bytes"`
	TotalSavedPercent float64       `json:"total_saved_percent"`
	Errors            int           `json:"errors"`
}

// NewFileSavings returns a FileSavings with saved bytes and percent computed.
func NewFileSavings(path, output string, inputBytes, outputBytes int) FileSavings {
	return FileSavings{
		Path:         path,
		Output:       output,
		InputBytes:   inputBytes,
		OutputBytes:  outputBytes,
		SavedBytes:   inputBytes - outputBytes,
		SavedPercent: percent(inputBytes-outputBytes, inputBytes),
	}
}

// Add appends f and folds it into the totals.
func (r *Report) Add(f FileSavings) {
	r.Files = append(r.Files, f)
	if f.Error != "" {
		r.Errors++
		return
	}
	r.TotalInputBytes += f.InputBytes
	r.TotalOutputBytes += f.OutputBytes
	r.TotalSavedBytes = r.TotalInputBytes - r.TotalOutputBytes
	r.TotalSavedPercent = percent(r.TotalSavedBytes, r.TotalInputBytes)
}

// percent returns 100*saved/total, or 0 when total is 0.
func percent(saved, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(saved) / float64(total)
}
