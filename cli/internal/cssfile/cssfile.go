// Package cssfile is the file-based entry point around minify: read a
// stylesheet, minimize it, write the result. Path validation happens before
// any I/O; read and write failures are surfaced, never swallowed. The scan
// itself is synchronous, so cancellation is honored only between the read
// and write calls; the output file is written in full or not at all.
package cssfile

import (
	"context"
	"os"
	"strings"

	"cssmin/cli/internal/erruser"
	"cssmin/cli/internal/minify"
)

// outputMode is the permission for written minified files.
const outputMode = 0o644

// MinifyFile reads the stylesheet at inputPath, minifies it, and writes the
// result to outputPath. Blank paths are rejected before any I/O is attempted.
func MinifyFile(ctx context.Context, inputPath, outputPath string) error {
	if strings.TrimSpace(inputPath) == "" {
		return erruser.New("Input path must not be empty.", nil)
	}
	if strings.TrimSpace(outputPath) == "" {
		return erruser.New("Output path must not be empty.", nil)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return erruser.New("Could not read "+inputPath+".", err)
	}
	minified := minify.Minify(string(data))
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, []byte(minified), outputMode); err != nil {
		return erruser.New("Could not write "+outputPath+".", err)
	}
	return nil
}
