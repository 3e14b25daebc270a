// Package output reports results back to the GitHub Actions runner.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// SuccessMarker is printed as the last line of a successful run.
const SuccessMarker = "Successful"

// Writer emits step outputs and the final status line.
type Writer struct {
	out        io.Writer
	outputPath string
}

// NewWriter creates a Writer that prints to out. When outputPath (the
// runner's GITHUB_OUTPUT file) is set, step outputs are appended to it;
// otherwise the legacy set-output workflow command is printed.
func NewWriter(out io.Writer, outputPath string) *Writer {
	return &Writer{out: out, outputPath: outputPath}
}

// SetOutput publishes a step output.
func (w *Writer) SetOutput(name, value string) error {
	if w.outputPath == "" {
		_, err := fmt.Fprintf(w.out, "::set-output name=%s::%s\n", name, escapeData(value))
		return err
	}

	f, err := os.OpenFile(w.outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer f.Close()

	if strings.ContainsAny(value, "\r\n") {
		delimiter := "ghadelimiter_" + uuid.NewString()
		_, err = fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	} else {
		_, err = fmt.Fprintf(f, "%s=%s\n", name, value)
	}
	if err != nil {
		return fmt.Errorf("failed to write output %s: %w", name, err)
	}

	return f.Close()
}

// Success prints the success marker.
func (w *Writer) Success() {
	color.New(color.FgGreen).Fprintln(w.out, SuccessMarker)
}

// Failure prints err as an error annotation for the workflow run. The
// command is left uncoloured so the runner still recognises it.
func (w *Writer) Failure(err error) {
	fmt.Fprintf(w.out, "::error::%s\n", escapeData(err.Error()))
}

// escapeData encodes characters that would end a workflow command early.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
