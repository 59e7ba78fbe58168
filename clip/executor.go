package clip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// CutRequest describes a single cut.
type CutRequest struct {
	Input  string
	Output string
	Start  float64
	End    float64
	// Exact re-encodes so the clip starts on the requested frame instead of
	// the preceding keyframe.
	Exact bool
}

// Result is the outcome of an ffmpeg run that started.
type Result struct {
	ExitCode int
	// Output is ffmpeg's combined stdout and stderr.
	Output string
	// Command is the full argument list that was executed.
	Command []string
	// DisplayCommand is Command with paths replaced by placeholders.
	DisplayCommand string
	// OutputExists reports whether the output file is present after the run.
	OutputExists bool
	// OutputSize is the size of the output file in bytes, if present.
	OutputSize int64
}

// Success reports whether ffmpeg exited cleanly.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Executor runs ffmpeg cuts.
type Executor struct {
	// Binary is the ffmpeg executable. Defaults to "ffmpeg".
	Binary string
}

func (e *Executor) binary() string {
	if e.Binary == "" {
		return "ffmpeg"
	}
	return e.Binary
}

func seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// Args builds the ffmpeg arguments for req. Stream copy seeks on the input
// before opening it; exact mode re-encodes video and audio.
func Args(req CutRequest) []string {
	start := seconds(req.Start)
	length := seconds(req.End - req.Start)

	if req.Exact {
		return []string{
			"-y",
			"-ss", start,
			"-i", req.Input,
			"-t", length,
			"-c:v", "libx264",
			"-c:a", "aac",
			"-preset", "fast",
			req.Output,
		}
	}
	return []string{
		"-y",
		"-ss", start,
		"-t", length,
		"-i", req.Input,
		"-c", "copy",
		"-avoid_negative_ts", "1",
		req.Output,
	}
}

// DisplayCommand renders a command line for manual debugging, with the
// input and output paths replaced by placeholders.
func DisplayCommand(binary string, req CutRequest) string {
	parts := []string{filepath.Base(binary)}
	for _, a := range Args(req) {
		switch a {
		case "-y":
			continue
		case req.Input:
			a = "<input_path>"
		case req.Output:
			a = "<output_path>"
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// Cut runs ffmpeg for req. A non-zero exit is reported through the Result;
// an error is returned only when ffmpeg could not be run or ctx ended first.
func (e *Executor) Cut(ctx context.Context, req CutRequest) (*Result, error) {
	if err := os.MkdirAll(filepath.Dir(req.Output), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	args := Args(req)
	cmd := exec.CommandContext(ctx, e.binary(), args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	res := &Result{
		Command:        append([]string{e.binary()}, args...),
		DisplayCommand: DisplayCommand(e.binary(), req),
	}

	runErr := cmd.Run()
	res.Output = out.String()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("ffmpeg did not finish: %w", ctxErr)
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, fmt.Errorf("failed to run ffmpeg: %w", runErr)
		}
		res.ExitCode = exitErr.ExitCode()
	}

	if info, err := os.Stat(req.Output); err == nil {
		res.OutputExists = true
		res.OutputSize = info.Size()
	}
	return res, nil
}
