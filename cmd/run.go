package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/user/clipper-cli/clip"
	"github.com/user/clipper-cli/config"
	"github.com/user/clipper-cli/db"
	"github.com/user/clipper-cli/deps"
	"github.com/user/clipper-cli/logging"
	"github.com/user/clipper-cli/pkg/cliputil"
	"github.com/user/clipper-cli/pkg/timestamp"
	"github.com/user/clipper-cli/pkg/timeutil"
	"github.com/user/clipper-cli/tui/forms"
	"github.com/user/clipper-cli/tui/styles"
)

// errCancelled is returned when the user declines to overwrite an output.
var errCancelled = errors.New("cancelled")

// ExecutionError reports an ffmpeg run that exited non-zero.
type ExecutionError struct {
	ExitCode     int
	OutputExists bool
	Command      string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("ffmpeg exited with code %d", e.ExitCode)
}

// runOptions are the root command's flags.
type runOptions struct {
	video   string
	start   string
	end     string
	outname string
	outpath string
	exact   bool
	preview bool
	yes     bool
	timeout time.Duration
}

type historyStore interface {
	Load() (*db.SearchHistory, error)
	Save(dir string, now time.Time) error
}

type durationProber interface {
	ProbeDuration(ctx context.Context, path string) (float64, error)
}

type cutter interface {
	Cut(ctx context.Context, req clip.CutRequest) (*clip.Result, error)
}

// previewSource reports the playback position and length of a preview.
type previewSource interface {
	GetTimePos() (float64, error)
	GetDuration() (float64, error)
}

// app wires the collaborators of a single clipping run.
type app struct {
	cfg      *config.Config
	home     string
	history  historyStore
	db       *sql.DB
	prober   durationProber
	cutter   cutter
	binaries deps.Binaries
	prompt   prompter
	// selectVideo shows the file browser rooted at a directory.
	selectVideo func(dir string) (string, error)
	// openPreview starts a player on a video; the returned func stops it.
	openPreview func(ctx context.Context, path string) (previewSource, func(), error)
	out         io.Writer
	now         func() time.Time
}

// run performs one clipping run.
func (a *app) run(ctx context.Context, opts runOptions) error {
	for _, err := range a.binaries.CheckRequired() {
		logging.Log.Warn(err.Error())
	}

	videoPath, err := a.resolveVideo(opts.video)
	if err != nil {
		return err
	}

	duration, err := a.prober.ProbeDuration(ctx, videoPath)
	if err != nil {
		logging.Log.WithError(err).WithField("video", videoPath).
			Warn("could not read video duration, continuing with unknown length")
		duration = 0
	}
	if err := timestamp.CheckDuration(duration); err != nil {
		return err
	}

	var preview previewSource
	if opts.preview && a.openPreview != nil && (opts.start == "" || opts.end == "") {
		p, stop, err := a.openPreview(ctx, videoPath)
		if err != nil {
			logging.Log.WithError(err).Warn("preview unavailable")
		} else {
			defer stop()
			preview = p
		}
	}
	if duration == 0 && preview != nil {
		if d, err := preview.GetDuration(); err == nil && d > 0 {
			if err := timestamp.CheckDuration(d); err != nil {
				return err
			}
			logging.Log.WithField("duration", d).Debug("using duration reported by the preview")
			duration = d
		}
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, styles.Title.Render("Selected: "+filepath.Base(videoPath)))
	fmt.Fprintln(a.out, field("Total duration", timeutil.FormatClock(duration)))
	fmt.Fprintln(a.out)

	startStr, endStr, err := a.askTimes(opts, duration, preview)
	if err != nil {
		return err
	}

	req, err := timestamp.Resolve(duration, startStr, endStr)
	if err != nil {
		return err
	}
	logging.Log.WithFields(logrus.Fields{
		"start": req.Start,
		"end":   req.End,
	}).Debug("resolved clip range")

	outPath, err := a.outputPath(opts, videoPath, req)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, styles.Title.Render("Clipping from/saving to:"))
	fmt.Fprintln(a.out, field("  Folder", filepath.Dir(outPath)))
	fmt.Fprintln(a.out, field("  Original", filepath.Base(videoPath)))
	fmt.Fprintln(a.out, field("  New", filepath.Base(outPath)))
	fmt.Fprintln(a.out, field("  Range", fmt.Sprintf("%s to %s", timeutil.FormatPrecise(req.Start), timeutil.FormatPrecise(req.End))))
	fmt.Fprintln(a.out)

	return a.cut(ctx, opts, videoPath, outPath, req)
}

// resolveVideo returns the absolute path of the video to clip, asking the
// user to browse for one when none was given.
func (a *app) resolveVideo(flagPath string) (string, error) {
	path := flagPath
	if path == "" {
		selected, err := a.selectVideo(a.searchDirectory())
		if err != nil {
			return "", err
		}
		path = selected
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	info, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("video file not found: %s", absPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to access video file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a video file: %s", absPath)
	}

	if a.history != nil {
		if err := a.history.Save(filepath.Dir(absPath), a.now()); err != nil {
			logging.Log.WithError(err).Warn("could not save search directory")
		}
	}
	return absPath, nil
}

// searchDirectory picks where the browser starts: the saved directory while
// it is fresh, else the configured default, else home.
func (a *app) searchDirectory() string {
	if a.history != nil {
		h, err := a.history.Load()
		if err != nil {
			logging.Log.WithError(err).Warn("could not load search history")
		} else if h != nil && h.Fresh(a.now(), a.cfg.HistoryFreshness) {
			if dir := h.Dir(a.home); isDir(dir) {
				return dir
			}
		}
	}
	if dir := expandTilde(a.cfg.DefaultSearchDir, a.home); isDir(dir) {
		return dir
	}
	return a.home
}

// askTimes returns the raw start and end entries, prompting for any not
// given as flags.
func (a *app) askTimes(opts runOptions, duration float64, preview previewSource) (string, string, error) {
	start := opts.start
	if start == "" {
		start = "00:00:00"
		if pos, ok := playbackPosition(preview); ok {
			start = timeutil.FormatClock(pos)
		}
		if !opts.yes {
			if err := a.prompt.Start(&start); err != nil {
				return "", "", err
			}
		}
	}

	end := opts.end
	if end == "" {
		end = timeutil.FormatClock(duration)
		if pos, ok := playbackPosition(preview); ok {
			if expr, err := timestamp.ParseStart(start); err == nil && expr.Mode == timestamp.Absolute && pos > expr.Seconds {
				end = timeutil.FormatClock(pos)
			}
		}
		if !opts.yes {
			if err := a.prompt.End(&end, forms.EndValidator(duration, &start)); err != nil {
				return "", "", err
			}
		}
	}
	return start, end, nil
}

func playbackPosition(p previewSource) (float64, bool) {
	if p == nil {
		return 0, false
	}
	pos, err := p.GetTimePos()
	if err != nil || pos <= 0 {
		return 0, false
	}
	return pos, true
}

// outputPath builds the output file path, prompting for a name when none
// was given and confirming before replacing an existing file.
func (a *app) outputPath(opts runOptions, videoPath string, req timestamp.ClipRequest) (string, error) {
	name, ext := cliputil.DefaultOutputName(videoPath, req.Start, req.End)
	if opts.outname != "" {
		name = opts.outname
	} else if !opts.yes {
		if err := a.prompt.Name(&name, ext); err != nil {
			return "", err
		}
	}

	if err := forms.ValidateName(name); err != nil {
		return "", fmt.Errorf("invalid output name %q: %w", name, err)
	}

	dir := filepath.Dir(videoPath)
	if opts.outpath != "" {
		abs, err := filepath.Abs(expandTilde(opts.outpath, a.home))
		if err != nil {
			return "", fmt.Errorf("failed to resolve output folder: %w", err)
		}
		dir = abs
	}

	outPath := cliputil.OutputPath(dir, name, ext)
	if outPath == videoPath {
		return "", fmt.Errorf("output would overwrite the source video: %s", outPath)
	}

	if _, err := os.Stat(outPath); err == nil && !opts.yes {
		overwrite, err := a.prompt.ConfirmOverwrite(outPath)
		if err != nil {
			return "", err
		}
		if !overwrite {
			return "", errCancelled
		}
	}
	return outPath, nil
}

// cut runs ffmpeg, records the outcome in the cut log and reports it.
func (a *app) cut(ctx context.Context, opts runOptions, videoPath, outPath string, req timestamp.ClipRequest) error {
	cutID := a.logCutStart(videoPath, outPath, req, opts.exact)

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	res, err := a.cutter.Cut(ctx, clip.CutRequest{
		Input:  videoPath,
		Output: outPath,
		Start:  req.Start,
		End:    req.End,
		Exact:  opts.exact,
	})
	if err != nil {
		a.logCutEnd(cutID, -1, 0, err.Error())
		return err
	}
	logging.Log.WithField("command", res.Command).Debug("ffmpeg finished")

	if res.Success() {
		a.logCutEnd(cutID, 0, res.OutputSize, res.Output)
		fmt.Fprintln(a.out, styles.Success.Render("*** Done! No errors ***"))
		if res.OutputExists {
			fmt.Fprintln(a.out, field("Saved", fmt.Sprintf("%s (%s)", outPath, humanize.Bytes(uint64(res.OutputSize)))))
		}
		fmt.Fprintln(a.out)
		return nil
	}

	a.logCutEnd(cutID, res.ExitCode, 0, res.Output)
	saved := "was not"
	if res.OutputExists {
		saved = "was"
	}
	report := fmt.Sprintf("Possible error! Got return code: %d\nFile %s saved...\n\nUsing command:\n  %s",
		res.ExitCode, saved, res.DisplayCommand)
	if cutID != "" {
		report += "\n\nffmpeg output: clipper-cli history show " + cutID
	}
	fmt.Fprintln(a.out, styles.ErrorBox.Render(report))
	logging.Log.Debug(res.Output)

	return &ExecutionError{ExitCode: res.ExitCode, OutputExists: res.OutputExists, Command: res.DisplayCommand}
}

func (a *app) logCutStart(videoPath, outPath string, req timestamp.ClipRequest, exact bool) string {
	if a.db == nil {
		return ""
	}
	id, err := db.InsertCut(a.db, db.NewCut{
		VideoPath:     videoPath,
		VideoDuration: req.Duration,
		Start:         req.Start,
		End:           req.End,
		OutputPath:    outPath,
		Exact:         exact,
	}, a.now())
	if err != nil {
		logging.Log.WithError(err).Warn("could not record cut")
		return ""
	}
	return id
}

func (a *app) logCutEnd(id string, exitCode int, size int64, output string) {
	if a.db == nil || id == "" {
		return
	}
	var err error
	if exitCode == 0 {
		err = db.MarkCutComplete(a.db, id, a.now(), size, output)
	} else {
		err = db.MarkCutError(a.db, id, a.now(), exitCode, output)
	}
	if err != nil {
		logging.Log.WithError(err).Warn("could not update cut log")
	}
}

func field(label, value string) string {
	return styles.Label.Render(label+": ") + styles.Value.Render(value)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func expandTilde(path, home string) string {
	if path == "~" {
		return home
	}
	if len(path) > 1 && path[0] == '~' && os.IsPathSeparator(path[1]) {
		return filepath.Join(home, path[2:])
	}
	return path
}
