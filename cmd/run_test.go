package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/clipper-cli/clip"
	"github.com/user/clipper-cli/config"
	"github.com/user/clipper-cli/db"
	"github.com/user/clipper-cli/logging"
	"github.com/user/clipper-cli/pkg/timestamp"
	"github.com/user/clipper-cli/tui/picker"
)

type fakeProber struct {
	duration float64
	err      error
}

func (f *fakeProber) ProbeDuration(ctx context.Context, path string) (float64, error) {
	return f.duration, f.err
}

type fakeCutter struct {
	got *clip.CutRequest
	res *clip.Result
	err error
}

func (f *fakeCutter) Cut(ctx context.Context, req clip.CutRequest) (*clip.Result, error) {
	f.got = &req
	if f.err != nil {
		return nil, f.err
	}
	if f.res != nil {
		return f.res, nil
	}
	return &clip.Result{OutputExists: true, OutputSize: 2048}, nil
}

// fakePrompter records the defaults it was shown and answers with the
// configured values, leaving defaults in place when an answer is empty.
type fakePrompter struct {
	startAnswer, endAnswer, nameAnswer string
	seenStart, seenEnd, seenName       string
	validateEnd                        func(string) error
	overwrite                          bool
	asked                              []string
}

func (p *fakePrompter) Start(value *string) error {
	p.asked = append(p.asked, "start")
	p.seenStart = *value
	if p.startAnswer != "" {
		*value = p.startAnswer
	}
	return nil
}

func (p *fakePrompter) End(value *string, validate func(string) error) error {
	p.asked = append(p.asked, "end")
	p.seenEnd = *value
	p.validateEnd = validate
	if p.endAnswer != "" {
		*value = p.endAnswer
	}
	return nil
}

func (p *fakePrompter) Name(value *string, ext string) error {
	p.asked = append(p.asked, "name")
	p.seenName = *value
	if p.nameAnswer != "" {
		*value = p.nameAnswer
	}
	return nil
}

func (p *fakePrompter) ConfirmOverwrite(path string) (bool, error) {
	p.asked = append(p.asked, "overwrite")
	return p.overwrite, nil
}

type fakeHistory struct {
	rec      *db.SearchHistory
	savedDir string
}

func (h *fakeHistory) Load() (*db.SearchHistory, error) { return h.rec, nil }

func (h *fakeHistory) Save(dir string, now time.Time) error {
	h.savedDir = dir
	return nil
}

type fakePositions struct {
	values   []float64
	duration float64
}

func (f *fakePositions) GetDuration() (float64, error) {
	if f.duration == 0 {
		return 0, errors.New("no duration")
	}
	return f.duration, nil
}

func (f *fakePositions) GetTimePos() (float64, error) {
	if len(f.values) == 0 {
		return 0, errors.New("no position")
	}
	v := f.values[0]
	f.values = f.values[1:]
	return v, nil
}

type testEnv struct {
	app    *app
	out    *bytes.Buffer
	prober *fakeProber
	cutter *fakeCutter
	prompt *fakePrompter
	video  string
}

var testNow = time.Date(2024, 3, 9, 12, 0, 0, 0, time.Local)

func newTestEnv(t *testing.T, duration float64) *testEnv {
	t.Helper()
	logging.Log = logging.New(io.Discard, false)

	home := t.TempDir()
	videoDir := filepath.Join(home, "videos")
	require.NoError(t, os.MkdirAll(videoDir, 0755))
	video := filepath.Join(videoDir, "game.mp4")
	require.NoError(t, os.WriteFile(video, []byte("not really a video"), 0644))

	env := &testEnv{
		out:    &bytes.Buffer{},
		prober: &fakeProber{duration: duration},
		cutter: &fakeCutter{},
		prompt: &fakePrompter{},
		video:  video,
	}
	env.app = &app{
		cfg:    config.Default(home),
		home:   home,
		prober: env.prober,
		cutter: env.cutter,
		prompt: env.prompt,
		selectVideo: func(dir string) (string, error) {
			return "", picker.ErrNoSelection
		},
		out: env.out,
		now: func() time.Time { return testNow },
	}
	return env
}

func TestRunWithFlags(t *testing.T) {
	env := newTestEnv(t, 7200)
	database, err := db.Open(filepath.Join(t.TempDir(), "data.db"))
	require.NoError(t, err)
	defer database.Close()
	env.app.db = database

	err = env.app.run(context.Background(), runOptions{
		video: env.video,
		start: "-00:05:00",
		end:   "01:00:00",
		yes:   true,
	})
	require.NoError(t, err)

	require.NotNil(t, env.cutter.got)
	assert.Equal(t, env.video, env.cutter.got.Input)
	assert.InDelta(t, 3300, env.cutter.got.Start, 1e-9)
	assert.InDelta(t, 3600, env.cutter.got.End, 1e-9)
	assert.Equal(t, filepath.Join(filepath.Dir(env.video), "game-(005500-to-010000).mp4"), env.cutter.got.Output)
	assert.False(t, env.cutter.got.Exact)
	assert.Empty(t, env.prompt.asked)
	assert.Contains(t, env.out.String(), "Done! No errors")
	assert.Contains(t, env.out.String(), "02:00:00")

	cuts, err := db.SelectRecentCuts(database, 10)
	require.NoError(t, err)
	require.Len(t, cuts, 1)
	assert.Equal(t, db.CutComplete, cuts[0].Status)
	assert.Equal(t, 7200.0, cuts[0].VideoDuration)
	require.NotNil(t, cuts[0].Filesize)
	assert.Equal(t, int64(2048), *cuts[0].Filesize)
}

func TestRunPromptsWithDefaults(t *testing.T) {
	env := newTestEnv(t, 3600)
	env.prompt.startAnswer = "0"
	env.prompt.endAnswer = "+10:00"
	env.prompt.nameAnswer = "kickoff"

	err := env.app.run(context.Background(), runOptions{video: env.video, outpath: filepath.Join(env.app.home, "out"), exact: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "end", "name"}, env.prompt.asked)
	assert.Equal(t, "00:00:00", env.prompt.seenStart)
	assert.Equal(t, "01:00:00", env.prompt.seenEnd)
	assert.Equal(t, "game-(000000-to-001000)", env.prompt.seenName)

	require.NotNil(t, env.prompt.validateEnd)
	assert.NoError(t, env.prompt.validateEnd("+10"))
	assert.ErrorIs(t, env.prompt.validateEnd("2:00:00"), timestamp.ErrInvalidClipRange)

	require.NotNil(t, env.cutter.got)
	assert.Equal(t, filepath.Join(env.app.home, "out", "kickoff.mp4"), env.cutter.got.Output)
	assert.InDelta(t, 600, env.cutter.got.End, 1e-9)
	assert.True(t, env.cutter.got.Exact)
}

func TestRunUnsupportedDuration(t *testing.T) {
	env := newTestEnv(t, 86400)

	err := env.app.run(context.Background(), runOptions{video: env.video})
	assert.ErrorIs(t, err, timestamp.ErrUnsupportedDuration)
	assert.Nil(t, env.cutter.got)
	assert.Empty(t, env.prompt.asked)
}

func TestRunProbeFailureContinues(t *testing.T) {
	env := newTestEnv(t, 0)
	env.prober.err = errors.New("ffprobe failed")

	err := env.app.run(context.Background(), runOptions{video: env.video, start: "0", end: "10", yes: true})
	require.NoError(t, err)
	require.NotNil(t, env.cutter.got)
	assert.InDelta(t, 10, env.cutter.got.End, 1e-9)
}

func TestRunRejectsBadTimes(t *testing.T) {
	tests := []struct {
		start, end string
		want       error
	}{
		{"-00:05", "+00:10", timestamp.ErrAmbiguousRelativeTiming},
		{"abc", "00:10", timestamp.ErrMalformedTimestamp},
		{"00:00:50", "00:00:10", timestamp.ErrInvalidClipRange},
	}
	for _, tt := range tests {
		env := newTestEnv(t, 100)
		err := env.app.run(context.Background(), runOptions{video: env.video, start: tt.start, end: tt.end, yes: true})
		assert.ErrorIs(t, err, tt.want)
		assert.Nil(t, env.cutter.got)
	}
}

func TestRunExecutionFailure(t *testing.T) {
	env := newTestEnv(t, 100)
	database, err := db.Open(filepath.Join(t.TempDir(), "data.db"))
	require.NoError(t, err)
	defer database.Close()
	env.app.db = database
	env.cutter.res = &clip.Result{ExitCode: 1, Output: "Invalid data found", DisplayCommand: "ffmpeg -ss 0.000 -t 10.000 -i <input_path> -c copy -avoid_negative_ts 1 <output_path>"}

	err = env.app.run(context.Background(), runOptions{video: env.video, start: "0", end: "10", yes: true})
	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, 1, execErr.ExitCode)
	assert.False(t, execErr.OutputExists)
	assert.Equal(t, 1, exitCode(err))

	out := env.out.String()
	assert.Contains(t, out, "Possible error! Got return code: 1")
	assert.Contains(t, out, "was not saved")
	assert.Contains(t, out, "<input_path>")
	assert.Contains(t, out, "clipper-cli history show ")

	cuts, err := db.SelectRecentCuts(database, 10)
	require.NoError(t, err)
	require.Len(t, cuts, 1)
	assert.Equal(t, db.CutError, cuts[0].Status)
	assert.Equal(t, "Invalid data found", cuts[0].Log)
}

func TestRunCutError(t *testing.T) {
	env := newTestEnv(t, 100)
	env.cutter.err = context.DeadlineExceeded

	err := env.app.run(context.Background(), runOptions{video: env.video, start: "0", end: "10", yes: true, timeout: time.Second})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunBrowsesFromFreshHistory(t *testing.T) {
	env := newTestEnv(t, 100)
	videoDir := filepath.Dir(env.video)
	hist := &fakeHistory{rec: &db.SearchHistory{SearchDirectory: "~/videos", LastUsedDate: "2024/03/09"}}
	env.app.history = hist

	var browsedFrom string
	env.app.selectVideo = func(dir string) (string, error) {
		browsedFrom = dir
		return env.video, nil
	}

	err := env.app.run(context.Background(), runOptions{start: "0", end: "10", yes: true})
	require.NoError(t, err)
	assert.Equal(t, videoDir, browsedFrom)
	assert.Equal(t, videoDir, hist.savedDir)
}

func TestRunNoSelection(t *testing.T) {
	env := newTestEnv(t, 100)
	err := env.app.run(context.Background(), runOptions{})
	assert.ErrorIs(t, err, picker.ErrNoSelection)
	assert.Equal(t, 130, exitCode(err))
}

func TestSearchDirectoryFallbacks(t *testing.T) {
	env := newTestEnv(t, 100)
	a := env.app
	defaultDir := t.TempDir()
	a.cfg.DefaultSearchDir = defaultDir

	a.history = &fakeHistory{rec: &db.SearchHistory{SearchDirectory: "~/videos", LastUsedDate: "2024/03/01"}}
	assert.Equal(t, defaultDir, a.searchDirectory())

	a.history = &fakeHistory{rec: &db.SearchHistory{SearchDirectory: "~/gone", LastUsedDate: "2024/03/09"}}
	assert.Equal(t, defaultDir, a.searchDirectory())

	a.cfg.DefaultSearchDir = filepath.Join(defaultDir, "missing")
	assert.Equal(t, a.home, a.searchDirectory())
}

func TestRunRefusesToOverwriteSource(t *testing.T) {
	env := newTestEnv(t, 100)
	err := env.app.run(context.Background(), runOptions{video: env.video, start: "0", end: "10", outname: "game", yes: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overwrite the source")
	assert.Nil(t, env.cutter.got)
}

func TestRunRejectsUnusableOutputName(t *testing.T) {
	for _, name := range []string{"::", "  ", "/\\|"} {
		env := newTestEnv(t, 100)
		err := env.app.run(context.Background(), runOptions{video: env.video, start: "0", end: "10", outname: name, yes: true})
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "invalid output name")
		assert.Nil(t, env.cutter.got)
	}
}

func TestRunOverwriteDeclined(t *testing.T) {
	env := newTestEnv(t, 100)
	existing := filepath.Join(filepath.Dir(env.video), "taken.mp4")
	require.NoError(t, os.WriteFile(existing, nil, 0644))

	err := env.app.run(context.Background(), runOptions{video: env.video, start: "0", end: "10", outname: "taken"})
	assert.ErrorIs(t, err, errCancelled)
	assert.Equal(t, []string{"overwrite"}, env.prompt.asked)
	assert.Nil(t, env.cutter.got)

	env.prompt.overwrite = true
	require.NoError(t, env.app.run(context.Background(), runOptions{video: env.video, start: "0", end: "10", outname: "taken"}))
	assert.Equal(t, existing, env.cutter.got.Output)
}

func TestRunPreviewOffersPlaybackPosition(t *testing.T) {
	env := newTestEnv(t, 3600)
	stopped := false
	env.app.openPreview = func(ctx context.Context, path string) (previewSource, func(), error) {
		return &fakePositions{values: []float64{125.4, 300}}, func() { stopped = true }, nil
	}

	err := env.app.run(context.Background(), runOptions{video: env.video, preview: true, outname: "x"})
	require.NoError(t, err)
	assert.Equal(t, "00:02:05", env.prompt.seenStart)
	assert.Equal(t, "00:05:00", env.prompt.seenEnd)
	assert.True(t, stopped)
}

func TestRunPreviewSuppliesDurationWhenProbeFails(t *testing.T) {
	env := newTestEnv(t, 0)
	env.prober.err = errors.New("ffprobe failed")
	env.app.openPreview = func(ctx context.Context, path string) (previewSource, func(), error) {
		return &fakePositions{duration: 3600}, func() {}, nil
	}

	err := env.app.run(context.Background(), runOptions{video: env.video, preview: true, start: "0", outname: "x"})
	require.NoError(t, err)
	assert.Equal(t, "01:00:00", env.prompt.seenEnd)
	assert.Contains(t, env.out.String(), "01:00:00")
	require.NotNil(t, env.cutter.got)
	assert.InDelta(t, 3600, env.cutter.got.End, 1e-9)
}

func TestRunPreviewDurationStillGuarded(t *testing.T) {
	env := newTestEnv(t, 0)
	env.prober.err = errors.New("ffprobe failed")
	env.app.openPreview = func(ctx context.Context, path string) (previewSource, func(), error) {
		return &fakePositions{duration: 90000}, func() {}, nil
	}

	err := env.app.run(context.Background(), runOptions{video: env.video, preview: true, outname: "x"})
	assert.ErrorIs(t, err, timestamp.ErrUnsupportedDuration)
	assert.Empty(t, env.prompt.asked)
	assert.Nil(t, env.cutter.got)
}

func TestRunPreviewFailureIsNotFatal(t *testing.T) {
	env := newTestEnv(t, 3600)
	env.app.openPreview = func(ctx context.Context, path string) (previewSource, func(), error) {
		return nil, nil, errors.New("mpv not found")
	}

	err := env.app.run(context.Background(), runOptions{video: env.video, preview: true, outname: "x"})
	require.NoError(t, err)
	assert.Equal(t, "00:00:00", env.prompt.seenStart)
	assert.Equal(t, "01:00:00", env.prompt.seenEnd)
}

func TestRunMissingVideo(t *testing.T) {
	env := newTestEnv(t, 100)
	err := env.app.run(context.Background(), runOptions{video: filepath.Join(env.app.home, "nope.mp4")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = env.app.run(context.Background(), runOptions{video: env.app.home})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 130, exitCode(huh.ErrUserAborted))
	assert.Equal(t, 130, exitCode(errCancelled))
	assert.Equal(t, 130, exitCode(fmt.Errorf("ffmpeg did not finish: %w", context.Canceled)))
	assert.Equal(t, 1, exitCode(fmt.Errorf("ffmpeg did not finish: %w", context.DeadlineExceeded)))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
	assert.Equal(t, 1, exitCode(&timestamp.InvalidClipRangeError{}))
}

func TestExpandTilde(t *testing.T) {
	home := filepath.Join("/", "home", "eo")
	assert.Equal(t, home, expandTilde("~", home))
	assert.Equal(t, filepath.Join(home, "Desktop"), expandTilde("~"+string(filepath.Separator)+"Desktop", home))
	assert.Equal(t, "/abs", expandTilde("/abs", home))
}
