package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/user/clipper-cli/clip"
	"github.com/user/clipper-cli/config"
	"github.com/user/clipper-cli/db"
	"github.com/user/clipper-cli/deps"
	"github.com/user/clipper-cli/logging"
	"github.com/user/clipper-cli/mpv"
	"github.com/user/clipper-cli/tui/picker"
)

var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "clipper-cli",
	Short: "Cut a clip out of a video with ffmpeg",
	Long: `clipper-cli trims a copy of a video between two timestamps using ffmpeg.

Pick the video with --video or from a file browser, then give start and end
times as HH:MM:SS, MM:SS or seconds. Relative times:
  start -T  (or nT)  T before the end
  end   +T  (or pT)  T after the start
  end   -T  (or nT)  T before the end of the video

Examples:
  clipper-cli --video game.mp4 --start 00:10:00 --end +00:05:00
  clipper-cli --video game.mp4 --start -30 --end 01:00:00 --exact`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logging.Init(verbose)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptions{}
		opts.video, _ = cmd.Flags().GetString("video")
		opts.start, _ = cmd.Flags().GetString("start")
		opts.end, _ = cmd.Flags().GetString("end")
		opts.outname, _ = cmd.Flags().GetString("outname")
		opts.outpath, _ = cmd.Flags().GetString("outpath")
		opts.exact, _ = cmd.Flags().GetBool("exact")
		opts.preview, _ = cmd.Flags().GetBool("preview")
		opts.yes, _ = cmd.Flags().GetBool("yes")
		opts.timeout, _ = cmd.Flags().GetDuration("timeout")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to resolve home directory: %w", err)
		}

		a := newApp(cfg, home)

		// History and the cut log are optional.
		if database, err := db.Open(cfg.DBPath()); err != nil {
			logging.Log.WithError(err).Warn("could not open history database")
		} else {
			defer database.Close()
			a.db = database
			a.history = &db.HistoryStore{DB: database, Home: home}
		}

		return a.run(cmd.Context(), opts)
	},
}

// newApp wires the production collaborators.
func newApp(cfg *config.Config, home string) *app {
	return &app{
		cfg:      cfg,
		home:     home,
		prober:   &clip.Prober{Binary: cfg.FfprobePath},
		cutter:   &clip.Executor{Binary: cfg.FfmpegPath},
		binaries: deps.Binaries{Ffmpeg: cfg.FfmpegPath, Ffprobe: cfg.FfprobePath, Mpv: cfg.MpvPath},
		prompt:   huhPrompter{},
		selectVideo: func(dir string) (string, error) {
			fmt.Fprintln(os.Stderr, "Please use the file browser to select a video file")
			return picker.Run(dir)
		},
		openPreview: func(ctx context.Context, path string) (previewSource, func(), error) {
			if err := (deps.Binaries{Mpv: cfg.MpvPath}).CheckMpv(); err != nil {
				return nil, nil, err
			}
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			player, err := mpv.Launch(ctx, cfg.MpvPath, path)
			if err != nil {
				return nil, nil, err
			}
			fmt.Fprintln(os.Stderr, "Preview open in mpv: the current position is offered as the default time")
			return player.Client(), func() { player.Close() }, nil
		},
		out: os.Stdout,
		now: time.Now,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("clipper-cli version %s\n", Version)
	},
}

func init() {
	rootCmd.Flags().String("video", "", "Path to the video to clip (opens a file browser if omitted)")
	rootCmd.Flags().String("start", "", "Start time: HH:MM:SS, MM:SS or seconds; -T counts back from the end")
	rootCmd.Flags().String("end", "", "End time: HH:MM:SS, MM:SS or seconds; +T counts from the start, -T back from the video end")
	rootCmd.Flags().String("outname", "", "Output file name without extension (default: <video>-(HHMMSS-to-HHMMSS))")
	rootCmd.Flags().String("outpath", "", "Output folder (default: the video's folder)")
	rootCmd.Flags().Bool("exact", false, "Re-encode for frame-accurate cuts instead of copying streams")
	rootCmd.Flags().Bool("preview", false, "Open the video in mpv and offer its position as the default times")
	rootCmd.Flags().BoolP("yes", "y", false, "Accept defaults without prompting and overwrite existing output")
	rootCmd.Flags().Duration("timeout", 0, "Abort ffmpeg after this long (e.g. 10m); 0 disables")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug logging")

	rootCmd.AddCommand(versionCmd)
}

// exitCode maps a run error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, huh.ErrUserAborted), errors.Is(err, picker.ErrNoSelection), errors.Is(err, errCancelled),
		errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		var execErr *ExecutionError
		if !errors.As(err, &execErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	os.Exit(exitCode(err))
}
