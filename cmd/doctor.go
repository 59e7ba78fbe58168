package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/clipper-cli/config"
	"github.com/user/clipper-cli/deps"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that ffmpeg and ffprobe are installed, and mpv for --preview.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		b := deps.Binaries{Ffmpeg: cfg.FfmpegPath, Ffprobe: cfg.FfprobePath, Mpv: cfg.MpvPath}

		fmt.Println("Checking dependencies...")
		fmt.Println()

		allGood := true
		for _, check := range []struct {
			name     string
			fn       func() error
			required bool
		}{
			{"ffmpeg", b.CheckFfmpeg, true},
			{"ffprobe", b.CheckFfprobe, true},
			{"mpv", b.CheckMpv, false},
		} {
			if err := check.fn(); err != nil {
				fmt.Printf("✗ %s: NOT FOUND\n", check.name)
				fmt.Printf("  %v\n", err)
				if check.required {
					allGood = false
				}
				continue
			}
			fmt.Printf("✓ %s: OK\n", check.name)
		}

		fmt.Println()
		if allGood {
			fmt.Println("All required dependencies are installed!")
			return nil
		}
		fmt.Println("Some dependencies are missing. Please install them to clip videos.")
		os.Exit(1)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
