package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/user/clipper-cli/config"
	"github.com/user/clipper-cli/db"
	"github.com/user/clipper-cli/pkg/timeutil"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent cuts",
	Long:  `Display the most recent cuts with their status, range and output file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		database, err := db.Open(cfg.DBPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		cuts, err := db.SelectRecentCuts(database, limit)
		if err != nil {
			return err
		}
		if len(cuts) == 0 {
			fmt.Println("No cuts recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tWhen\tStatus\tRange\tSize\tOutput")
		fmt.Fprintln(w, "--\t----\t------\t-----\t----\t------")
		for _, c := range cuts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				c.ID,
				humanize.Time(c.CreatedAt),
				cutStatus(c),
				timeutil.FormatClock(c.Start)+"-"+timeutil.FormatClock(c.End),
				cutSize(c),
				filepath.Base(c.OutputPath),
			)
		}
		w.Flush()
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one cut with ffmpeg's output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		database, err := db.Open(cfg.DBPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		return showCut(os.Stdout, database, args[0])
	},
}

var errCutNotFound = errors.New("cut not found")

// showCut prints the details of one cut followed by the ffmpeg output
// recorded for it.
func showCut(w io.Writer, database *sql.DB, id string) error {
	c, err := db.SelectCutByID(database, id)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: %s", errCutNotFound, id)
	}

	mode := "stream copy"
	if c.Exact {
		mode = "exact (re-encoded)"
	}
	fmt.Fprintln(w, field("ID", c.ID))
	fmt.Fprintln(w, field("Video", c.VideoPath))
	fmt.Fprintln(w, field("Range", timeutil.FormatPrecise(c.Start)+" to "+timeutil.FormatPrecise(c.End)))
	fmt.Fprintln(w, field("Mode", mode))
	fmt.Fprintln(w, field("Output", c.OutputPath))
	fmt.Fprintln(w, field("Status", cutStatus(*c)))
	fmt.Fprintln(w, field("Size", cutSize(*c)))
	fmt.Fprintln(w, field("Started", c.CreatedAt.Local().Format(time.DateTime)))
	if c.FinishedAt != nil {
		fmt.Fprintln(w, field("Finished", c.FinishedAt.Local().Format(time.DateTime)))
	}

	fmt.Fprintln(w)
	if c.Log == "" {
		fmt.Fprintln(w, "No ffmpeg output recorded.")
		return nil
	}
	fmt.Fprintln(w, "ffmpeg output:")
	fmt.Fprintln(w, c.Log)
	return nil
}

func cutStatus(c db.Cut) string {
	if c.Status == db.CutError && c.ExitCode != nil {
		return fmt.Sprintf("error (%d)", *c.ExitCode)
	}
	return c.Status
}

func cutSize(c db.Cut) string {
	if c.Filesize == nil {
		return "-"
	}
	return humanize.Bytes(uint64(*c.Filesize))
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of cuts to show")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
