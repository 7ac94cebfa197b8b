package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/slopeshowdown/internal/stats"
	"github.com/abhisek/slopeshowdown/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show game statistics per class period",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		progress, err := st.ReadProgress()
		if err != nil {
			return fmt.Errorf("read progress log: %w", err)
		}
		summary, err := st.ReadSummary()
		if err != nil {
			return fmt.Errorf("read summary log: %w", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		db, err := stats.Load(ctx, progress, summary)
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}
		defer db.Close()

		period, _ := cmd.Flags().GetString("period")
		top, _ := cmd.Flags().GetInt("top")
		return writeReport(ctx, cmd.OutOrStdout(), db, period, top)
	},
}

func init() {
	statsCmd.Flags().String("period", "", "Restrict totals and leaderboard to one class period")
	statsCmd.Flags().Int("top", 5, "Leaderboard size")
}

// writeReport prints the totals, the per-period table and the leaderboard.
func writeReport(ctx context.Context, w io.Writer, db *stats.DB, period string, top int) error {
	totals, err := db.Totals(ctx, period)
	if err != nil {
		return err
	}
	if totals.Games == 0 && totals.Answers == 0 {
		fmt.Fprintln(w, "No games recorded yet.")
		return nil
	}

	scope := "all periods"
	if period != "" {
		scope = "period " + period
	}
	fmt.Fprintf(w, "Totals (%s)\n", scope)
	fmt.Fprintf(w, "  Games: %d   Winners: %d   Players: %d   Accuracy: %s\n\n",
		totals.Games, totals.Winners, totals.Players, percent(totals.Accuracy(), totals.Answers))

	if period == "" {
		periods, err := db.ByPeriod(ctx)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(periods))
		for _, p := range periods {
			rows = append(rows, []string{
				p.ClassPeriod,
				strconv.Itoa(p.Games),
				strconv.Itoa(p.Winners),
				strconv.Itoa(p.BestScore),
				fmt.Sprintf("%.1f", p.AvgScore),
				percent(p.Accuracy(), p.Answers),
			})
		}
		fmt.Fprintln(w, "By period")
		fmt.Fprintln(w, plainTable([]string{"Period", "Games", "Winners", "Best", "Avg", "Accuracy"}, rows))
		fmt.Fprintln(w)
	}

	leaders, err := db.Leaderboard(ctx, period, top)
	if err != nil {
		return err
	}
	if len(leaders) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(leaders))
	for i, e := range leaders {
		won := ""
		if e.Won {
			won = "★"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.Name,
			e.ClassPeriod,
			strconv.Itoa(e.Score),
			strconv.Itoa(e.BestStreak),
			won,
		})
	}
	fmt.Fprintln(w, "Leaderboard")
	fmt.Fprintln(w, plainTable([]string{"#", "Name", "Period", "Score", "Streak", "Won"}, rows))
	return nil
}

func percent(f float64, n int) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", f*100)
}

// plainTable renders an uncoloured table suitable for pipes and files.
func plainTable(headers []string, rows [][]string) string {
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cell.Bold(true)
			}
			return cell
		}).
		String()
}
