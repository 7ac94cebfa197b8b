package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/slopeshowdown/internal/store"
)

var resultsCmd = &cobra.Command{
	Use:       "results progress|summary",
	Short:     "Print or export the game logs as CSV",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"progress", "summary"},
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}

		read, columns := st.ReadProgress, store.ProgressColumns
		if args[0] == "summary" {
			read, columns = st.ReadSummary, store.SummaryColumns
		}
		t, err := read()
		if err != nil {
			return fmt.Errorf("read %s log: %w", args[0], err)
		}

		name, _ := cmd.Flags().GetString("name")
		period, _ := cmd.Flags().GetString("period")
		limit, _ := cmd.Flags().GetInt("limit")
		out, _ := cmd.Flags().GetString("out")

		if t == nil {
			t = &store.Table{Variant: store.VariantCurrent, Columns: columns}
		}
		t = selectRows(t, store.Filter{NameContains: name, ClassPeriod: period}, limit)

		if out == "" {
			return t.WriteCSV(cmd.OutOrStdout())
		}
		data, err := t.CSV()
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d rows to %s\n", t.Len(), out)
		return nil
	},
}

// selectRows applies the filter and keeps the newest limit rows. A
// non-positive limit keeps everything.
func selectRows(t *store.Table, f store.Filter, limit int) *store.Table {
	t = t.Filter(f)
	if limit > 0 {
		t = t.Tail(limit)
	}
	return t
}

func init() {
	resultsCmd.Flags().String("name", "", "Only rows whose name contains this text (case-insensitive)")
	resultsCmd.Flags().String("period", "", "Only rows from this class period")
	resultsCmd.Flags().Int("limit", 0, "Keep only the newest N rows")
	resultsCmd.Flags().String("out", "", "Write CSV to this file instead of stdout")
}
