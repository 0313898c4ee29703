package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/report"
	"github.com/sandeepkv93/focusd/internal/storage"
)

func newExportCmd(o *rootOptions) *cobra.Command {
	var pdfPath, jsonPath, date string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a PDF weekly report or a JSON copy of all data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pdfPath == "" && jsonPath == "" {
				return errors.New("nothing to export: pass --pdf and/or --json")
			}
			ref, err := parseDay(date)
			if err != nil {
				return err
			}
			st, cleanup, err := o.openState(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()
			out := cmd.OutOrStdout()

			if pdfPath != "" {
				f, err := os.Create(pdfPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", pdfPath, err)
				}
				ws := st.WeekStats(ref)
				var review *model.WeeklyReview
				if r, ok := st.Review(ws.WeekStart); ok {
					review = &r
				}
				if err := report.WritePDF(f, ws, review); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("closing %s: %w", pdfPath, err)
				}
				fmt.Fprintf(out, "PDF report written: %s\n", pdfPath)
			}

			if jsonPath != "" {
				if err := storage.NewFileStore(jsonPath).Save(cmd.Context(), st.Snapshot()); err != nil {
					return err
				}
				fmt.Fprintf(out, "JSON export written: %s\n", jsonPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write a PDF weekly report to this file")
	cmd.Flags().StringVar(&jsonPath, "json", "", "write all data as JSON to this file")
	cmd.Flags().StringVar(&date, "date", "", "any date in the report week, YYYY-MM-DD (default today)")
	return cmd
}
