package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/finwell/finhealth/internal/model"
	"github.com/finwell/finhealth/internal/store"
)

var (
	exportOut     string
	exportTracker string
	exportLimit   int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export scored submissions to an XLSX workbook",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		subs, err := st.ListSubmissions(ctx, store.SubmissionFilter{
			TrackerKey: exportTracker,
			Limit:      exportLimit,
		})
		if err != nil {
			return eris.Wrap(err, "export: list submissions")
		}

		if err := writeSubmissionsXLSX(exportOut, subs); err != nil {
			return err
		}

		zap.L().Info("submissions exported",
			zap.Int("count", len(subs)),
			zap.String("path", exportOut))
		fmt.Printf("wrote %d submissions to %s\n", len(subs), exportOut)
		return nil
	},
}

func writeSubmissionsXLSX(path string, subs []model.Submission) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Submissions")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"ID", "Tracker", "Language", "Created", "Overall", "Label", "Risk"} {
		header.AddCell().SetString(h)
	}
	for _, p := range model.AllPillars() {
		header.AddCell().SetString(string(p))
	}

	for _, sub := range subs {
		row := sheet.AddRow()
		row.AddCell().SetString(sub.ID)
		row.AddCell().SetString(sub.TrackerKey)
		row.AddCell().SetString(sub.Language)
		row.AddCell().SetString(sub.CreatedAt.Format("2006-01-02 15:04:05"))

		if sub.Result == nil {
			continue
		}
		row.AddCell().SetFloat(sub.Result.OverallScore)
		row.AddCell().SetString(string(sub.Result.HealthLabel))
		row.AddCell().SetString(string(sub.Result.RiskTolerance))
		for _, p := range model.AllPillars() {
			row.AddCell().SetFloat(sub.Result.PillarScores[p])
		}
	}

	return eris.Wrapf(f.Save(path), "export: save %s", path)
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "submissions.xlsx", "output file path")
	exportCmd.Flags().StringVar(&exportTracker, "tracker", "", "only export submissions for this tracker key")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "max submissions to export (0 = all)")
	rootCmd.AddCommand(exportCmd)
}
