package main

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"vnrename/internal/fsops"
	"vnrename/internal/textutil"
	"vnrename/internal/workflow"
)

type scanRow struct {
	Folder     string  `json:"folder"`
	Script     string  `json:"script"`
	Title      string  `json:"title"`
	Date       string  `json:"expected_date,omitempty"`
	Producer   string  `json:"expected_producer,omitempty"`
	VNID       string  `json:"vn_id,omitempty"`
	Match      string  `json:"match,omitempty"`
	Confidence float64 `json:"confidence"`
	Suggested  string  `json:"suggested,omitempty"`
	Error      string  `json:"error,omitempty"`
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Report the best match and suggested name for every folder without renaming",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			base, err := resolveBaseDirectory(args[0], "")
			if err != nil {
				return err
			}
			folders, err := fsops.Local().ListSubdirectories(base)
			if err != nil {
				return err
			}
			logger, closeLog, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			defer closeLog()
			client, err := ctx.catalog()
			if err != nil {
				return err
			}
			proc := workflow.NewProcessor(cfg, client, nil, logger)

			bar := newScanProgress(cmd.ErrOrStderr(), len(folders))
			rows := make([]scanRow, 0, len(folders))
			for _, folder := range folders {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				rows = append(rows, toScanRow(proc.Suggest(cmd.Context(), base, folder, 0)))
				_ = bar.Add(1)
			}
			_ = bar.Finish()

			if jsonOutput {
				return writeJSON(cmd, rows)
			}
			printScanTable(cmd.OutOrStdout(), rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

// newScanProgress draws on w only when it is a terminal.
func newScanProgress(w io.Writer, total int) *progressbar.ProgressBar {
	if !isTerminal(w) {
		return progressbar.DefaultSilent(int64(total))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("scanning"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func toScanRow(s workflow.Suggestion) scanRow {
	row := scanRow{
		Folder:    s.Folder,
		Script:    textutil.DetectScript(s.Folder),
		Title:     s.Parsed.Title,
		Date:      s.Parsed.Hints.ExpectedDate,
		Producer:  s.Parsed.Hints.ExpectedProducer,
		Suggested: s.Name,
	}
	if s.Chosen != nil {
		row.VNID = s.Chosen.VN.ID
		row.Match = s.Chosen.VN.Title
		row.Confidence = s.Chosen.Confidence
	}
	if s.Err != nil {
		row.Error = s.Err.Error()
	}
	return row
}

func printScanTable(out io.Writer, rows []scanRow) {
	if len(rows) == 0 {
		fmt.Fprintln(out, "No folders found")
		return
	}
	colorize := shouldColorize(out)
	headers := []string{"Folder", "Script", "Hints", "Match", "Confidence", "Suggested"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
	tableRows := make([][]string, 0, len(rows))
	matched := 0
	for _, row := range rows {
		match := "-"
		confidence := "-"
		suggested := valueOr(row.Suggested, "-")
		if row.VNID != "" {
			matched++
			match = fmt.Sprintf("%s (%s)", row.Match, row.VNID)
			confidence = formatConfidence(row.Confidence, colorize)
		}
		if row.Error != "" && row.Suggested == "" {
			suggested = row.Error
		}
		tableRows = append(tableRows, []string{
			row.Folder,
			row.Script,
			formatHints(row.Date, row.Producer),
			match,
			confidence,
			suggested,
		})
	}
	fmt.Fprintln(out, renderTable(headers, tableRows, aligns))
	fmt.Fprintf(out, "%d of %d folders matched\n", matched, len(rows))
}
