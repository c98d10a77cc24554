package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vnrename/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var sessionID string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent rename outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				var (
					entries []history.Entry
					err     error
				)
				if id := strings.TrimSpace(sessionID); id != "" {
					entries, err = store.BySession(cmd.Context(), id)
				} else {
					entries, err = store.Recent(cmd.Context(), limit)
				}
				if err != nil {
					return err
				}

				if jsonOutput {
					if entries == nil {
						entries = []history.Entry{}
					}
					return writeJSON(cmd, entries)
				}

				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No history recorded")
					return nil
				}
				headers := []string{"When", "Status", "Folder", "New Name", "VN", "Error"}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{
						e.CreatedAt.Local().Format(time.DateTime),
						string(e.Status),
						e.OldName,
						valueOr(e.NewName, "-"),
						valueOr(e.VNID, "-"),
						valueOr(e.Error, ""),
					})
				}
				fmt.Fprintln(out, renderTable(headers, rows, nil))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	cmd.Flags().StringVar(&sessionID, "session", "", "Show every entry of one session")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
