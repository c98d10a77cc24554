package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vnrename/internal/matching"
	"vnrename/internal/services"
)

func newTagCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "tag <name>",
		Short: "Look up the canonical VNDB name for a tag",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			logger, closeLog, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			defer closeLog()
			client, err := ctx.catalog()
			if err != nil {
				return err
			}

			tag, ok := matching.New(client, logger).LookupTag(cmd.Context(), name)
			if !ok {
				return services.Wrap(services.ErrNotFound, "tag", "lookup", fmt.Sprintf("no tag matches %q", name), nil)
			}
			if jsonOutput {
				return writeJSON(cmd, tag)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", tag.Name, valueOr(tag.ID, "-"))
			if tag.Category != "" {
				fmt.Fprintf(out, "Category: %s\n", tag.Category)
			}
			if len(tag.Aliases) > 0 {
				fmt.Fprintf(out, "Aliases: %s\n", strings.Join(tag.Aliases, ", "))
			}
			fmt.Fprintf(out, "Visual novels: %d\n", tag.VNCount)
			if tag.Description != "" {
				fmt.Fprintln(out, tag.Description)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
