package main

import (
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"vnrename/internal/workflow"
)

func newSuggestCommand(ctx *commandContext) *cobra.Command {
	var pick int
	var copyName bool
	var originalTitle bool

	cmd := &cobra.Command{
		Use:   "suggest <folder>",
		Short: "Print the suggested name for one folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCfg := *cfg
			if originalTitle {
				runCfg.Naming.UseOriginalTitle = true
			}
			path, err := resolveBaseDirectory(args[0], "")
			if err != nil {
				return err
			}
			if pick < 1 {
				return fmt.Errorf("--pick must be at least 1 (got %d)", pick)
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

			proc := workflow.NewProcessor(&runCfg, client, nil, logger)
			suggestion := proc.Suggest(cmd.Context(), filepath.Dir(path), filepath.Base(path), pick-1)

			out := cmd.OutOrStdout()
			if len(suggestion.Candidates) > 0 {
				printCandidates(out, suggestion.Candidates, shouldColorize(out))
			}
			if suggestion.Err != nil {
				return suggestion.Err
			}
			if suggestion.Release != nil {
				fmt.Fprintf(out, "Release: %s (%s)\n", valueOr(suggestion.Release.Title, "-"), valueOr(suggestion.Release.Released, "-"))
			}
			fmt.Fprintf(out, "Suggested: %s\n", suggestion.Name)

			if copyName {
				if err := clipboard.WriteAll(suggestion.Name); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Fprintln(out, "Copied to clipboard")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&pick, "pick", 1, "Candidate number to use")
	cmd.Flags().BoolVar(&copyName, "copy", false, "Copy the suggested name to the clipboard")
	cmd.Flags().BoolVar(&originalTitle, "original-title", false, "Use the original-language title")
	return cmd
}
