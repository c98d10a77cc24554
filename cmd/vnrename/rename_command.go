package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vnrename/internal/config"
	"vnrename/internal/history"
	"vnrename/internal/naming"
	"vnrename/internal/tui"
	"vnrename/internal/workflow"
)

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var useTUI bool
	var originalTitle bool
	var templateFlag string

	cmd := &cobra.Command{
		Use:   "rename [directory]",
		Short: "Interactively rename every folder in a directory",
		Long: "Searches VNDB for each subdirectory, lets you pick a match, and renames the folder\n" +
			"after confirmation. Without a directory argument the last directory used is reopened.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCfg := *cfg
			if originalTitle {
				runCfg.Naming.UseOriginalTitle = true
			}

			state, err := config.LoadState(cfg.StatePath())
			if err != nil {
				return err
			}
			var requested string
			if len(args) == 1 {
				requested = args[0]
			}
			base, err := resolveBaseDirectory(requested, state.LastDirectory)
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

			out := cmd.OutOrStdout()
			var prompter workflow.Prompter = newLinePrompter(cmd.InOrStdin(), out, shouldColorize(out))
			if useTUI {
				if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
					return errors.New("--tui requires an interactive terminal")
				}
				prompter = tui.Prompter{}
			}

			return ctx.withHistory(func(store *history.Store) error {
				opts := []workflow.Option{
					workflow.WithJournal(store),
					workflow.WithSessionID(ctx.session()),
				}
				if strings.TrimSpace(templateFlag) != "" {
					opts = append(opts, workflow.WithTemplate(naming.ParseTemplate(templateFlag)))
				}
				proc := workflow.NewProcessor(&runCfg, client, prompter, logger, opts...)

				runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()

				summary, runErr := proc.ProcessDirectory(runCtx, base)
				if runErr == nil || workflow.IsAbort(runErr) {
					state.LastDirectory = base
					state.UpdatedAt = time.Now().UTC()
					if err := config.SaveState(cfg.StatePath(), state); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not remember directory: %v\n", err)
					}
				}
				printRenameSummary(cmd, summary)
				if runErr != nil && !workflow.IsAbort(runErr) {
					return runErr
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&useTUI, "tui", false, "Use full-screen views for every question")
	cmd.Flags().BoolVar(&originalTitle, "original-title", false, "Use the original-language title")
	cmd.Flags().StringVar(&templateFlag, "template", "", "Name template, e.g. \"producer,releaseDate,title\" (prefix a token with ! to disable it)")
	return cmd
}

// resolveBaseDirectory picks the directory argument, else the remembered one.
func resolveBaseDirectory(requested, remembered string) (string, error) {
	dir := strings.TrimSpace(requested)
	if dir == "" {
		dir = strings.TrimSpace(remembered)
	}
	if dir == "" {
		return "", errors.New("no directory given and no previous directory remembered")
	}
	expanded, err := config.ExpandPath(dir)
	if err != nil {
		return "", fmt.Errorf("resolve directory: %w", err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("inspect directory %q: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

func printRenameSummary(cmd *cobra.Command, summary workflow.Summary) {
	out := cmd.OutOrStdout()
	for _, outcome := range summary.Outcomes {
		if outcome.Status == history.StatusFailed && outcome.Err != nil {
			fmt.Fprintf(out, "Failed: %s: %v\n", outcome.Folder, outcome.Err)
		}
	}
	fmt.Fprintf(out, "Renamed %d, skipped %d, aborted %d, failed %d\n",
		summary.Count(history.StatusRenamed),
		summary.Count(history.StatusSkipped),
		summary.Count(history.StatusAborted),
		summary.Count(history.StatusFailed))
}
