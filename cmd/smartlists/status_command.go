package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"smartlists/internal/config"
	"smartlists/internal/preflight"
	"smartlists/internal/rules"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check configuration, directories, and source reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)

			for _, line := range renderSectionHeader("Configuration", colorize) {
				fmt.Fprintln(stdout, line)
			}
			fmt.Fprintln(stdout, renderStatusLine("Config file", configFileKind(ctx), configFileDetail(ctx), colorize))
			fmt.Fprintln(stdout, renderStatusLine("Smart lists", statusOK, smartListDetail(cfg.SmartLists, rules.CollectURLs(cfg.SmartLists)), colorize))
			fmt.Fprintln(stdout, renderStatusLine("Journal", statusOK, journalDetail(cfg.Journal.Enabled, cfg.Journal.Path), colorize))

			fmt.Fprintln(stdout)
			for _, line := range renderSectionHeader("Source Checks", colorize) {
				fmt.Fprintln(stdout, line)
			}
			failures := 0
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				kind := preflightKind(result)
				if kind == statusError {
					failures++
				}
				fmt.Fprintln(stdout, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			if failures > 0 {
				return fmt.Errorf("%d status check(s) failed", failures)
			}
			return nil
		},
	}
}

func preflightKind(result preflight.Result) statusKind {
	switch {
	case result.Passed:
		return statusOK
	case strings.Contains(result.Detail, "not configured"):
		return statusWarn
	default:
		return statusError
	}
}

func configFileKind(ctx *commandContext) statusKind {
	if ctx.configExists {
		return statusOK
	}
	return statusWarn
}

func configFileDetail(ctx *commandContext) string {
	if ctx.configExists {
		return ctx.configPath
	}
	return fmt.Sprintf("%s (not found; defaults in use)", ctx.configPath)
}

func smartListDetail(smartLists []config.SmartList, urls []string) string {
	return fmt.Sprintf("%d configured referencing %d external URLs", len(smartLists), len(urls))
}

func journalDetail(enabled bool, path string) string {
	if !enabled {
		return "disabled"
	}
	return path
}
