package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"smartlists/internal/config"
	"smartlists/internal/refresh"
)

func newSourcesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sources [url]",
		Short: "Show registered list sources and their routing",
		Long: `Without arguments, list every registered source adapter in routing
order. With a URL argument, report which source would fetch it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			providers := refresh.Providers(cfg)
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				listURL := strings.TrimSpace(args[0])
				for _, provider := range providers {
					if provider.CanHandle(listURL) {
						fmt.Fprintf(out, "%s is handled by %s\n", listURL, provider.Name())
						return nil
					}
				}
				return fmt.Errorf("no registered source recognizes %s", listURL)
			}

			headers := []string{"Source", "Handles", "Credential"}
			rows := make([][]string, 0, len(providers))
			for _, provider := range providers {
				rows = append(rows, []string{
					provider.Name(),
					sourceDomains(provider.Name()),
					credentialStatus(cfg, provider.Name()),
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows, nil))
			fmt.Fprintln(out, "URLs are offered to sources in the order above; the first match wins.")
			return nil
		},
	}
}

func sourceDomains(name string) string {
	switch name {
	case "mdblist":
		return "mdblist.com"
	case "imdb":
		return "imdb.com lists and charts"
	case "tmdb":
		return "themoviedb.org"
	case "trakt":
		return "trakt.tv"
	default:
		return ""
	}
}

func credentialStatus(cfg *config.Config, name string) string {
	switch name {
	case "mdblist":
		return credentialState(cfg.MDBList.APIKey)
	case "tmdb":
		return credentialState(cfg.TMDB.APIKey)
	case "trakt":
		return credentialState(cfg.Trakt.ClientID)
	default:
		return "not required"
	}
}

func credentialState(value string) string {
	if strings.TrimSpace(value) == "" {
		return "missing"
	}
	return "configured"
}
