package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/unsc-scraper/internal/backends"
	"github.com/jonathan/unsc-scraper/internal/observability"
)

var backendsCommand = &cobra.Command{
	Use:   "backends",
	Short: "List the available document backends",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		observability.NewPrinter(os.Stdout).PrintBackends(backendInfos(backends.DefaultRegistry(nil)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backendsCommand)
}

func backendInfos(registry *backends.Registry) []observability.BackendInfo {
	names := registry.Names()
	infos := make([]observability.BackendInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, observability.BackendInfo{
			Name:        name,
			Description: registry.Describe(name),
			Default:     name == backends.NameGoquery,
		})
	}
	return infos
}
