package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered progress monitors",
		Long:  "Prints every registry key, marking the one the default resolves to with an asterisk.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, key := range appInstance.Registry().Keys() {
				marker := " "
				if key == appInstance.DefaultKey() {
					marker = "*"
				}
				cfg, err := appInstance.Registry().Lookup(key)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(out, "%s %-18s %s\n", marker, key, cfg.Name()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
