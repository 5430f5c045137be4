package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) healthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the search endpoint once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			client, err := a.newClient(cfg)
			if err != nil {
				return err
			}

			h, err := client.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s is offline: %w", client.Endpoint(), err)
			}
			a.printf("endpoint: %s\n", client.Endpoint())
			a.printf("status:   %s\n", h.Status)
			if h.Site != "" {
				a.printf("site:     %s\n", h.Site)
			}
			if h.Mirror != "" {
				a.printf("mirror:   %s\n", h.Mirror)
			}
			return nil
		},
	}
}
