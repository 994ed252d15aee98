package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) addressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Show your custodial wallet address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.clientInit(); err != nil {
				return err
			}

			addr, err := c.client.GetWalletAddress(commandContext(cmd.Context(), "address"))
			if err != nil {
				return mapAuthError(err)
			}
			if addr == "" {
				return fmt.Errorf("wallet address unavailable, see logs for details")
			}
			c.printf("%s\n", addr)
			return nil
		},
	}
}
