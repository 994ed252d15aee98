package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaslessrelay/relaysdk/sdk/ledger"
	"github.com/gaslessrelay/relaysdk/sdk/units"
)

func (c *CLI) sendCmd() *cobra.Command {
	var (
		yes     bool
		cluster string
	)

	cmd := &cobra.Command{
		Use:   "send <recipient> <amount-SOL>",
		Short: "Send SOL to a recipient without paying fees",
		Args:  requireArgs(2, "relaycli send <recipient> <amount-SOL>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipient := args[0]
			lamports, err := units.ParseSOL(args[1])
			if err != nil {
				return err
			}

			if err := c.clientInit(); err != nil {
				return err
			}

			if !yes {
				ok, err := c.prompt.Confirm(fmt.Sprintf("Send %s SOL to %s?", units.FormatLamports(lamports), recipient), false)
				if err != nil {
					return err
				}
				if !ok {
					c.printf("Aborted\n")
					return nil
				}
			}

			res, err := c.client.SendTransfer(commandContext(cmd.Context(), "send"), recipient, lamports)
			if err != nil {
				return mapAuthError(err)
			}
			if !res.Success {
				return fmt.Errorf("transfer failed: %s", res.Error)
			}

			c.printf("Sent %s SOL to %s\n", units.FormatLamports(res.Amount), res.Recipient)
			c.printf("Signature: %s\n", res.Signature)
			if ledger.ValidateSignature(res.Signature) == nil {
				c.printf("Explorer:  %s\n", ledger.ExplorerURL(res.Signature, cluster))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().StringVar(&cluster, "cluster", ledger.ClusterMainnet, "cluster used for explorer links")
	return cmd
}
