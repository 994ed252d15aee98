package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaslessrelay/relaysdk/sdk/units"
)

func (c *CLI) convertCmd() *cobra.Command {
	var toLamports, toSOL bool

	cmd := &cobra.Command{
		Use:   "convert <amount>",
		Short: "Convert between SOL and lamports",
		Example: `  relaycli convert --to-lamports 1.5
  relaycli convert --to-sol 1500000000`,
		Args: requireArgs(1, "relaycli convert --to-lamports|--to-sol <amount>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount := strings.TrimSpace(args[0])
			if toLamports {
				lamports, err := units.ParseSOL(amount)
				if err != nil {
					return err
				}
				c.printf("%d\n", lamports)
				return nil
			}

			lamports, err := strconv.ParseUint(amount, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid lamport amount %q", amount)
			}
			c.printf("%s\n", units.FormatLamports(lamports))
			return nil
		},
	}

	cmd.Flags().BoolVar(&toLamports, "to-lamports", false, "convert SOL to lamports")
	cmd.Flags().BoolVar(&toSOL, "to-sol", false, "convert lamports to SOL")
	cmd.MarkFlagsMutuallyExclusive("to-lamports", "to-sol")
	cmd.MarkFlagsOneRequired("to-lamports", "to-sol")
	return cmd
}
