package cli

import (
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaslessrelay/relaysdk/sdk/units"
)

func (c *CLI) historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List your past transfers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.clientInit(); err != nil {
				return err
			}

			records, err := c.client.GetTransferHistory(commandContext(cmd.Context(), "history"))
			if err != nil {
				return mapAuthError(err)
			}
			if len(records) == 0 {
				c.printf("No transfers\n")
				return nil
			}

			w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			_, _ = w.Write([]byte("TIME\tAMOUNT (SOL)\tRECIPIENT\tSIGNATURE\n"))
			for _, r := range records {
				ts := "-"
				if !r.Timestamp.IsZero() {
					ts = r.Timestamp.UTC().Format(time.RFC3339)
				}
				_, _ = w.Write([]byte(ts + "\t" + units.FormatLamports(r.Amount) + "\t" + r.Recipient + "\t" + r.Signature + "\n"))
			}
			return w.Flush()
		},
	}
}
