package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaslessrelay/relaysdk/sdk/gasless"
)

var errNotLoggedIn = errors.New("not logged in, run 'relaycli login' first")

// RootCmd assembles the command tree.
func (c *CLI) RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "relaycli",
		Short: "Gasless transfers through a custodial relayer",
		Long: `relaycli signs in with the identity provider and asks the relayer to
send SOL from your custodial wallet. The relayer pays the network fees.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default ~/.relaysdk/config.yml)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		c.initCmd(),
		c.loginCmd(),
		c.logoutCmd(),
		c.addressCmd(),
		c.sendCmd(),
		c.historyCmd(),
		c.convertCmd(),
	)
	return root
}

// Execute runs the command tree against os.Args.
func (c *CLI) Execute() error {
	return c.execute(c.RootCmd())
}

// execute runs root and closes the client whether or not the command failed.
func (c *CLI) execute(root *cobra.Command) error {
	defer c.close()
	return root.Execute()
}

func mapAuthError(err error) error {
	if errors.Is(err, gasless.ErrNotAuthenticated) {
		return errNotLoggedIn
	}
	return err
}

func requireArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("usage: %s", usage)
		}
		return nil
	}
}
