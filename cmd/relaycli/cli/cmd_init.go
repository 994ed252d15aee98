package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaslessrelay/relaysdk/sdk/config"
)

func (c *CLI) initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigPath()
			if c.cfgFile != "" {
				path = processConfigPath(c.cfgFile)
			}
			if fileExists(path) && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}

			cfg := config.DefaultConfig()
			var err error
			if cfg.Relayer.BaseURL, err = c.prompt.Input("Relayer URL:", cfg.Relayer.BaseURL); err != nil {
				return err
			}
			if cfg.Identity.TokenURL, err = c.prompt.Input("Identity provider token URL:", ""); err != nil {
				return err
			}
			if cfg.Identity.ClientID, err = c.prompt.Input("Client ID:", ""); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := config.Save(cfg, path); err != nil {
				return err
			}
			c.printf("Configuration written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
