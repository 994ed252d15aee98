package cli

import (
	"github.com/spf13/cobra"
)

func (c *CLI) loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with the identity provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.clientInit(); err != nil {
				return err
			}

			var err error
			if username == "" {
				if username, err = c.prompt.Input("Username:", ""); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = c.prompt.Password("Password:"); err != nil {
					return err
				}
			}

			ctx := commandContext(cmd.Context(), "login")
			if err := c.client.Login(ctx, username, password); err != nil {
				return err
			}
			c.printf("Logged in as %s\n", username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username (prompted when empty)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when empty)")
	return cmd
}

func (c *CLI) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.clientInit(); err != nil {
				return err
			}
			if err := c.client.Logout(commandContext(cmd.Context(), "logout")); err != nil {
				return err
			}
			c.printf("Logged out\n")
			return nil
		},
	}
}
