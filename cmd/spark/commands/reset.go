package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) resetCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the local identity",
		Long: "Delete both identity records. Messages already sent to the old " +
			"public key can no longer be decrypted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return errors.New("refusing to delete the identity without --force")
			}
			if err := c.wire.Store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), warnText.Sprint("Identity deleted."))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "confirm deletion")
	return cmd
}
