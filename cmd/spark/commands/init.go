package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"spark/internal/crypto"
)

func (c *cli) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the local identity, or load the existing one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := c.wire.Identity.ObtainIdentity(cmd.Context())
			if err != nil {
				return err
			}
			fp, err := crypto.Fingerprint(pair.Public)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, okText.Sprint("Identity ready."))
			fmt.Fprintf(out, "%s %s\n", labelText.Sprint("Fingerprint:"), fp)
			return nil
		},
	}
}
