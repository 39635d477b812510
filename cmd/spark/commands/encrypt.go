package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"spark/internal/domain"
)

// encrypt --to <key.jwk> <message>: seal a message for a peer.
func (c *cli) encryptCmd() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "encrypt --to <key.jwk|-> <message>",
		Short: "Encrypt a message for a peer's public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := readInput(cmd, to)
			if err != nil {
				return err
			}
			recipient := domain.SerializedPublicKey(strings.TrimSpace(string(key)))
			env, err := c.wire.Messages.Seal(cmd.Context(), args[0], recipient)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(env, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "recipient public key file, or - for stdin")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
