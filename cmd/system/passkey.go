package system

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/carepulse_backend/pkg/util/passkey"
)

func NewHashPasskeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-passkey",
		Short: "Print the Argon2id hash of an admin passkey read from stdin",
		Long: `Read the admin passkey from stdin and print its Argon2id hash. The
output can be used as authentication.admin.passkey so the config file does
not carry the passkey itself.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("failed to read passkey: %w", err)
			}

			hash, err := passkey.Hash(strings.TrimSpace(line))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	return cmd
}
