package system

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/carepulse_backend/pkg/crypto"
	pasetotoken "github.com/Alijeyrad/carepulse_backend/pkg/paseto"
)

func NewGenKeysCommand() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "gen-keys",
		Short: "Generate token and patient-data encryption keys",
		Long: `Print fresh keys for the authentication section of config.yaml: the
PASETO key material for admin tokens and the AES key that seals patient
identifiers. Rotating encryption_key makes previously stored identifiers
unreadable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := pasetotoken.ParseMode(mode)
			if err != nil {
				return err
			}
			enc, err := crypto.GenerateKeyHex()
			if err != nil {
				return err
			}

			ks := pasetotoken.GenerateKeys(m).Export()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "authentication:\n  encryption_key: %s\n  paseto:\n    mode: %s\n", enc, ks.Mode)
			if ks.SymmetricHex != "" {
				fmt.Fprintf(out, "    local_key_hex: %s\n", ks.SymmetricHex)
			}
			if ks.SecretHex != "" {
				fmt.Fprintf(out, "    secret_key_hex: %s\n    public_key_hex: %s\n", ks.SecretHex, ks.PublicHex)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(pasetotoken.ModeLocal), "token mode: local or public")
	return cmd
}
