package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"crowdfund/internal/auth"
	"crowdfund/internal/core/domain"
)

func (a *app) tokenCommand() *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for an identity",
		Long: `Mint a bearer token signed with AUTH_SECRET. The token identifies the
caller to mutating API calls:

  curl -H "Authorization: Bearer $(crowdfund token --address 0x...)" ...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity, err := domain.ParseAddress(address)
			if err != nil {
				return err
			}
			token, err := auth.NewTokenManager(a.cfg.Auth.Secret, a.cfg.Auth.TokenTTL).Generate(identity)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVarP(&address, "address", "a", "", "Hex address of the identity")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}
