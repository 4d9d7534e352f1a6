package cli

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"crowdfund/internal/db"
)

func (a *app) seedCommand() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo campaigns into the configured storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, closeRepo, err := a.openRepository(cmd.Context())
			if err != nil {
				return err
			}
			defer closeRepo()

			r := rand.New(rand.NewSource(time.Now().UnixNano()))
			created, err := db.Seed(cmd.Context(), a.newUseCase(repo, nil), count, r)
			if err != nil {
				return err
			}
			for _, addr := range created {
				fmt.Fprintln(cmd.OutOrStdout(), addr.Hex())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 5, "Number of campaigns to create")
	return cmd
}
