package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"crowdfund/internal/core/domain"
)

func (a *app) campaignsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "campaigns",
		Aliases: []string{"ls"},
		Short:   "List deployed campaigns",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, closeRepo, err := a.openRepository(cmd.Context())
			if err != nil {
				return err
			}
			defer closeRepo()

			svc := a.newUseCase(repo, nil)
			deployed, err := svc.DeployedCampaigns(cmd.Context())
			if err != nil {
				return err
			}
			summaries := make([]*domain.Summary, 0, len(deployed))
			for _, addr := range deployed {
				s, err := svc.Summary(cmd.Context(), addr)
				if err != nil {
					return err
				}
				summaries = append(summaries, s)
			}
			return renderCampaigns(cmd.OutOrStdout(), summaries)
		},
	}
}

func renderCampaigns(w io.Writer, summaries []*domain.Summary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No campaigns deployed.")
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Address", "Manager", "Minimum", "Balance", "Requests", "Approvers"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	for i, s := range summaries {
		t.AppendRow(table.Row{
			i,
			s.Address.Hex(),
			s.Manager.Hex(),
			s.MinimumContribution.String(),
			s.Balance.String(),
			s.RequestsCount,
			s.ApproversCount,
		})
	}
	t.Render()
	return nil
}
