// Package cli wires configuration, storage and the HTTP adapter into the
// crowdfund command tree.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"crowdfund/internal/config"
	"crowdfund/internal/logging"
)

// app carries what every subcommand needs once the root command has loaded
// configuration.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

// NewRootCommand builds the command tree. Configuration is read from the
// environment before any subcommand runs.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "crowdfund",
		Short: "Crowdfunding ledger with manager-proposed, contributor-approved spending",
		Long: `crowdfund runs campaigns where contributors pool funds and approve
spending requests proposed by the campaign manager. Configuration comes from
environment variables (HTTP_*, LOG_*, STORAGE_*, PSQL_*, SQLITE_*, AUTH_*,
FACTORY_*).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.New(cmd.ErrOrStderr(), cfg.Log)
			return nil
		},
	}

	root.AddGroup(
		&cobra.Group{ID: "main", Title: "Main Commands"},
		&cobra.Group{ID: "management", Title: "Management Commands"},
	)
	for _, c := range []*cobra.Command{a.serveCommand(), a.campaignsCommand()} {
		c.GroupID = "main"
		root.AddCommand(c)
	}
	for _, c := range []*cobra.Command{a.migrateCommand(), a.seedCommand(), a.tokenCommand()} {
		c.GroupID = "management"
		root.AddCommand(c)
	}
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
