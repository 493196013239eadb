package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/questgraph/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the quest graph and progress over HTTP",
		Long: `Start the HTTP API.

Endpoints:
  GET    /healthz
  GET    /quests[?kappa=true]       GET /quests/{id}
  GET    /progress                  PUT|DELETE /progress/{id}
  POST   /progress/{id}/toggle
  GET    /layout[.json|.svg|.dot|.png][?kappa=true&hide_completed=true]

The server shuts down gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			srv := server.New(server.Options{
				Runner:     runner,
				Store:      store,
				QuestsPath: c.cfg.Quests,
				Layout:     c.cfg.Layout,
				Logger:     c.Logger,
			})
			c.Logger.Info("listening", "addr", addr, "quests", c.cfg.Quests, "progress", c.cfg.Progress.Backend)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
