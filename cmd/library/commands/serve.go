package commands

import (
	"github.com/spf13/cobra"

	"github.com/Astemirdum/library-ledger/library/app"
	"github.com/Astemirdum/library-ledger/library/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Apply pending migrations and serve the REST API until SIGINT or SIGTERM.

Ledger events are published to Kafka and return requests consumed from it
when KAFKA_ADDRS is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	ops, err := options()
	if err != nil {
		return err
	}
	return app.Run(cmd.Context(), config.NewConfig(ops...))
}
