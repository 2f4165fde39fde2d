package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/Astemirdum/library-ledger/library/config"
)

var (
	envFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "library",
	Short: "Library borrowing service",
	Long: `Library borrowing service: book catalog, borrowings ledger and user accounts
behind a JWT protected REST API.

Running the binary without a subcommand starts the API server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnv(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "debug", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// loadEnv reads the dotenv file. A missing default file is not an error.
func loadEnv(cmd *cobra.Command) error {
	if err := godotenv.Load(envFile); err != nil {
		if !cmd.Flags().Changed("env-file") && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Wrap(err, "load envs from "+envFile)
	}
	return nil
}

func options() ([]config.Option, error) {
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return nil, errors.Wrap(err, "log-level")
	}
	return []config.Option{
		config.WithLogLevel(level),
		config.WithWriteTimeout(time.Minute),
	}, nil
}
