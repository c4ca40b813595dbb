package main

import (
	"fmt"
	"os"

	"cemetery/internal/config"
	"cemetery/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "cemetery",
	Short: "Burial records search service",
	Long: `Natural-language search over cemetery burial records.

  cemetery serve
  cemetery parse "Maria Santos who died in 1990"
  cemetery build-query "my grandmother born 1921"
`,
	SilenceUsage: true,
	Version:      fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
}

func init() {
	rootCmd.AddCommand(serveCmd, parseCmd, buildQueryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the process logger
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, logger.New(cfg.Logging.Level, cfg.Logging.Format), nil
}
