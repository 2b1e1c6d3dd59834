package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vinotek/catalog-builder/internal/builder"
	"github.com/vinotek/catalog-builder/internal/config"
	"github.com/vinotek/catalog-builder/internal/logger"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run one catalog build pass",
	Long: `Run one catalog build pass: load the component sources named in the
configuration file, validate the assembled registry, and write the complete
document set to the output directory.

The build either produces the full document set or fails; it never leaves a
partially updated output directory behind.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")
	buildCmd.Flags().String("output", "", "Output directory (overrides the configuration file)")

	if err := viper.BindPFlag("config", buildCmd.Flags().Lookup("config")); err != nil {
		logger.Fatalf("Failed to bind config flag: %v", err)
	}
	if err := viper.BindPFlag("output", buildCmd.Flags().Lookup("output")); err != nil {
		logger.Fatalf("Failed to bind output flag: %v", err)
	}

	if err := buildCmd.MarkFlagRequired("config"); err != nil {
		logger.Fatalf("Failed to mark config flag as required: %v", err)
	}
}

func runBuild(cmd *cobra.Command, _ []string) error {
	// Errors are logged here; cobra's own error echo would duplicate them.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	configPath := viper.GetString("config")
	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		logger.Errorf("Failed to load configuration: %v", err)
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if outputDir := viper.GetString("output"); outputDir != "" {
		cfg.Output.Dir = outputDir
	}

	summary, err := builder.Run(cfg)
	if err != nil {
		logger.Errorf("Build failed: %v", err)
		return err
	}

	logger.Infof("Wrote %d documents to %s", summary.Documents, cfg.Output.Dir)
	return nil
}
