package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bleathingman/iron-system/internal/config"
	"github.com/bleathingman/iron-system/internal/logging"
	"github.com/bleathingman/iron-system/internal/ui"
)

const Version = "0.1.0"

// annotationIgnoreConfig marks commands that must run even when the config
// file does not load.
const annotationIgnoreConfig = "iron/ignore-config"

var (
	configPath string
	dbPath     string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "iron",
	Short:         "Iron System: level up by doing your daily objectives",
	Long:          "Iron System is a local habit tracker with XP, levels, streaks, a rotating daily pool and achievements.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			if _, ok := cmd.Annotations[annotationIgnoreConfig]; !ok {
				return err
			}
			cfg = config.DefaultConfig()
		}
		if dbPath != "" {
			cfg.Database.Path = dbPath
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.Logging.Development)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(
		newStatusCmd(),
		newListCmd(),
		newDailyCmd(),
		newDoCmd(),
		newAchievementsCmd(),
		newBoardCmd(),
		newConfigCmd(),
	)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
