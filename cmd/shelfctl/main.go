package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sigreer/shelfctl/internal/config"
	"github.com/sigreer/shelfctl/internal/db"
	"github.com/sigreer/shelfctl/internal/logging"
	"github.com/sigreer/shelfctl/internal/service"
	"github.com/sigreer/shelfctl/internal/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "shelfctl",
	Short: "Storage enclosure management tool",
	Long: `shelfctl manages the storage enclosures attached to an appliance:
it decodes SES diagnostic pages into element trees, reconciles drive-slot
state against sysfs, and toggles drive-slot identify/fault indicators.`,
	Version: version.Version,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the shelfctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Version)
	},
}

// newService builds the production service from the config file. The
// returned closer releases the database.
func newService() (*service.Service, func(), error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading config: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing logger: %w", err)
	}

	store, err := db.New(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening database: %w", err)
	}

	svc := service.New(service.Options{
		Logger:        logger,
		Store:         store,
		EnclosureRoot: cfg.EnclosureRoot,
	})

	closer := func() {
		store.Close()
		_ = logger.Sync()
	}
	return svc, closer, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/shelfctl/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(labelCmd)
	rootCmd.AddCommand(slotCmd)
	rootCmd.AddCommand(syncCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
