// omim-converter builds a bidirectional identifier mapping between Monarch
// Initiative identifiers (diseases, genes, phenotypes) and OMIM catalog
// identifiers, persisting forward and reverse JSON lookup tables.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/ncmbianchi/omim-converter/config"
	"github.com/ncmbianchi/omim-converter/data"
	"github.com/ncmbianchi/omim-converter/interfaces"
	"github.com/ncmbianchi/omim-converter/logging"
	"github.com/ncmbianchi/omim-converter/mappingbuilder"
	"github.com/ncmbianchi/omim-converter/scheduler"
	"github.com/ncmbianchi/omim-converter/server"
	"github.com/spf13/cobra"
)

var (
	includeGenes      bool
	includePhenotypes bool
	reverseOnly       bool
	scheduleMode      bool
)

var rootCmd = &cobra.Command{
	Use:   "omim-converter",
	Short: "Build Monarch Initiative to OMIM identifier mappings",
	Long: `omim-converter harvests identifiers from the Monarch Initiative API,
resolves their OMIM cross-references, and writes bidirectional JSON lookup
tables (monarch-omim.json and omim-monarch.json) under the data directory.

By default only disease identifiers are processed, to save time.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().BoolVar(&includeGenes, "genes", false, "also harvest and map gene identifiers")
	rootCmd.Flags().BoolVar(&includePhenotypes, "phenotypes", false, "also harvest and map phenotype identifiers")
	rootCmd.Flags().BoolVar(&reverseOnly, "reverse", false, "only rebuild the reverse mapping from the existing forward mapping file")
	rootCmd.Flags().BoolVar(&scheduleMode, "schedule", false, "keep running and rebuild the mapping daily")
}

func run(cmd *cobra.Command, args []string) error {
	// A .env file is optional for a command-line run
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Init(cfg.LogDir)

	store := data.NewRunContainer()
	client := mappingbuilder.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, cfg.RequestDelay)
	pipeline := mappingbuilder.NewMappingPipeline(client, store, cfg.DataDir, cfg.PageLimit)

	// --reverse short-circuits every other mode and touches no network
	if reverseOnly {
		return pipeline.ReverseOnly()
	}

	opts := interfaces.RunOptions{
		IncludeGenes:      includeGenes,
		IncludePhenotypes: includePhenotypes,
	}

	if !scheduleMode {
		return pipeline.Run(opts)
	}

	return runScheduled(cfg, store, pipeline, opts)
}

// runScheduled keeps the process alive, rebuilding the mapping daily and
// serving the ops endpoints until a termination signal arrives.
func runScheduled(cfg *config.Config, store interfaces.RunStore, pipeline interfaces.Pipeline, opts interfaces.RunOptions) error {
	sched := scheduler.NewScheduler(store, pipeline, opts, cfg.ScheduleAt)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	ops := server.New(cfg, store)
	ops.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := ops.Shutdown(ctx); err != nil {
		logging.Error("Ops server forced to shutdown", "error", err)
	}

	logging.Info("Shutdown complete")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
