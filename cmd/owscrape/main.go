// Command owscrape resolves a battletag to its region and profile page.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/owapi/owscrape/internal/cache"
	"github.com/owapi/owscrape/internal/config"
	"github.com/owapi/owscrape/internal/fetcher"
	"github.com/owapi/owscrape/internal/logger"
	"github.com/owapi/owscrape/internal/resolver"
	"github.com/owapi/owscrape/internal/scraper"
)

var (
	flagConfig  string
	flagRegion  string
	flagExtra   string
	flagFormat  string
	flagVerbose bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owscrape",
		Short: "Fetch and reconcile player statistics pages",
		Long: `owscrape resolves a battletag across server regions, asking the
stats site to recompute the player's data before fetching the profile page.`,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to TOML config file")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(newResolveCmd())

	return cmd
}

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <battletag>",
		Short: "Find the region holding a player's profile",
		Args:  cobra.ExactArgs(1),
		RunE:  runResolve,
	}

	cmd.Flags().StringVar(&flagRegion, "region", "", "Only try this region (eu, us, or kr)")
	cmd.Flags().StringVar(&flagExtra, "extra", "", "Suffix appended to the profile URL")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")

	return cmd
}

func loadConfig() (config.Config, error) {
	if flagConfig == "" {
		return config.Default(), nil
	}
	return config.Load(flagConfig)
}

func newStore(cfg config.Config) cache.Store {
	if cfg.Cache.Backend == config.BackendRedis {
		return cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			UseTLS:   cfg.Cache.Redis.UseTLS,
		})
	}
	return cache.NewMemory()
}

func runResolve(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	if flagFormat != "text" && flagFormat != "json" {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := newStore(cfg)
	client := &http.Client{Timeout: cfg.HTTPTimeout()}
	fetch := fetcher.NewWithClient(store, client, cfg.HTTP.UserAgent)

	pool := scraper.NewPool(cfg.Scrape.ParseWorkers)
	defer pool.Close()

	loader := scraper.NewLoader(fetch, pool)
	r := resolver.New(loader, fetch, cfg.Endpoints(), cfg.CacheTTL())

	start := time.Now()
	res, err := r.Resolve(cmd.Context(), args[0], flagRegion, flagExtra)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}

	if mem, ok := store.(*cache.Memory); ok {
		logger.SetGauge("cache.entries", float64(mem.Len()))
	}

	if flagFormat == "json" {
		out := map[string]interface{}{
			"battletag":  args[0],
			"found":      res.Found(),
			"region":     res.Region,
			"elapsed_ms": time.Since(start).Milliseconds(),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	switch {
	case res.Found():
		fmt.Printf("%s found in region %s\n", args[0], res.Region)
	case res.Region != "":
		fmt.Printf("%s is in region %s but the profile page was unavailable\n", args[0], res.Region)
	default:
		fmt.Printf("%s was not found in any region\n", args[0])
	}

	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
