// Package cli wires the aggregator's commands: a long-running HTTP server
// and a one-shot scrape for ad-hoc inspection.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"padeltime/internal/availability"
	"padeltime/internal/cache"
	"padeltime/internal/config"
	"padeltime/internal/logger"
	"padeltime/internal/registry"
	"padeltime/internal/server"
	"padeltime/internal/venue"
)

var (
	flagCity    string
	flagDate    string
	flagDays    int
	flagJSON    bool
	flagNoCache bool
)

// NewRootCmd creates the root command with the serve and scrape subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "padeltime",
		Short:         "Aggregate padel court availability from venue booking sites",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCmd(), newScrapeCmd())
	return cmd
}

// newRegistry builds the registry with the configured cache backend and
// every known venue registered.
func newRegistry(cfg config.Config) (*registry.Registry, error) {
	var store cache.Store
	switch cfg.CacheBackend {
	case "redis":
		store = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
	default:
		store = cache.NewMemory(cfg.CacheTTL)
	}

	reg := registry.New(store)
	for _, build := range venue.All() {
		if err := reg.Register(build); err != nil {
			return nil, fmt.Errorf("registering venues: %w", err)
		}
	}
	return reg, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the availability HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.SetDefault(logger.New(logger.Level(strings.ToUpper(cfg.LogLevel)), os.Stdout))

			reg, err := newRegistry(cfg)
			if err != nil {
				return err
			}

			httpServer := &http.Server{
				Addr:    cfg.ListenAddr,
				Handler: server.New(reg).Routes(),
			}

			errCh := make(chan error, 1)
			go func() { errCh <- httpServer.ListenAndServe() }()
			logger.Info("listening", logger.Fields{
				"addr":      cfg.ListenAddr,
				"cache":     cfg.CacheBackend,
				"cache_ttl": cfg.CacheTTL.String(),
			})

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			select {
			case sig := <-sigCh:
				logger.Info("shutting down", logger.Fields{"signal": sig.String()})
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return httpServer.Shutdown(ctx)
			case err := <-errCh:
				return err
			}
		},
	}
}

func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape venues once and print the results",
		RunE:  runScrape,
	}
	cmd.Flags().StringVar(&flagCity, "city", string(availability.Klaipeda), "City to scrape")
	cmd.Flags().StringVar(&flagDate, "date", "", "Start date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&flagDays, "days", 1, "Number of days starting at --date")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "Print JSON instead of text")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the result cache")
	return cmd
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	city := availability.City(strings.ToLower(flagCity))
	if !city.Valid() {
		return fmt.Errorf("unknown city: %s", flagCity)
	}

	date := time.Now()
	if flagDate != "" {
		date, err = time.Parse("2006-01-02", flagDate)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
	}
	if flagDays < 1 {
		return fmt.Errorf("--days must be at least 1")
	}

	reg, err := newRegistry(cfg)
	if err != nil {
		return err
	}

	byDate := reg.ScrapeDateRange(cmd.Context(), date, flagDays, city, !flagNoCache)
	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(byDate)
	}

	days := make([]string, 0, len(byDate))
	for d := range byDate {
		days = append(days, d)
	}
	sort.Strings(days)
	for _, d := range days {
		fmt.Printf("%s\n", d)
		for _, v := range byDate[d] {
			if v.Err != "" {
				fmt.Printf("  %-20s error: %s\n", v.VenueName, v.Err)
				continue
			}
			fmt.Printf("  %-20s %d slots\n", v.VenueName, v.AvailableCount())
		}
	}
	return nil
}
