package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/halotrubus/internal/cache"
	"github.com/halotrubus/internal/catalog"
	"github.com/halotrubus/internal/config"
	"github.com/halotrubus/internal/logger"
	"github.com/halotrubus/internal/models"

	"github.com/spf13/cobra"
)

var datasetFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "seed",
		Short:        "Load or inspect the HaloTrubus demo catalog and gate policies",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&datasetFile, "file", "f", "", "catalog YAML file (default: embedded dataset)")
	root.AddCommand(loadCmd(), inspectCmd(), policyCmd())
	return root
}

func loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Write the catalog into the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(datasetFile)
			if err != nil {
				return err
			}

			cfg, err := openDatabase()
			if err != nil {
				return err
			}
			if err := catalog.Seed(models.DB, ds); err != nil {
				return err
			}

			// 目录变化后让缓存失效
			if cfg.Redis.Enabled {
				if err := cache.InitRedis(&cfg.Redis); err != nil {
					logger.Warnw("seed_cache_init_failed", "error", err)
				} else {
					defer func() { _ = cache.Close() }()
					if err := cache.InvalidateCatalog(context.Background()); err != nil {
						logger.Warnw("seed_cache_invalidate_failed", "error", err)
					}
				}
			}
			printSummary(cmd.OutOrStdout(), ds)
			return nil
		},
	}
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Validate the catalog and print record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(datasetFile)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), ds)
			return nil
		},
	}
}

// openDatabase 读取配置并连接、迁移数据库
func openDatabase() (*config.Config, error) {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := models.AutoMigrate(nil); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return cfg, nil
}

func loadDataset(path string) (*catalog.Dataset, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return catalog.Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return catalog.Parse(raw)
}

func printSummary(w io.Writer, ds *catalog.Dataset) {
	summary := ds.Summary()
	for _, key := range catalog.SummaryKeys(summary) {
		fmt.Fprintf(w, "%-12s %d\n", key, summary[key])
	}
}
