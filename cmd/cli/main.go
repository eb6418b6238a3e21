package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/databricks/databricks-sql-go"
	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/services/analytics"
	"github.com/de-tools/cost-lens/pkg/services/config"
	syncsvc "github.com/de-tools/cost-lens/pkg/services/sync"
	"github.com/de-tools/cost-lens/pkg/store/databrickssql/pricing"
	remoteusage "github.com/de-tools/cost-lens/pkg/store/databrickssql/usage"
	"github.com/de-tools/cost-lens/pkg/store/duckdb"
	duckdbcatalog "github.com/de-tools/cost-lens/pkg/store/duckdb/catalog"
	"github.com/de-tools/cost-lens/pkg/store/duckdb/snapshot"
	duckdbtag "github.com/de-tools/cost-lens/pkg/store/duckdb/tag"
	duckdbusage "github.com/de-tools/cost-lens/pkg/store/duckdb/usage"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var dbPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "cost-lens",
		Short: "Cost analytics over compute billing usage",
	}
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "cost-lens.db",
		"Path to the local DuckDB database file")

	rootCmd.AddCommand(newReportCmd(), newSyncCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newReportCmd() *cobra.Command {
	var timeRange string
	var limit int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a spend summary and top contributors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
			ctx := logger.WithContext(cmd.Context())

			costs, err := openCostManager()
			if err != nil {
				return err
			}

			tr, err := domain.ParseTimeRange(timeRange)
			if err != nil {
				return err
			}
			filter := domain.CostFilter{TimeRange: tr}

			summary, err := costs.GetCostSummary(ctx, filter)
			if err != nil {
				return err
			}
			contributors, err := costs.GetTopContributors(ctx, filter, domain.GroupByApp, limit)
			if err != nil {
				return err
			}

			fmt.Printf("Period: %s - %s\n",
				summary.PeriodStart.Format("2006-01-02"),
				summary.PeriodEnd.Format("2006-01-02"))
			fmt.Printf("Total spend:      %10.2f\n", summary.TotalSpend)
			fmt.Printf("Forecasted spend: %10.2f\n", summary.ForecastedSpend)
			fmt.Printf("Average daily:    %10.2f\n", summary.AverageSpend)
			fmt.Println("\nTop contributors:")
			for _, c := range contributors {
				fmt.Printf("  %-40s %10.2f  %5.1f%%\n", c.Name, c.Spend, c.Percentage)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&timeRange, "time_range", "ytd", "Named time range (day/week/month/quarter/year/ytd)")
	cmd.Flags().IntVar(&limit, "limit", 5, "Number of top contributors to show")
	return cmd
}

func newSyncCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull billing usage from a Databricks workspace into the local store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
			ctx := logger.WithContext(cmd.Context())

			cfg, err := syncsvc.LoadConfig(cfgPath)
			if err != nil {
				return err
			}

			registry, err := config.NewRegistry(cfg.ProfilePath)
			if err != nil {
				return fmt.Errorf("failed to create config registry: %w", err)
			}
			profile, err := registry.GetProfile(ctx, cfg.Profile)
			if err != nil {
				return err
			}

			remoteDB, err := sql.Open("databricks", profileDSN(profile))
			if err != nil {
				return fmt.Errorf("failed to connect to Databricks: %w", err)
			}
			defer remoteDB.Close()

			localDB, err := duckdb.NewDB(duckdb.Settings{DbPath: dbPath})
			if err != nil {
				return fmt.Errorf("failed to create DuckDB instance: %w", err)
			}
			defer localDB.Close()

			localStore, err := duckdbusage.NewStore(localDB)
			if err != nil {
				return err
			}
			remoteStore := remoteusage.NewStore(remoteDB, pricing.NewStore(remoteDB))

			syncer := syncsvc.NewSyncer(remoteStore, localStore, cfg.WindowDays, time.Now)
			count, err := syncer.Run(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Synced %d usage records\n", count)
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "sync.yaml", "Path to the sync config file")
	return cmd
}

func openCostManager() (analytics.CostManager, error) {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: dbPath})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	usageStore, err := duckdbusage.NewStore(db)
	if err != nil {
		return nil, err
	}
	catalogStore, err := duckdbcatalog.NewStore(db)
	if err != nil {
		return nil, err
	}
	tagStore, err := duckdbtag.NewStore(db)
	if err != nil {
		return nil, err
	}

	snapshots := snapshot.NewStore(usageStore, catalogStore, tagStore)
	return analytics.NewCostManager(snapshots, nil), nil
}

func profileDSN(p *config.Profile) string {
	return fmt.Sprintf("token:%s@%s%s", p.Token, p.Host, p.HTTPPath)
}
