package main

import (
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/de-tools/cost-lens/pkg/server"
	"github.com/de-tools/cost-lens/pkg/services/analytics"
	catalogsvc "github.com/de-tools/cost-lens/pkg/services/catalog"
	tagssvc "github.com/de-tools/cost-lens/pkg/services/tags"
	"github.com/de-tools/cost-lens/pkg/store/duckdb"
	duckdbcatalog "github.com/de-tools/cost-lens/pkg/store/duckdb/catalog"
	"github.com/de-tools/cost-lens/pkg/store/duckdb/snapshot"
	duckdbtag "github.com/de-tools/cost-lens/pkg/store/duckdb/tag"
	duckdbusage "github.com/de-tools/cost-lens/pkg/store/duckdb/usage"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var dbPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Cost Lens web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&dbPath, "db", "d", "cost-lens.db",
		"Path to the local DuckDB database file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: dbPath})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	usageStore, err := duckdbusage.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create usage store: %w", err)
	}
	catalogStore, err := duckdbcatalog.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create catalog store: %w", err)
	}
	tagStore, err := duckdbtag.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create tag store: %w", err)
	}

	snapshots := snapshot.NewStore(usageStore, catalogStore, tagStore)

	mux := server.ConfigureRouter(server.Config{
		Dependencies: server.Dependencies{
			Costs:   analytics.NewCostManager(snapshots, nil),
			Tags:    tagssvc.NewService(tagStore),
			Catalog: catalogsvc.NewService(catalogStore),
			Logger:  logger,
		},
	})

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	addr := net.JoinHostPort(host, port)
	logger.Info().Msgf("starting server on %s", addr)

	return http.ListenAndServe(addr, mux)
}
