// Command joblistings normalises job-posting exports and loads them into a
// SQLite or PostgreSQL database.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/joblistings/internal/adapters/driven/config/file"
	"github.com/custodia-labs/joblistings/internal/adapters/driven/storage"
	"github.com/custodia-labs/joblistings/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/joblistings/internal/adapters/driving/cli"
	"github.com/custodia-labs/joblistings/internal/core/ports/driven"
	"github.com/custodia-labs/joblistings/internal/core/services"
	"github.com/custodia-labs/joblistings/internal/normalisers/jobposting"
	"github.com/custodia-labs/joblistings/internal/normalisers/location"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	cli.SetVersion(version)
	cli.SetDefaultDatabase(os.Getenv("JOBLISTINGS_DATABASE"))
	cli.Configure(openConfig, buildServices)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func openConfig(path string) (driven.ConfigStore, error) {
	return file.NewConfigStore(path)
}

func buildServices(settings cli.Settings) (*cli.Services, error) {
	resolver := location.NewResolver(location.Options{LegacyUSATrim: settings.LegacyUSATrim})
	normaliser := jobposting.New(resolver)

	var open driven.JobStoreOpener = storage.Open
	if settings.DryRun {
		dbs := memory.NewDatabases()
		open = func(ctx context.Context, dsn string) (driven.JobStore, error) {
			store := dbs.Store(dsn)
			return store, store.EnsureSchema(ctx)
		}
	}

	ingest := services.NewIngestService(normaliser)
	audit := services.NewAuditService()
	loader := services.NewLoaderService(open)

	return &cli.Services{
		Ingest:   ingest,
		Audit:    audit,
		Loader:   loader,
		Pipeline: services.NewPipelineService(ingest, audit, loader),
	}, nil
}
