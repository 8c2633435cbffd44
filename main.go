package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	pgadapter "github.com/second-order-ai/singapore-postcode-geocoding/adapters/postgres"
	"github.com/second-order-ai/singapore-postcode-geocoding/adapters/tabular"
	"github.com/second-order-ai/singapore-postcode-geocoding/domain/postcode"
	"github.com/second-order-ai/singapore-postcode-geocoding/internal/config"
	"github.com/second-order-ai/singapore-postcode-geocoding/internal/errors"
	"github.com/second-order-ai/singapore-postcode-geocoding/ports"
	"github.com/second-order-ai/singapore-postcode-geocoding/ui"
)

func main() {
	// Load environment variables from .env file (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	refs, err := loadReferenceSet(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to load reference postcodes: %v", err)
	}
	log.Printf("Loaded %d master postcodes", len(refs))

	app := ui.NewApp(cfg, refs)
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: app.Handler(),
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Printf("Postcode API listening on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// loadReferenceSet picks the reference source: Postgres when a database URL
// is configured, otherwise the master postcode file.
func loadReferenceSet(ctx context.Context, cfg *config.Config) (postcode.ReferenceSet, error) {
	var source ports.ReferenceSource
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			return nil, errors.Wrap(err, "failed to connect to database")
		}
		source = pgadapter.NewReferenceRepository(db, cfg.Reference.TableName)
	} else {
		source = tabular.NewReferenceFileSource(cfg.Reference.FilePath)
	}

	refs, err := source.LoadReferenceSet(ctx)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, errors.ReferenceEmpty("reference source returned no postcodes")
	}
	return refs, nil
}
