package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/paddock-data/lapdelta/internal/api"
	"github.com/paddock-data/lapdelta/internal/session"
	"github.com/paddock-data/lapdelta/internal/units"
	"github.com/paddock-data/lapdelta/internal/version"
)

var (
	listen        = flag.String("listen", ":8080", "Listen address")
	dbFile        = flag.String("db", "sessions.db", "Path to the session cache database")
	providerURL   = flag.String("provider", "http://localhost:9000", "Base URL of the session data provider")
	migrationsDir = flag.String("migrations", "migrations", "Path to the migrations directory")
	speedUnits    = flag.String("units", units.KPH, "Display units for speed (kph, mph, mps)")
	showVersion   = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("lapdelta %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		os.Exit(0)
	}
	if *listen == "" {
		log.Fatal("Listen address is required")
	}
	if !units.IsValid(*speedUnits) {
		log.Fatalf("unknown speed units %q", *speedUnits)
	}

	store, err := session.NewStore(*dbFile)
	if err != nil {
		log.Fatalf("Failed to open session cache: %v", err)
	}
	defer store.Close()

	if err := store.MigrateUp(*migrationsDir); err != nil {
		log.Fatalf("Failed to migrate session cache: %v", err)
	}

	provider := session.NewProvider(nil, *providerURL)
	repo := session.NewCachingRepository(store, provider)

	server := &http.Server{
		Addr:    *listen,
		Handler: api.NewServer(repo, *speedUnits).Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("lapdelta %s listening on %s (provider %s)", version.Version, *listen, *providerURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Printf("Graceful shutdown complete")
}
