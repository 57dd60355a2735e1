// Command visionpipe generates the deterministic synthetic-vision demo
// artifacts and serves the regeneration API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cooperage-labs/visionpipe/internal/api"
	"github.com/cooperage-labs/visionpipe/internal/config"
	"github.com/cooperage-labs/visionpipe/internal/db"
	"github.com/cooperage-labs/visionpipe/internal/version"
	"github.com/cooperage-labs/visionpipe/internal/vision"
)

var (
	listen       = flag.String("listen", ":8080", "Listen address")
	outputDir    = flag.String("output", "output", "Directory to store generated artifacts")
	dbFile       = flag.String("db", "visionpipe.db", "Path to the run-history database")
	size         = flag.Int("size", 0, "Scene size to generate at startup (default from config)")
	paramsFile   = flag.String("params", "", "Optional JSON tuning file overriding the stock parameters")
	generateOnly = flag.Bool("generate-only", false, "Generate the outputs and exit without serving")
)

func main() {
	flag.Parse()

	if *listen == "" && !*generateOnly {
		log.Fatal("Listen address is required")
	}

	params := vision.DefaultParams()
	startSize := vision.DefaultSize
	if *paramsFile != "" {
		cfg, err := config.LoadTuningConfig(*paramsFile)
		if err != nil {
			log.Fatalf("failed to load tuning config: %v", err)
		}
		params = cfg.Params()
		startSize = cfg.Size()
	}
	if *size != 0 {
		startSize = *size
	}
	if err := vision.ValidateSize(startSize); err != nil {
		log.Fatalf("invalid startup size: %v", err)
	}

	database, err := db.Open(*dbFile)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	server := api.NewServer(database, *outputDir, params, startSize)

	// Generate once before serving so the artifact directory is never
	// empty when the first request arrives.
	summary, err := server.Regenerate(startSize)
	if err != nil {
		log.Fatalf("initial generation failed: %v", err)
	}
	log.Printf("generated %dpx artifacts in %s (at %s, version %s)",
		startSize, *outputDir, summary.GeneratedAt, version.Version)

	if *generateOnly {
		fmt.Printf("Generated demo assets in %s at %dpx; start without -generate-only to serve them.\n",
			*outputDir, startSize)
		return
	}

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wg.Add(1)
	go func() {
		defer wg.Done()

		httpServer := &http.Server{
			Addr:    *listen,
			Handler: api.LoggingMiddleware(server.ServeMux()),
		}

		go func() {
			log.Printf("serving on %s", *listen)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}()

	wg.Wait()
	log.Printf("Graceful shutdown complete")
}
