package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tlind/huemcp/pkg/api"
	"github.com/tlind/huemcp/pkg/bridge"
	"github.com/tlind/huemcp/pkg/bridge/schema"
	"github.com/tlind/huemcp/pkg/control"
	"github.com/tlind/huemcp/pkg/db"
	"github.com/tlind/huemcp/pkg/state"

	_ "github.com/tlind/huemcp/docs"
)

// @title           huemcp API
// @version         1.0
// @description     REST API for controlling Philips Hue lights

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

func main() {
	// Configure logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/huemcp/huemcp.db)")
	bridgeAddr := flag.String("bridge", "", "Bridge address (IP or host), overrides the stored bridge")
	username := flag.String("username", "", "Bridge API username, persisted for later runs")
	pair := flag.Bool("pair", false, "Pair with the bridge (press the link button first)")
	pairTimeout := flag.Duration("pair-timeout", 30*time.Second, "How long to wait for the link button")
	httpTimeout := flag.Duration("timeout", 5*time.Second, "Bridge request timeout")
	addr := flag.String("addr", "0.0.0.0:8080", "API listen address")
	flag.Parse()

	ctx := context.Background()

	// Open database
	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	log.Info().Str("path", database.Path()).Msg("Database opened")

	// Run migrations
	if err := database.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Resolve bridge credentials
	b, err := resolveBridge(ctx, database, *bridgeAddr, *username, *pair, *pairTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("No usable bridge credentials; run with -bridge and -pair to pair")
	}

	log.Info().Str("address", b.Address).Msg("Using bridge")

	// Connect and warm the light cache
	client := bridge.NewHTTPClient(b.Address, b.Username, *httpTimeout)
	cache := state.New()
	if n, err := cache.Refresh(ctx, client); err != nil {
		log.Warn().Err(err).Msg("Initial light refresh failed, cache is empty")
	} else {
		log.Info().Int("lights", n).Msg("Light cache loaded")
	}

	controller := control.New(client, cache)
	validator := schema.NewValidator()

	// Create and start API router
	router := api.NewRouter(controller, validator)

	// Handle shutdown gracefully
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("Shutting down...")
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
		os.Exit(0)
	}()

	// Start server
	log.Info().Str("address", *addr).Msg("Starting API server")

	if err := router.Run(*addr); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

// resolveBridge picks the bridge to talk to: explicit flags win and are
// persisted, -pair runs the link-button handshake, otherwise the stored
// active bridge is used.
func resolveBridge(ctx context.Context, database *db.DB, address, username string, pair bool, pairTimeout time.Duration) (*db.Bridge, error) {
	store := database.Bridges()

	if address != "" && username != "" {
		b := &db.Bridge{Address: address, Username: username}
		if err := store.Save(ctx, b); err != nil {
			return nil, err
		}
		return b, nil
	}

	if address != "" && pair {
		log.Info().Str("address", address).Msg("Press the link button on the bridge to pair")
		username, err := bridge.RegisterRetry(ctx, address, pairTimeout)
		if err != nil {
			return nil, err
		}
		b := &db.Bridge{Address: address, Username: username}
		if err := store.Save(ctx, b); err != nil {
			return nil, err
		}
		log.Info().Str("address", address).Msg("Paired with bridge")
		return b, nil
	}

	if address != "" {
		return store.GetByAddress(ctx, address)
	}

	return store.GetActive(ctx)
}
