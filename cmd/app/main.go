package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/FabriBott/asset-token-nexus-platform/db/postgres"
	providers "github.com/FabriBott/asset-token-nexus-platform/db/postgres/providers"
	"github.com/FabriBott/asset-token-nexus-platform/notify"
	"github.com/FabriBott/asset-token-nexus-platform/repository"
	"github.com/FabriBott/asset-token-nexus-platform/repository/memstore"
	"github.com/FabriBott/asset-token-nexus-platform/routes"
	"github.com/FabriBott/asset-token-nexus-platform/service"
	"github.com/FabriBott/asset-token-nexus-platform/utils"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := godotenv.Load(".env"); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded, relying on environment")
	}

	// 1. Storage backend: Postgres by default, in-memory for demos
	var (
		orderStore service.OrderStore
		tradeStore service.TradeStore
		tokenStore service.TokenStore
	)
	switch backend := os.Getenv("STORAGE_BACKEND"); backend {
	case "", "postgres":
		pg := postgres.ConnectDB()
		defer pg.Stop()

		if err := pg.InitSchema(); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize database schema")
		}
		dbHelper, err := providers.NewDbProvider(pg.PostgresClient)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize DB helper")
		}
		orderStore = repository.NewOrderRepository(dbHelper)
		tradeStore = repository.NewTradeRepository(dbHelper)
		tokenStore = repository.NewTokenRepository(dbHelper)
	case "memory":
		store := memstore.New()
		orderStore, tradeStore, tokenStore = store, store, store
		log.Info().Msg("using in-memory storage, state is lost on restart")
	default:
		log.Fatal().Str("backend", backend).Msg("unknown STORAGE_BACKEND")
	}

	// 2. Services and trade feed
	refs := utils.NewRefGenerator()
	feed := notify.NewTradeFeed()
	market := service.NewMarketService(orderStore, tradeStore, tokenStore, refs)
	market.OnTrade = feed.Publish
	tokens := service.NewTokenService(tokenStore, tradeStore, refs)

	// 3. Router
	router := gin.Default()
	routes.RegisterRoutes(router, market, tokens, feed)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{getEnv("CORS_ORIGIN", "*")},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	srv := &http.Server{
		Addr:    ":" + getEnv("PORT", "8080"),
		Handler: corsHandler.Handler(router),
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("marketplace API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// 4. Wait for OS signal, then drain
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("shutdown complete")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
