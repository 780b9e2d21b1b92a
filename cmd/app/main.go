package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/trusted-token-transfers/pkg/auth"
	"github.com/chris/trusted-token-transfers/pkg/events"
	authhandler "github.com/chris/trusted-token-transfers/pkg/handlers/auth"
	historyhandler "github.com/chris/trusted-token-transfers/pkg/handlers/history"
	tokenshandler "github.com/chris/trusted-token-transfers/pkg/handlers/tokens"
	transfershandler "github.com/chris/trusted-token-transfers/pkg/handlers/transfers"
	trusthandler "github.com/chris/trusted-token-transfers/pkg/handlers/trust"
	wshandler "github.com/chris/trusted-token-transfers/pkg/handlers/websockets"
	appmiddleware "github.com/chris/trusted-token-transfers/pkg/middleware"
	dydbstore "github.com/chris/trusted-token-transfers/pkg/storage/dynamodb"
	"github.com/chris/trusted-token-transfers/pkg/transfer"
	"github.com/chris/trusted-token-transfers/pkg/trust"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

const sessionTTL = 12 * time.Hour

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	walletsTable := os.Getenv("DYNAMODB_WALLETS_TABLE_NAME")
	tokensTable := os.Getenv("DYNAMODB_TOKENS_TABLE_NAME")
	trustTable := os.Getenv("DYNAMODB_TRUST_TABLE_NAME")
	historyTable := os.Getenv("DYNAMODB_HISTORY_TABLE_NAME")
	connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")

	if walletsTable == "" || tokensTable == "" || trustTable == "" || historyTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	store := dydbstore.New(dbClient, walletsTable, tokensTable, trustTable, historyTable, connectionsTable)

	// Domain event notifier; optional so the API can run without the queue.
	var notifier events.Notifier = &events.NoOpNotifier{}
	if queueURL := os.Getenv("SQS_EVENTS_QUEUE_URL"); queueURL != "" {
		notifier = events.NewSQSNotifier(sqs.NewFromConfig(cfg), queueURL)
	} else {
		log.Println("SQS_EVENTS_QUEUE_URL not set, domain events disabled")
	}

	apiKey := os.Getenv("APP_API_KEY")
	jwtSecret := os.Getenv("JWT_SECRET")
	if apiKey == "" || jwtSecret == "" {
		log.Fatal("APP_API_KEY and JWT_SECRET environment variables must be set")
	}
	tokenService := auth.NewTokenService(jwtSecret, sessionTTL)

	trustEngine := trust.NewEngine(store, store, notifier)
	transferEngine := transfer.NewEngine(store, trustEngine, notifier)

	authHandler := authhandler.NewAuthHandler(store, tokenService)
	trustHandler := trusthandler.NewTrustHandler(trustEngine)
	transfersHandler := transfershandler.NewTransfersHandler(store, store, transferEngine)
	tokensHandler := tokenshandler.NewTokensHandler(store, store)
	historyHandler := historyhandler.NewHistoryHandler(store)

	router := chi.NewRouter()
	router.Use(appmiddleware.NewStructuredLogger(logger))
	router.Use(auth.RequireAPIKey(apiKey))

	router.Post("/auth", authHandler.Authenticate)

	// Local WebSocket endpoint for trust and transfer notifications. In AWS the
	// API Gateway WebSocket API and cmd/websocket_lambda take this role.
	if connectionsTable != "" {
		router.Get("/ws", wshandler.NewHandler(store).ServeHTTP)
	} else {
		log.Println("DYNAMODB_CONNECTIONS_TABLE_NAME not set, websocket notifications disabled")
	}

	router.Group(func(r chi.Router) {
		r.Use(auth.RequireWallet(tokenService, store))

		r.Post("/trust_relationships", trustHandler.Create)
		r.Get("/trust_relationships", trustHandler.List)
		r.Post("/trust_relationships/{relationshipId}/accept", trustHandler.Accept)
		r.Post("/trust_relationships/{relationshipId}/decline", trustHandler.Decline)
		r.Post("/trust_relationships/{relationshipId}/cancel", trustHandler.Cancel)

		r.Post("/transfers", transfersHandler.Create)

		r.Get("/tokens", tokensHandler.List)
		r.Get("/tokens/{tokenId}", tokensHandler.Get)
		r.Get("/history", historyHandler.List)
	})

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
