package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/trusted-token-transfers/pkg/events"
	dydbstore "github.com/chris/trusted-token-transfers/pkg/storage/dynamodb"
	"github.com/chris/trusted-token-transfers/pkg/websockets"
	"github.com/joho/godotenv"
)

var publisher websockets.Publisher

func init() {
	// Load environment variables from .env file (useful for local testing).
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize dependencies once.
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")
	wsEndpoint := os.Getenv("WEBSOCKET_API_ENDPOINT")

	if connectionsTable == "" || wsEndpoint == "" {
		log.Fatal("DYNAMODB_CONNECTIONS_TABLE_NAME and WEBSOCKET_API_ENDPOINT must be set")
	}

	// This lambda only reads and prunes connections, so only that table is wired.
	store := dydbstore.New(dbClient, "", "", "", "", connectionsTable)

	publisher, err = websockets.NewPublisher(store, store, wsEndpoint)
	if err != nil {
		log.Fatalf("failed to create websocket publisher: %v", err)
	}
}

// toMessage maps a domain event to the WebSocket message shown to clients.
func toMessage(event events.Event) (websockets.Message, bool) {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return websockets.Message{}, false
	}

	switch event.Type {
	case events.TypeTrustRequested, events.TypeTrustApproved:
		var trustPayload events.TrustPayload
		if err := json.Unmarshal(payload, &trustPayload); err != nil {
			return websockets.Message{}, false
		}
		return websockets.Message{
			Type: websockets.MessageTypeTrustUpdate,
			Payload: websockets.TrustUpdatePayload{
				RelationshipId:  trustPayload.RelationshipId,
				RequesterWallet: trustPayload.RequesterWallet,
				RequesteeWallet: trustPayload.RequesteeWallet,
				State:           trustPayload.State,
			},
		}, true
	case events.TypeTransferExecuted:
		var transferPayload events.TransferPayload
		if err := json.Unmarshal(payload, &transferPayload); err != nil {
			return websockets.Message{}, false
		}
		return websockets.Message{
			Type: websockets.MessageTypeTransferExecuted,
			Payload: websockets.TransferExecutedPayload{
				Tokens:         transferPayload.Tokens,
				SenderWallet:   transferPayload.SenderWallet,
				ReceiverWallet: transferPayload.ReceiverWallet,
			},
		}, true
	}

	return websockets.Message{}, false
}

// HandleRequest fans domain events out to connected WebSocket clients.
func HandleRequest(ctx context.Context, sqsEvent lambdaevents.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var event events.Event
		if err := json.Unmarshal([]byte(message.Body), &event); err != nil {
			log.Printf("ERROR: failed to unmarshal event from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message, which is appropriate here.
			return err
		}

		msg, ok := toMessage(event)
		if !ok {
			log.Printf("Skipping event %s with unhandled type %s", event.Id, event.Type)
			continue
		}

		if err := publisher.Publish(ctx, msg); err != nil {
			log.Printf("ERROR: failed to publish event %s: %v", event.Id, err)
			return err
		}

		log.Printf("Successfully published event %s", event.Id)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
