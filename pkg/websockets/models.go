package websockets

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeTrustUpdate is for messages about trust relationship changes.
	MessageTypeTrustUpdate MessageType = "trustUpdate"
	// MessageTypeTransferExecuted is for messages about executed transfers.
	MessageTypeTransferExecuted MessageType = "transferExecuted"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// TrustUpdatePayload is the payload for a trustUpdate message.
type TrustUpdatePayload struct {
	RelationshipId  int64  `json:"relationship_id"`
	RequesterWallet string `json:"requester_wallet"`
	RequesteeWallet string `json:"requestee_wallet"`
	State           string `json:"state"`
}

// TransferExecutedPayload is the payload for a transferExecuted message.
type TransferExecutedPayload struct {
	Tokens         []string `json:"tokens"`
	SenderWallet   string   `json:"sender_wallet"`
	ReceiverWallet string   `json:"receiver_wallet"`
}
