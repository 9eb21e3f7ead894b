package gateway

import "context"

// IntentStatus mirrors the processor's payment intent status
type IntentStatus string

// IntentStatus constants
const (
	IntentRequiresPaymentMethod IntentStatus = "requires_payment_method"
	IntentRequiresConfirmation  IntentStatus = "requires_confirmation"
	IntentRequiresAction        IntentStatus = "requires_action"
	IntentProcessing            IntentStatus = "processing"
	IntentSucceeded             IntentStatus = "succeeded"
	IntentCanceled              IntentStatus = "canceled"
)

// EventType is the processor's webhook event type
type EventType string

// Webhook event types the service reacts to
const (
	EventPaymentSucceeded EventType = "payment_intent.succeeded"
	EventPaymentFailed    EventType = "payment_intent.payment_failed"
	EventPaymentCanceled  EventType = "payment_intent.canceled"
)

// Metadata keys stored on every intent
const (
	MetadataWalletAddress = "wallet_address"
	MetadataTokenAmount   = "token_amount"
	MetadataUserID        = "user_id"
)

// CreateIntentRequest describes an intent to be created at the processor
type CreateIntentRequest struct {
	AmountCents    int64
	Currency       string
	Description    string
	Metadata       map[string]string
	IdempotencyKey string
}

// PaymentIntent is the processor's view of a charge attempt
type PaymentIntent struct {
	ID             string
	ClientSecret   string
	AmountCents    int64
	AmountReceived int64
	Currency       string
	Status         IntentStatus
	LastError      string
	Metadata       map[string]string
}

// ConfirmedAmount returns the captured amount, falling back to the requested amount
func (p *PaymentIntent) ConfirmedAmount() int64 {
	if p.AmountReceived > 0 {
		return p.AmountReceived
	}
	return p.AmountCents
}

// Event is a verified webhook notification
type Event struct {
	ID     string
	Type   EventType
	Intent *PaymentIntent // nil for events that do not carry a payment intent
}

// PaymentGateway is the third-party payment processor
type PaymentGateway interface {
	// CreatePaymentIntent creates an intent and returns its client secret
	//
	// Possible errors:
	// - ErrPaymentProvider: If the processor rejects the request
	// - ErrProvider: If the processor is unreachable
	CreatePaymentIntent(ctx context.Context, req CreateIntentRequest) (*PaymentIntent, error)

	// RetrievePaymentIntent reads the current state of an intent
	//
	// Possible errors:
	// - ErrPaymentProvider: If the processor rejects the request
	// - ErrProvider: If the processor is unreachable
	RetrievePaymentIntent(ctx context.Context, id string) (*PaymentIntent, error)

	// ParseWebhookEvent verifies the signature header and decodes the event
	//
	// Possible errors:
	// - ErrInvalidSignature: If verification fails
	// - ErrInvalidRequest: If the payload cannot be decoded
	ParseWebhookEvent(payload []byte, signature string) (*Event, error)
}
