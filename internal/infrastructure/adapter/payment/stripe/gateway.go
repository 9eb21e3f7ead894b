package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	stripeapi "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	errs "github.com/nepalipay/settlement-service/internal/domain/error"
	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
	"github.com/nepalipay/settlement-service/internal/domain/port/gateway"
)

const providerName = "stripe"

// Config holds the Stripe credentials and transport settings
type Config struct {
	SecretKey         string
	WebhookSecret     string
	APIURL            string // empty means the public Stripe API
	Timeout           time.Duration
	MaxNetworkRetries int64
	WebhookTolerance  time.Duration
}

// Gateway implements gateway.PaymentGateway on top of stripe-go
type Gateway struct {
	api           *client.API
	webhookSecret string
	tolerance     time.Duration
	logger        coreport.Logger
}

var _ gateway.PaymentGateway = (*Gateway)(nil)

// NewGateway creates a Stripe gateway with its own backend so tests and
// multiple instances never share the package-level stripe.Key
func NewGateway(cfg Config, logger coreport.Logger) (*Gateway, error) {
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, errors.New("stripe secret key is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.WebhookTolerance <= 0 {
		cfg.WebhookTolerance = webhook.DefaultTolerance
	}

	backendCfg := &stripeapi.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripeapi.Int64(cfg.MaxNetworkRetries),
		LeveledLogger:     &leveledLogger{logger: logger},
	}
	if cfg.APIURL != "" {
		backendCfg.URL = stripeapi.String(cfg.APIURL)
	}
	backend := stripeapi.GetBackendWithConfig(stripeapi.APIBackend, backendCfg)

	api := client.New(cfg.SecretKey, &stripeapi.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})

	return &Gateway{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
		tolerance:     cfg.WebhookTolerance,
		logger:        logger,
	}, nil
}

// CreatePaymentIntent creates an intent with automatic payment methods enabled
func (g *Gateway) CreatePaymentIntent(ctx context.Context, req gateway.CreateIntentRequest) (*gateway.PaymentIntent, error) {
	params := &stripeapi.PaymentIntentParams{
		Amount:   stripeapi.Int64(req.AmountCents),
		Currency: stripeapi.String(strings.ToLower(req.Currency)),
		AutomaticPaymentMethods: &stripeapi.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripeapi.Bool(true),
		},
	}
	if req.Description != "" {
		params.Description = stripeapi.String(req.Description)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, g.mapError("create_payment_intent", err)
	}

	g.logger.Info("Stripe payment intent created", map[string]any{
		"intent_id": pi.ID,
		"amount":    pi.Amount,
		"currency":  string(pi.Currency),
	})
	return toIntent(pi), nil
}

// RetrievePaymentIntent reads the current state of an intent
func (g *Gateway) RetrievePaymentIntent(ctx context.Context, id string) (*gateway.PaymentIntent, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: payment intent ID is required", errs.ErrInvalidRequest)
	}

	params := &stripeapi.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, g.mapError("retrieve_payment_intent", err)
	}
	return toIntent(pi), nil
}

// ParseWebhookEvent verifies the Stripe-Signature header and decodes the event.
// Events for objects other than payment intents come back with a nil Intent.
func (g *Gateway) ParseWebhookEvent(payload []byte, signature string) (*gateway.Event, error) {
	if g.webhookSecret == "" {
		return nil, fmt.Errorf("%w: webhook secret is not configured", errs.ErrInvalidSignature)
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                g.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		if isSignatureError(err) {
			return nil, fmt.Errorf("%w: %v", errs.ErrInvalidSignature, err)
		}
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidRequest, err)
	}

	out := &gateway.Event{ID: event.ID, Type: gateway.EventType(event.Type)}
	if event.Data == nil || event.Data.Object["object"] != "payment_intent" {
		return out, nil
	}

	var pi stripeapi.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, fmt.Errorf("%w: decode payment intent: %v", errs.ErrInvalidRequest, err)
	}
	out.Intent = toIntent(&pi)
	return out, nil
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrTooOld)
}

// mapError turns API rejections into PaymentProviderError and everything else into ProviderError
func (g *Gateway) mapError(operation string, err error) error {
	var stripeErr *stripeapi.Error
	if errors.As(err, &stripeErr) {
		g.logger.Warn("Stripe rejected request", map[string]any{
			"operation":   operation,
			"code":        string(stripeErr.Code),
			"type":        string(stripeErr.Type),
			"http_status": stripeErr.HTTPStatusCode,
			"message":     stripeErr.Msg,
		})
		if stripeErr.HTTPStatusCode == http.StatusNotFound && stripeErr.Code == stripeapi.ErrorCodeResourceMissing {
			return fmt.Errorf("%w: %s", errs.ErrPurchaseNotFound, stripeErr.Msg)
		}
		return errs.NewPaymentProviderError(string(stripeErr.Code), stripeErr.Msg, stripeErr.HTTPStatusCode)
	}

	g.logger.Error("Stripe request failed", map[string]any{
		"operation": operation,
		"error":     err.Error(),
	})
	return errs.NewProviderError(providerName, operation, err)
}

func toIntent(pi *stripeapi.PaymentIntent) *gateway.PaymentIntent {
	intent := &gateway.PaymentIntent{
		ID:             pi.ID,
		ClientSecret:   pi.ClientSecret,
		AmountCents:    pi.Amount,
		AmountReceived: pi.AmountReceived,
		Currency:       string(pi.Currency),
		Status:         gateway.IntentStatus(pi.Status),
		Metadata:       pi.Metadata,
	}
	if pi.LastPaymentError != nil {
		intent.LastError = pi.LastPaymentError.Msg
	}
	return intent
}

// leveledLogger routes stripe-go's own request logging into the service logger
type leveledLogger struct {
	logger coreport.Logger
}

func (l *leveledLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...), map[string]any{"provider": providerName})
}

// Infof is downgraded to debug: stripe-go logs every request at info
func (l *leveledLogger) Infof(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...), map[string]any{"provider": providerName})
}

func (l *leveledLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, v...), map[string]any{"provider": providerName})
}

func (l *leveledLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...), map[string]any{"provider": providerName})
}
