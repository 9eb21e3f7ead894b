package core

import "time"

// Outcome labels shared by metrics recorders
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeDuplicate = "duplicate"
	OutcomeSkipped   = "skipped"
)

// MetricsRecorder records operational metrics for the settlement flow
type MetricsRecorder interface {
	// PaymentIntentCreated counts intent creation attempts by outcome
	PaymentIntentCreated(outcome string)
	// SettlementFinished records one settlement attempt and how long it took
	SettlementFinished(outcome string, duration time.Duration)
	// TransferFinished records one on-chain transfer and how long it took to confirm
	TransferFinished(outcome string, duration time.Duration)
	// WebhookReceived counts processed webhook events by type and outcome
	WebhookReceived(eventType, outcome string)
	// StuckSettlements reports purchases that have stayed in processing too long
	StuckSettlements(count int)
	// HotWalletBalance reports the latest native balance of the hot wallet
	HotWalletBalance(balance float64)
	// DBPoolStats reports connection pool usage
	DBPoolStats(open, inUse, idle int)
	// HTTPRequest records one served API request
	HTTPRequest(method, route string, status int, duration time.Duration)
}
