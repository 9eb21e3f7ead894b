package metrics

import (
	"time"

	"github.com/nepalipay/settlement-service/internal/domain/port/core"
)

// NoopRecorder discards every measurement
type NoopRecorder struct{}

// NewNoopRecorder returns a recorder for tests and disabled metrics
func NewNoopRecorder() core.MetricsRecorder {
	return NoopRecorder{}
}

func (NoopRecorder) PaymentIntentCreated(string)                    {}
func (NoopRecorder) SettlementFinished(string, time.Duration)       {}
func (NoopRecorder) TransferFinished(string, time.Duration)         {}
func (NoopRecorder) WebhookReceived(string, string)                 {}
func (NoopRecorder) StuckSettlements(int)                           {}
func (NoopRecorder) HotWalletBalance(float64)                       {}
func (NoopRecorder) DBPoolStats(int, int, int)                      {}
func (NoopRecorder) HTTPRequest(string, string, int, time.Duration) {}
