package settlement

import (
	"context"

	"github.com/nepalipay/settlement-service/internal/domain/entity"
)

// ReportStuckSettlements logs purchases that have been processing for longer than
// the configured threshold. They need an operator: the transfer may or may not have landed.
func (s *Service) ReportStuckSettlements(ctx context.Context) (int, error) {
	cutoff := s.timeProvider.Now().Add(-s.cfg.StuckAfter)

	stuck, err := s.purchaseRepo.ListStale(ctx, entity.PurchaseProcessing, cutoff, s.cfg.StuckScanLimit)
	if err != nil {
		return 0, err
	}

	for _, p := range stuck {
		s.logger.Warn("Settlement stuck in processing", map[string]any{
			"intent_id":    p.ID,
			"wallet":       p.WalletAddress,
			"token_amount": p.TokenAmount.String(),
			"updated_at":   p.UpdatedAt,
			"attempts":     p.Attempts,
		})
	}

	s.metrics.StuckSettlements(len(stuck))
	return len(stuck), nil
}
