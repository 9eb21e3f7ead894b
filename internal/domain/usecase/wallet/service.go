package wallet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nepalipay/settlement-service/internal/domain/entity"
	errs "github.com/nepalipay/settlement-service/internal/domain/error"
	"github.com/nepalipay/settlement-service/internal/domain/port/chain"
	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
	"github.com/nepalipay/settlement-service/internal/domain/port/persistence"
	"github.com/nepalipay/settlement-service/internal/domain/port/usecase"
)

const defaultPageSize = 100

// Service answers balance queries against the chain and refreshes the cached wallet balances
type Service struct {
	client       chain.TokenClient
	walletRepo   persistence.WalletRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.MetricsRecorder

	cacheTTL time.Duration
	pageSize int

	mu       sync.Mutex
	cached   *usecase.HotWalletBalance
	cachedAt time.Time
}

// NewService creates a wallet service. A zero cacheTTL disables the hot balance cache.
func NewService(
	client chain.TokenClient,
	walletRepo persistence.WalletRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.MetricsRecorder,
	cacheTTL time.Duration,
) *Service {
	return &Service{
		client:       client,
		walletRepo:   walletRepo,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
		cacheTTL:     cacheTTL,
		pageSize:     defaultPageSize,
	}
}

// GetHotWalletBalance returns the hot wallet's native balance, served from cache while fresh.
// The lock only guards the cache; the RPC runs without it.
func (s *Service) GetHotWalletBalance(ctx context.Context) (*usecase.HotWalletBalance, error) {
	now := s.timeProvider.Now()

	s.mu.Lock()
	if s.cached != nil && s.cacheTTL > 0 && now.Sub(s.cachedAt) < s.cacheTTL {
		cp := *s.cached
		s.mu.Unlock()
		return &cp, nil
	}
	s.mu.Unlock()

	balance, err := s.client.GetWalletBalance(ctx)
	if err != nil {
		return nil, err
	}

	if d, err := decimal.NewFromString(balance); err == nil {
		s.metrics.HotWalletBalance(d.InexactFloat64())
	}

	fresh := &usecase.HotWalletBalance{
		Address: s.client.HotWalletAddress(),
		Balance: balance,
	}

	s.mu.Lock()
	// a concurrent lookup that started later may already have stored a newer value
	if s.cached == nil || !now.Before(s.cachedAt) {
		s.cached = fresh
		s.cachedAt = now
	}
	s.mu.Unlock()

	cp := *fresh
	return &cp, nil
}

// GetTokenBalance returns the token balance of address in raw and human units
func (s *Service) GetTokenBalance(ctx context.Context, address string) (*usecase.TokenBalance, error) {
	normalized, err := entity.NormalizeWalletAddress(address)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.GetTokenBalance(ctx, normalized)
	if err != nil {
		return nil, err
	}

	formatted, err := s.fromBaseUnits(raw)
	if err != nil {
		return nil, err
	}

	return &usecase.TokenBalance{
		Address:   normalized,
		Raw:       raw,
		Formatted: formatted.String(),
		Decimals:  s.client.TokenDecimals(),
	}, nil
}

// RefreshBalances re-reads token and native balances for every wallet, page by page.
// A wallet that fails is logged and counted; the sweep continues.
func (s *Service) RefreshBalances(ctx context.Context) (*usecase.RefreshSummary, error) {
	summary := &usecase.RefreshSummary{}
	var afterID uint64

	for {
		wallets, err := s.walletRepo.List(ctx, afterID, s.pageSize)
		if err != nil {
			return summary, err
		}

		for _, w := range wallets {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			if err := s.refreshWallet(ctx, w); err != nil {
				summary.Failed++
				s.logger.Warn("Failed to refresh wallet balances", map[string]any{
					"wallet_id": w.ID,
					"address":   w.Address,
					"error":     err.Error(),
				})
				continue
			}
			summary.Refreshed++
		}

		if len(wallets) < s.pageSize {
			break
		}
		afterID = wallets[len(wallets)-1].ID
	}

	s.logger.Info("Wallet balances refreshed", map[string]any{
		"refreshed": summary.Refreshed,
		"failed":    summary.Failed,
	})
	return summary, nil
}

func (s *Service) refreshWallet(ctx context.Context, w *entity.Wallet) error {
	raw, err := s.client.GetTokenBalance(ctx, w.Address)
	if err != nil {
		return err
	}
	npt, err := s.fromBaseUnits(raw)
	if err != nil {
		return err
	}

	native, err := s.client.GetNativeBalance(ctx, w.Address)
	if err != nil {
		return err
	}
	bnb, err := decimal.NewFromString(native)
	if err != nil {
		return fmt.Errorf("%w: native balance %q: %s", errs.ErrProvider, native, err.Error())
	}

	w.RefreshBalances(npt, bnb, s.timeProvider)
	return s.walletRepo.UpdateBalances(ctx, w.ID, w.NPTBalance, w.BNBBalance)
}

func (s *Service) fromBaseUnits(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: token balance %q: %s", errs.ErrContractCall, raw, err.Error())
	}
	return value.Shift(-s.client.TokenDecimals()), nil
}

var _ usecase.WalletUseCase = (*Service)(nil)
