package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/nepalipay/settlement-service/internal/domain/entity"
	errs "github.com/nepalipay/settlement-service/internal/domain/error"
	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
	"github.com/nepalipay/settlement-service/internal/domain/port/gateway"
	"github.com/nepalipay/settlement-service/internal/domain/port/persistence"
	"github.com/nepalipay/settlement-service/internal/domain/port/usecase"
)

// Config holds the payment limits and pricing
type Config struct {
	DefaultCurrency     string
	SupportedCurrencies []string
	MinAmountCents      int64
	MaxAmountCents      int64 // zero disables the upper bound
	Fees                entity.FeeSchedule
}

// Service creates payment intents and reports purchase state
type Service struct {
	uow          persistence.UnitOfWork
	purchaseRepo persistence.PurchaseRepository
	userRepo     persistence.UserRepository
	walletRepo   persistence.WalletRepository
	gateway      gateway.PaymentGateway
	validator    *RequestValidator
	cfg          Config
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.MetricsRecorder
}

// NewService creates a payment service
func NewService(
	uow persistence.UnitOfWork,
	purchaseRepo persistence.PurchaseRepository,
	userRepo persistence.UserRepository,
	walletRepo persistence.WalletRepository,
	paymentGateway gateway.PaymentGateway,
	cfg Config,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.MetricsRecorder,
) *Service {
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "usd"
	}
	if len(cfg.SupportedCurrencies) == 0 {
		cfg.SupportedCurrencies = []string{cfg.DefaultCurrency}
	}
	if cfg.MinAmountCents <= 0 {
		cfg.MinAmountCents = 1
	}
	if !cfg.Fees.ExchangeRate.IsPositive() {
		cfg.Fees = entity.DefaultFeeSchedule()
	}

	return &Service{
		uow:          uow,
		purchaseRepo: purchaseRepo,
		userRepo:     userRepo,
		walletRepo:   walletRepo,
		gateway:      paymentGateway,
		validator:    NewRequestValidator(cfg.MinAmountCents, cfg.MaxAmountCents, cfg.SupportedCurrencies),
		cfg:          cfg,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
	}
}

// CreatePaymentIntent prices the purchase, opens an intent at the processor and
// stores the pending purchase together with its ledger row
func (s *Service) CreatePaymentIntent(ctx context.Context, req usecase.CreatePaymentIntentRequest) (*usecase.CreatePaymentIntentResult, error) {
	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	if err := s.validator.Validate(req.AmountCents, currency, req.WalletAddress, req.TokenAmount); err != nil {
		s.metrics.PaymentIntentCreated(coreport.OutcomeFailure)
		return nil, err
	}

	wallet, err := s.resolveWallet(ctx, req)
	if err != nil {
		s.metrics.PaymentIntentCreated(coreport.OutcomeFailure)
		return nil, err
	}

	quote := s.cfg.Fees.Quote(req.AmountCents)
	if strings.TrimSpace(req.TokenAmount) != "" {
		// Already validated above
		quote.TokenAmount, _ = entity.ParseTokenAmount(req.TokenAmount)
	}

	metadata := map[string]string{
		gateway.MetadataWalletAddress: wallet,
		gateway.MetadataTokenAmount:   quote.TokenAmount.String(),
	}
	if req.UserID != nil {
		metadata[gateway.MetadataUserID] = strconv.FormatUint(*req.UserID, 10)
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, gateway.CreateIntentRequest{
		AmountCents:    req.AmountCents,
		Currency:       currency,
		Description:    fmt.Sprintf("Purchase of %s %s", quote.TokenAmount.String(), entity.TokenSymbol),
		Metadata:       metadata,
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		s.metrics.PaymentIntentCreated(coreport.OutcomeFailure)
		s.logger.Error("Failed to create payment intent", map[string]any{
			"amount":   req.AmountCents,
			"currency": currency,
			"error":    err.Error(),
		})
		return nil, err
	}

	purchase, err := entity.NewTokenPurchase(intent.ID, req.UserID, wallet, req.AmountCents, currency, quote, s.timeProvider)
	if err != nil {
		s.metrics.PaymentIntentCreated(coreport.OutcomeFailure)
		return nil, err
	}

	if err := s.storePurchase(ctx, purchase); err != nil {
		s.metrics.PaymentIntentCreated(coreport.OutcomeFailure)
		// The intent exists at the processor without a purchase; its webhook will be ignored.
		s.logger.Error("Failed to store purchase for payment intent", map[string]any{
			"intent_id": intent.ID,
			"error":     err.Error(),
		})
		return nil, err
	}

	s.metrics.PaymentIntentCreated(coreport.OutcomeSuccess)
	s.logger.Info("Payment intent created", map[string]any{
		"intent_id":    intent.ID,
		"amount":       req.AmountCents,
		"currency":     currency,
		"wallet":       wallet,
		"token_amount": quote.TokenAmount.String(),
	})

	return &usecase.CreatePaymentIntentResult{
		IntentID:      intent.ID,
		ClientSecret:  intent.ClientSecret,
		WalletAddress: wallet,
		Quote: usecase.QuoteView{
			TokenCost:   quote.TokenCost.StringFixed(2),
			TokenAmount: quote.TokenAmount.String(),
			GasFee:      quote.GasFee.String(),
			ServiceFee:  quote.ServiceFee.StringFixed(2),
			TotalCost:   quote.TotalCost.StringFixed(2),
		},
	}, nil
}

// resolveWallet returns the checksummed destination address. A known user without
// an explicit address receives tokens on their custodial wallet.
func (s *Service) resolveWallet(ctx context.Context, req usecase.CreatePaymentIntentRequest) (string, error) {
	if req.UserID != nil {
		if _, err := s.userRepo.GetByID(ctx, *req.UserID); err != nil {
			return "", err
		}
	}

	if req.WalletAddress != "" {
		return entity.NormalizeWalletAddress(req.WalletAddress)
	}

	if req.UserID == nil {
		return "", fmt.Errorf("%w: wallet address is required", errs.ErrInvalidWalletAddress)
	}

	wallet, err := s.walletRepo.GetByUserID(ctx, *req.UserID)
	if err != nil {
		return "", err
	}
	return entity.NormalizeWalletAddress(wallet.Address)
}

// storePurchase writes the purchase and its ledger row in one database transaction
func (s *Service) storePurchase(ctx context.Context, purchase *entity.TokenPurchase) (err error) {
	ledgerRow, err := entity.NewTokenPurchaseTransaction(purchase, s.timeProvider)
	if err != nil {
		return err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
				s.logger.Error("Failed to rollback purchase creation", map[string]any{
					"intent_id": purchase.ID,
					"error":     rbErr.Error(),
				})
			}
		}
	}()

	if err = s.uow.GetPurchaseRepository(txCtx).Create(txCtx, purchase); err != nil {
		return err
	}
	if err = s.uow.GetTransactionRepository(txCtx).Create(txCtx, ledgerRow); err != nil {
		if errors.Is(err, errs.ErrConstraintViolation) {
			err = fmt.Errorf("%w: ledger row already exists for %s", errs.ErrDuplicatePurchase, purchase.ID)
		}
		return err
	}

	return s.uow.Commit(txCtx)
}

// GetPaymentStatus reads the stored purchase
func (s *Service) GetPaymentStatus(ctx context.Context, intentID string) (*usecase.PaymentStatus, error) {
	if strings.TrimSpace(intentID) == "" {
		return nil, fmt.Errorf("%w: payment id is required", errs.ErrInvalidRequest)
	}

	purchase, err := s.purchaseRepo.GetByID(ctx, intentID)
	if err != nil {
		return nil, err
	}

	return &usecase.PaymentStatus{
		ID:            purchase.ID,
		Status:        string(purchase.Status),
		Amount:        purchase.FiatAmount,
		Currency:      purchase.FiatCurrency,
		TokenAmount:   purchase.TokenAmount.String(),
		WalletAddress: purchase.WalletAddress,
		TxHash:        purchase.TxHashValue(),
		Error:         purchase.ErrorMessage,
		CreatedAt:     purchase.CreatedAt,
		UpdatedAt:     purchase.UpdatedAt,
	}, nil
}

var _ usecase.PaymentUseCase = (*Service)(nil)
