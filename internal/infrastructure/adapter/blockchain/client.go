package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"

	errs "github.com/nepalipay/settlement-service/internal/domain/error"
	"github.com/nepalipay/settlement-service/internal/domain/port/chain"
	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
)

// ERC20 ABI for balanceOf, transfer and decimals
const erc20ABI = `[{"constant":true,"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function"},{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"type":"function"},{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"type":"function"}]`

const (
	nativeDecimals  = 18
	defaultGasLimit = 100000
	contractName    = "token"
)

// Backend is the part of *ethclient.Client the token client uses
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (tx *types.Transaction, isPending bool, err error)
}

// Config holds the chain connection settings
type Config struct {
	RPCURL              string
	PrivateKey          string // hex, with or without 0x
	TokenAddress        string
	ChainID             int64 // zero asks the node
	TokenDecimals       int32 // zero reads decimals() from the contract
	GasLimit            uint64
	MaxGasPrice         string // wei; empty means no cap
	ReceiptPollInterval time.Duration
	ReceiptTimeout      time.Duration
}

// Client implements chain.TokenClient over JSON-RPC with a local hot-wallet key
type Client struct {
	backend Backend
	closer  func()
	logger  coreport.Logger

	chainID     *big.Int
	privateKey  *ecdsa.PrivateKey
	address     common.Address
	token       common.Address
	tokenABI    abi.ABI
	decimals    int32
	gasLimit    uint64
	maxGasPrice *big.Int

	pollInterval   time.Duration
	receiptTimeout time.Duration

	// mu serialises nonce allocation across transfers
	mu sync.Mutex
}

// Dial connects to the RPC endpoint and builds the client
func Dial(ctx context.Context, cfg Config, logger coreport.Logger) (*Client, error) {
	ec, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, errs.NewProviderError("chain", "dial", err)
	}

	c, err := NewClient(ctx, ec, cfg, logger)
	if err != nil {
		ec.Close()
		return nil, err
	}
	c.closer = ec.Close
	return c, nil
}

// NewClient builds a client on an existing backend
func NewClient(ctx context.Context, backend Backend, cfg Config, logger coreport.Logger) (*Client, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(cfg.PrivateKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to load private key: %w", err)
	}

	if !common.IsHexAddress(cfg.TokenAddress) {
		return nil, fmt.Errorf("%w: token contract %q", errs.ErrInvalidWalletAddress, cfg.TokenAddress)
	}

	tokenABI, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ERC20 ABI: %w", err)
	}

	c := &Client{
		backend:        backend,
		logger:         logger,
		privateKey:     privateKey,
		address:        crypto.PubkeyToAddress(privateKey.PublicKey),
		token:          common.HexToAddress(cfg.TokenAddress),
		tokenABI:       tokenABI,
		gasLimit:       cfg.GasLimit,
		pollInterval:   cfg.ReceiptPollInterval,
		receiptTimeout: cfg.ReceiptTimeout,
	}
	if c.gasLimit == 0 {
		c.gasLimit = defaultGasLimit
	}
	if c.pollInterval <= 0 {
		c.pollInterval = 3 * time.Second
	}
	if c.receiptTimeout <= 0 {
		c.receiptTimeout = 2 * time.Minute
	}

	if cfg.MaxGasPrice != "" {
		maxGasPrice, ok := new(big.Int).SetString(cfg.MaxGasPrice, 10)
		if !ok {
			return nil, fmt.Errorf("invalid max gas price %q", cfg.MaxGasPrice)
		}
		c.maxGasPrice = maxGasPrice
	}

	if cfg.ChainID > 0 {
		c.chainID = big.NewInt(cfg.ChainID)
	} else {
		chainID, err := backend.ChainID(ctx)
		if err != nil {
			return nil, errs.NewProviderError("chain", "chain_id", err)
		}
		c.chainID = chainID
	}

	if cfg.TokenDecimals > 0 {
		c.decimals = cfg.TokenDecimals
	} else {
		decimals, err := c.readDecimals(ctx)
		if err != nil {
			return nil, err
		}
		c.decimals = decimals
	}

	logger.Info("Connected to chain", map[string]any{
		"chain_id":       c.chainID.String(),
		"token_contract": c.token.Hex(),
		"hot_wallet":     c.address.Hex(),
		"decimals":       c.decimals,
	})

	return c, nil
}

// Close releases the RPC connection
func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
	}
}

func (c *Client) HotWalletAddress() string {
	return c.address.Hex()
}

func (c *Client) TokenDecimals() int32 {
	return c.decimals
}

// GetWalletBalance returns the hot wallet's native balance
func (c *Client) GetWalletBalance(ctx context.Context) (string, error) {
	wei, err := c.backend.BalanceAt(ctx, c.address, nil)
	if err != nil {
		return "", errs.NewProviderError("chain", "balance_at", err)
	}
	return FormatUnits(wei, nativeDecimals), nil
}

// GetNativeBalance returns the native balance of address
func (c *Client) GetNativeBalance(ctx context.Context, address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidWalletAddress, address)
	}
	wei, err := c.backend.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return "", errs.NewProviderError("chain", "balance_at", err)
	}
	return FormatUnits(wei, nativeDecimals), nil
}

// GetTokenBalance returns the raw token balance of address
func (c *Client) GetTokenBalance(ctx context.Context, address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", errs.NewContractCallError(contractName, "balanceOf", address, errs.ErrInvalidWalletAddress)
	}
	balance, err := c.tokenBalance(ctx, common.HexToAddress(address))
	if err != nil {
		return "", err
	}
	return balance.String(), nil
}

func (c *Client) tokenBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	data, err := c.tokenABI.Pack("balanceOf", account)
	if err != nil {
		return nil, errs.NewContractCallError(contractName, "balanceOf", account.Hex(), err)
	}

	out, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &c.token, Data: data}, nil)
	if err != nil {
		return nil, errs.NewContractCallError(contractName, "balanceOf", account.Hex(), err)
	}

	values, err := c.tokenABI.Unpack("balanceOf", out)
	if err != nil || len(values) != 1 {
		if err == nil {
			err = errors.New("unexpected balanceOf output")
		}
		return nil, errs.NewContractCallError(contractName, "balanceOf", account.Hex(), err)
	}

	balance, ok := values[0].(*big.Int)
	if !ok {
		return nil, errs.NewContractCallError(contractName, "balanceOf", account.Hex(), errors.New("balanceOf did not return uint256"))
	}
	return balance, nil
}

func (c *Client) readDecimals(ctx context.Context) (int32, error) {
	data, err := c.tokenABI.Pack("decimals")
	if err != nil {
		return 0, errs.NewContractCallError(contractName, "decimals", c.token.Hex(), err)
	}
	out, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &c.token, Data: data}, nil)
	if err != nil {
		return 0, errs.NewContractCallError(contractName, "decimals", c.token.Hex(), err)
	}
	values, err := c.tokenABI.Unpack("decimals", out)
	if err != nil || len(values) != 1 {
		if err == nil {
			err = errors.New("unexpected decimals output")
		}
		return 0, errs.NewContractCallError(contractName, "decimals", c.token.Hex(), err)
	}
	decimals, ok := values[0].(uint8)
	if !ok {
		return 0, errs.NewContractCallError(contractName, "decimals", c.token.Hex(), errors.New("decimals did not return uint8"))
	}
	return int32(decimals), nil
}

// TransferTokens sends amount tokens from the hot wallet to `to` and waits for the receipt
func (c *Client) TransferTokens(ctx context.Context, to string, amount decimal.Decimal) (string, error) {
	if !common.IsHexAddress(to) {
		return "", errs.NewTransferError(to, amount.String(), "", "Invalid recipient address", nil)
	}
	recipient := common.HexToAddress(to)

	value, err := ToBaseUnits(amount, c.decimals)
	if err != nil {
		return "", errs.NewTransferError(to, amount.String(), "", "Invalid transfer amount", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	balance, err := c.tokenBalance(ctx, c.address)
	if err != nil {
		return "", errs.NewTransferError(to, amount.String(), "", "Failed to read hot wallet balance", err)
	}
	if balance.Cmp(value) < 0 {
		c.logger.Error("Hot wallet balance too low for transfer", map[string]any{
			"balance":   balance.String(),
			"requested": value.String(),
		})
		return "", errs.NewTransferError(to, amount.String(), "", "Insufficient balance", nil)
	}

	data, err := c.tokenABI.Pack("transfer", recipient, value)
	if err != nil {
		return "", errs.NewTransferError(to, amount.String(), "", "Failed to encode transfer", err)
	}

	nonce, err := c.backend.PendingNonceAt(ctx, c.address)
	if err != nil {
		return "", errs.NewTransferError(to, amount.String(), "", "Failed to get nonce", err)
	}

	gasPrice, err := c.gasPrice(ctx)
	if err != nil {
		return "", errs.NewTransferError(to, amount.String(), "", "Failed to suggest gas price", err)
	}

	tx := types.NewTransaction(nonce, c.token, big.NewInt(0), c.gasLimit, gasPrice, data)
	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(c.chainID), c.privateKey)
	if err != nil {
		return "", errs.NewTransferError(to, amount.String(), "", "Failed to sign transaction", err)
	}

	txHash := signedTx.Hash()
	if err := c.backend.SendTransaction(ctx, signedTx); err != nil {
		return "", errs.NewTransferError(to, amount.String(), "", "Failed to send transaction", err)
	}

	c.logger.Info("Token transfer submitted", map[string]any{
		"tx_hash": txHash.Hex(),
		"to":      recipient.Hex(),
		"amount":  amount.String(),
		"nonce":   nonce,
	})

	receipt, err := c.waitForReceipt(ctx, txHash)
	if err != nil {
		return "", errs.NewTransferError(to, amount.String(), txHash.Hex(), "Transfer not confirmed", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return "", errs.NewTransferError(to, amount.String(), txHash.Hex(), "Transfer reverted", nil)
	}

	return txHash.Hex(), nil
}

// TransferStatus reports whether a broadcast transaction was mined, reverted, is still pooled or is unknown
func (c *Client) TransferStatus(ctx context.Context, txHash string) (chain.TxStatus, error) {
	raw, err := hexutil.Decode(txHash)
	if err != nil || len(raw) != common.HashLength {
		return "", errs.NewProviderError("chain", "transaction_receipt", fmt.Errorf("invalid transaction hash %q", txHash))
	}
	hash := common.BytesToHash(raw)

	receipt, err := c.backend.TransactionReceipt(ctx, hash)
	switch {
	case err == nil:
		if receipt.Status == types.ReceiptStatusSuccessful {
			return chain.TxConfirmed, nil
		}
		return chain.TxReverted, nil
	case !errors.Is(err, ethereum.NotFound):
		return "", errs.NewProviderError("chain", "transaction_receipt", err)
	}

	_, isPending, err := c.backend.TransactionByHash(ctx, hash)
	switch {
	case errors.Is(err, ethereum.NotFound):
		return chain.TxNotFound, nil
	case err != nil:
		return "", errs.NewProviderError("chain", "transaction_by_hash", err)
	case isPending:
		return chain.TxPending, nil
	}
	// mined between the two lookups; the next check sees the receipt
	return chain.TxPending, nil
}

// gasPrice returns the node's suggestion capped at the configured maximum
func (c *Client) gasPrice(ctx context.Context) (*big.Int, error) {
	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, err
	}
	if c.maxGasPrice != nil && gasPrice.Cmp(c.maxGasPrice) > 0 {
		c.logger.Warn("Suggested gas price exceeds maximum", map[string]any{
			"suggested": gasPrice.String(),
			"max":       c.maxGasPrice.String(),
		})
		return new(big.Int).Set(c.maxGasPrice), nil
	}
	return gasPrice, nil
}

// waitForReceipt polls until the transaction is mined or the receipt timeout expires
func (c *Client) waitForReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, c.receiptTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			c.logger.Debug("Receipt lookup failed, retrying", map[string]any{
				"tx_hash": txHash.Hex(),
				"error":   err.Error(),
			})
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// FormatUnits renders a base-unit integer in human units, always with a fractional part.
// For example 1e18 with 18 decimals becomes "1.0".
func FormatUnits(value *big.Int, decimals int32) string {
	s := decimal.NewFromBigInt(value, -decimals).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ToBaseUnits converts a human amount into the token's smallest unit.
// Amounts with more precision than the token supports are rejected.
func ToBaseUnits(amount decimal.Decimal, decimals int32) (*big.Int, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", errs.ErrInvalidAmount)
	}
	shifted := amount.Shift(decimals)
	if !shifted.Equal(shifted.Truncate(0)) {
		return nil, fmt.Errorf("%w: %s has more than %d decimals", errs.ErrInvalidAmount, amount.String(), decimals)
	}
	return shifted.BigInt(), nil
}

var _ chain.TokenClient = (*Client)(nil)
