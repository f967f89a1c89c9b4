package payment

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/blues/cfl/internal/config"
	"github.com/blues/cfl/internal/model"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// 原生币转账的固定gas上限
const transferGasLimit = 21000

// EthRail 以太坊出金通道
type EthRail struct {
	client        *ethclient.Client
	privateKey    *ecdsa.PrivateKey
	from          common.Address
	chainID       *big.Int
	confirmations int
}

// NewEthRail 连接RPC节点并创建出金通道
func NewEthRail(cfg config.ChainConfig) (*EthRail, error) {
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	chainID := big.NewInt(cfg.ChainId)
	if cfg.ChainId == 0 {
		chainID, err = client.ChainID(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to fetch chain id: %w", err)
		}
	}

	return &EthRail{
		client:        client,
		privateKey:    privateKey,
		from:          crypto.PubkeyToAddress(privateKey.PublicKey),
		chainID:       chainID,
		confirmations: cfg.Confirmations,
	}, nil
}

// Transfer 签名并提交一笔原生币转账
func (r *EthRail) Transfer(ctx context.Context, to string, amount model.Amount) (string, error) {
	if !common.IsHexAddress(to) {
		return "", fmt.Errorf("invalid recipient address: %s", to)
	}

	nonce, err := r.client.PendingNonceAt(ctx, r.from)
	if err != nil {
		return "", fmt.Errorf("failed to fetch nonce: %w", err)
	}

	gasPrice, err := r.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch gas price: %w", err)
	}

	tx := types.NewTransaction(nonce, common.HexToAddress(to), amount.BigInt(),
		transferGasLimit, gasPrice, nil)
	signed, err := types.SignTx(tx, types.NewEIP155Signer(r.chainID), r.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := r.client.SendTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}
	return signed.Hash().Hex(), nil
}

// Confirm 按回执与确认区块数判断转账状态
func (r *EthRail) Confirm(ctx context.Context, txHash string) (Status, error) {
	receipt, err := r.client.TransactionReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return StatusPending, nil
		}
		return StatusPending, fmt.Errorf("failed to fetch receipt: %w", err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return StatusFailed, nil
	}

	header, err := r.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return StatusPending, fmt.Errorf("failed to fetch latest header: %w", err)
	}
	depth := new(big.Int).Sub(header.Number, receipt.BlockNumber)
	if depth.Cmp(big.NewInt(int64(r.confirmations))) < 0 {
		return StatusPending, nil
	}
	return StatusConfirmed, nil
}
