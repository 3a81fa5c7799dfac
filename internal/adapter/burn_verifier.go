package adapter

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/burn-exchange/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// transferEventSig is keccak256("Transfer(address,address,uint256)"), the
// topic shared by ERC-20 and ERC-721 Transfer events.
var transferEventSig = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// BurnVerifier confirms that a submitted transaction actually moved the
// claimed token from the claimed wallet to the burn address. The service
// never signs or submits transactions itself; the wallet provider does that
// and hands back a hash.
type BurnVerifier struct {
	client      *ethclient.Client
	burnAddress common.Address
}

// NewBurnVerifier creates a new burn verifier connected to the given RPC endpoint
func NewBurnVerifier(rpcEndpoint string) (*BurnVerifier, error) {
	client, err := ethclient.Dial(rpcEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to dial RPC endpoint: %w", err)
	}

	return &BurnVerifier{
		client:      client,
		burnAddress: common.HexToAddress(types.BurnAddress),
	}, nil
}

// Close releases the underlying RPC connection
func (v *BurnVerifier) Close() {
	if v.client != nil {
		v.client.Close()
	}
}

// VerifyBurn checks the receipt of txHash for a successful ERC-721 Transfer of
// tokenID from fromAddress to the burn address on the given contract.
func (v *BurnVerifier) VerifyBurn(ctx context.Context, contractAddress, tokenID, fromAddress, txHash string) (*types.TransferResult, error) {
	if !common.IsHexAddress(contractAddress) {
		return &types.TransferResult{Success: false, Error: "invalid contract address"}, nil
	}
	if !common.IsHexAddress(fromAddress) {
		return &types.TransferResult{Success: false, Error: "invalid from address"}, nil
	}

	tokenNum, ok := new(big.Int).SetString(strings.TrimSpace(tokenID), 10)
	if !ok {
		return &types.TransferResult{Success: false, Error: "invalid token id"}, nil
	}

	receipt, err := v.client.TransactionReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch receipt for %s: %w", txHash, err)
	}

	if receipt.Status != 1 {
		return &types.TransferResult{Success: false, Error: "transaction reverted"}, nil
	}

	contract := common.HexToAddress(contractAddress)
	from := common.HexToAddress(fromAddress)

	for _, eventLog := range receipt.Logs {
		if eventLog.Address != contract || len(eventLog.Topics) != 4 {
			continue
		}
		if eventLog.Topics[0] != transferEventSig {
			continue
		}
		// Indexed topics: [sig, from, to, tokenId]
		logFrom := common.BytesToAddress(eventLog.Topics[1].Bytes())
		logTo := common.BytesToAddress(eventLog.Topics[2].Bytes())
		logToken := new(big.Int).SetBytes(eventLog.Topics[3].Bytes())

		if logFrom == from && logTo == v.burnAddress && logToken.Cmp(tokenNum) == 0 {
			return &types.TransferResult{Success: true}, nil
		}
	}

	return &types.TransferResult{Success: false, Error: "no matching burn transfer in receipt"}, nil
}
