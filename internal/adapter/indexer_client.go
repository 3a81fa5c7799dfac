// Package adapter provides clients for the external collaborators: the NFT
// inventory indexer, the chain RPC used to verify burn transfers, and the
// email notification provider.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/burn-exchange/internal/circuitbreaker"
	"github.com/burn-exchange/internal/config"
	"github.com/burn-exchange/internal/types"
)

// IndexerClient fetches a wallet's NFT inventory from a Moralis-style indexing
// service, filtered to the whitelisted collections.
type IndexerClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
	limiter *tokenBucket // free-tier indexer plans allow a few requests per second
}

// tokenBucket is a simple request rate limiter for the indexer API
type tokenBucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(requestsPerSecond float64) *tokenBucket {
	return &tokenBucket{
		tokens:     requestsPerSecond,
		maxTokens:  requestsPerSecond,
		refillRate: requestsPerSecond,
		lastRefill: time.Now(),
	}
}

func (b *tokenBucket) wait() {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * b.refillRate
	if b.tokens > b.maxTokens {
		b.tokens = b.maxTokens
	}
	b.lastRefill = now

	if b.tokens < 1 {
		waitTime := time.Duration((1 - b.tokens) / b.refillRate * float64(time.Second))
		b.mu.Unlock()
		time.Sleep(waitTime)
		b.mu.Lock()
		b.tokens = 0
		b.lastRefill = time.Now()
	} else {
		b.tokens--
	}
}

// NewIndexerClient creates a new indexer client
func NewIndexerClient(cfg *config.IndexerConfig) *IndexerClient {
	return &IndexerClient{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("indexer")),
		limiter: newTokenBucket(3),
	}
}

// indexerNFT is one inventory entry as returned by the indexer API
type indexerNFT struct {
	TokenID      string `json:"token_id"`
	TokenAddress string `json:"token_address"`
	Name         string `json:"name"`
	Metadata     string `json:"metadata"`
}

// indexerResponse is the paginated inventory response envelope
type indexerResponse struct {
	Result []indexerNFT `json:"result"`
	Cursor string       `json:"cursor"`
}

// nftMetadata is the subset of token metadata the UI needs
type nftMetadata struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// GetWalletNFTs returns the wallet's holdings from the whitelisted collections.
// Pagination cursors are followed until exhausted.
func (c *IndexerClient) GetWalletNFTs(ctx context.Context, walletAddress string) ([]types.WalletNFT, error) {
	var nfts []types.WalletNFT

	err := c.breaker.Execute(ctx, func() error {
		cursor := ""
		for {
			page, next, err := c.fetchPage(ctx, walletAddress, cursor)
			if err != nil {
				return err
			}
			nfts = append(nfts, page...)
			if next == "" {
				break
			}
			cursor = next
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return nfts, nil
}

func (c *IndexerClient) fetchPage(ctx context.Context, walletAddress, cursor string) ([]types.WalletNFT, string, error) {
	c.limiter.wait()

	params := url.Values{}
	params.Set("chain", "eth")
	params.Set("format", "decimal")
	params.Set("media_items", "false")
	for i, collection := range types.WhitelistedCollections() {
		params.Set(fmt.Sprintf("token_addresses[%d]", i), string(collection))
	}
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	reqURL := fmt.Sprintf("%s/%s/nft?%s", c.baseURL, url.PathEscape(strings.ToLower(walletAddress)), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("indexer request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read indexer response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("indexer returned status %d: %s", resp.StatusCode, string(body))
	}

	var envelope indexerResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, "", fmt.Errorf("failed to parse indexer response: %w", err)
	}

	nfts := make([]types.WalletNFT, 0, len(envelope.Result))
	for _, item := range envelope.Result {
		contract := strings.ToLower(item.TokenAddress)
		if !types.IsWhitelisted(contract) {
			// The token_addresses filter should already exclude these.
			continue
		}

		nft := types.WalletNFT{
			TokenID:         item.TokenID,
			ContractAddress: contract,
			Name:            item.Name,
		}

		if item.Metadata != "" {
			var meta nftMetadata
			if err := json.Unmarshal([]byte(item.Metadata), &meta); err == nil {
				nft.Image = meta.Image
				if nft.Name == "" {
					nft.Name = meta.Name
				}
			}
		}

		nfts = append(nfts, nft)
	}

	return nfts, envelope.Cursor, nil
}
