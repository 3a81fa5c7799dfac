package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/burn-exchange/internal/config"
	"github.com/burn-exchange/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndexer(t *testing.T, handler http.HandlerFunc) *IndexerClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewIndexerClient(&config.IndexerConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	})
}

func TestGetWalletNFTs(t *testing.T) {
	client := newTestIndexer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		assert.Contains(t, r.URL.Path, "0xabc")

		resp := indexerResponse{
			Result: []indexerNFT{
				{
					TokenID:      "3",
					TokenAddress: "0x521B674F91d818f7786F784dCCa2fc2b3121A6Bb",
					Name:         "Ridiculous Dragon #3",
					Metadata:     `{"name":"Ridiculous Dragon #3","image":"ipfs://dragon3.png"}`,
				},
				{
					TokenID:      "3600",
					TokenAddress: string(types.CollectionNomaimai),
					Name:         "Nomaimai #3600",
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	nfts, err := client.GetWalletNFTs(context.Background(), "0xABC")
	require.NoError(t, err)
	require.Len(t, nfts, 2)

	assert.Equal(t, "3", nfts[0].TokenID)
	assert.Equal(t, string(types.CollectionDragons), nfts[0].ContractAddress)
	assert.Equal(t, "ipfs://dragon3.png", nfts[0].Image)
	assert.Equal(t, "3600", nfts[1].TokenID)
}

func TestGetWalletNFTs_FollowsCursor(t *testing.T) {
	calls := 0
	client := newTestIndexer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		resp := indexerResponse{
			Result: []indexerNFT{{TokenID: "1", TokenAddress: string(types.CollectionDragons), Name: "Dragon #1"}},
		}
		if r.URL.Query().Get("cursor") == "" {
			resp.Cursor = "next-page"
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	nfts, err := client.GetWalletNFTs(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Len(t, nfts, 2)
	assert.Equal(t, 2, calls)
}

func TestGetWalletNFTs_FiltersUnknownCollections(t *testing.T) {
	client := newTestIndexer(t, func(w http.ResponseWriter, r *http.Request) {
		resp := indexerResponse{
			Result: []indexerNFT{
				{TokenID: "1", TokenAddress: "0x0000000000000000000000000000000000000001", Name: "Other"},
				{TokenID: "2", TokenAddress: string(types.CollectionDragons), Name: "Dragon #2"},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	nfts, err := client.GetWalletNFTs(context.Background(), "0xabc")
	require.NoError(t, err)
	require.Len(t, nfts, 1)
	assert.Equal(t, "2", nfts[0].TokenID)
}

func TestGetWalletNFTs_ProviderError(t *testing.T) {
	client := newTestIndexer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	})

	_, err := client.GetWalletNFTs(context.Background(), "0xabc")
	assert.Error(t, err)
}

func TestGetWalletNFTs_CircuitOpensAfterRepeatedFailures(t *testing.T) {
	client := newTestIndexer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	})

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := client.GetWalletNFTs(ctx, "0xabc")
		require.Error(t, err)
	}

	// Circuit is open now; the request is rejected without reaching the server.
	_, err := client.GetWalletNFTs(ctx, "0xabc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
}
