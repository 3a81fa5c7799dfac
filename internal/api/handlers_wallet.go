package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/burn-exchange/internal/logging"
)

// handleGetPoints handles GET /api/points/{wallet} - current points balance
func (s *Server) handleGetPoints(w http.ResponseWriter, r *http.Request) {
	wallet := mux.Vars(r)["wallet"]
	if wallet == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Wallet parameter required", nil)
		return
	}

	summary, err := s.swapService.Points(r.Context(), wallet)
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("Points lookup failed")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// handleGetWalletNFTs handles GET /api/nfts/{wallet} - whitelisted NFTs held
// by the wallet, fetched from the indexer
func (s *Server) handleGetWalletNFTs(w http.ResponseWriter, r *http.Request) {
	if s.inventory == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "NFT inventory is not configured", nil)
		return
	}

	wallet := mux.Vars(r)["wallet"]
	if wallet == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Wallet parameter required", nil)
		return
	}

	nfts, err := s.inventory.GetWalletNFTs(r.Context(), wallet)
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("Wallet NFT lookup failed")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, nfts)
}
