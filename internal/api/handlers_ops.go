package api

import (
	"net/http"

	"github.com/burn-exchange/internal/logging"
)

// handleVerifyBurn handles POST /api/burn/verify - check that a submitted
// transaction moved the token from the wallet to the burn address
func (s *Server) handleVerifyBurn(w http.ResponseWriter, r *http.Request) {
	if s.verifier == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Burn verification is not configured", nil)
		return
	}

	var req struct {
		ContractAddress string `json:"contractAddress"`
		TokenID         string `json:"tokenId"`
		WalletAddress   string `json:"walletAddress"`
		TxHash          string `json:"txHash"`
	}
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}
	if req.ContractAddress == "" || req.TokenID == "" || req.WalletAddress == "" || req.TxHash == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Missing required fields", nil)
		return
	}

	result, err := s.verifier.VerifyBurn(r.Context(), req.ContractAddress, req.TokenID, req.WalletAddress, req.TxHash)
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("Burn verification failed")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// handleStats handles GET /api/stats - aggregate burn analytics
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Analytics store is not configured", nil)
		return
	}

	stats, err := s.stats.Stats(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("Stats query failed")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// handleNotifyTest handles POST /api/notify/test - send a test email
func (s *Server) handleNotifyTest(w http.ResponseWriter, r *http.Request) {
	if s.notifier == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Notifier is not configured", nil)
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Missing required fields", nil)
		return
	}

	if err := s.notifier.SendTest(r.Context(), req.Email); err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("Test email failed")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
