package api

import (
	"net/http"

	"github.com/burn-exchange/internal/logging"
	"github.com/burn-exchange/internal/service"
)

// handleSwap handles POST /api/swap - record a burn and accrue points
func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	var input service.SwapInput
	if err := parseJSONBody(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	result, err := s.swapService.Swap(r.Context(), &input)
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("Swap failed")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// handleBurn handles POST /api/burn - record a burn without accruing points
func (s *Server) handleBurn(w http.ResponseWriter, r *http.Request) {
	var input service.SwapInput
	if err := parseJSONBody(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	record, err := s.swapService.RecordBurn(r.Context(), &input)
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("RecordBurn failed")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// handleListBurns handles GET /api/burn and GET /api/swap - burn history,
// newest first. The optional walletAddress query parameter filters to one
// wallet.
func (s *Server) handleListBurns(w http.ResponseWriter, r *http.Request) {
	wallet := r.URL.Query().Get("walletAddress")

	records, err := s.swapService.ListBurns(r.Context(), wallet)
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("ListBurns failed")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, records)
}
