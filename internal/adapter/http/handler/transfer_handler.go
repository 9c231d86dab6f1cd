package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lftbrito/bip-teste-integrado/internal/adapter/http/dto"
	"github.com/lftbrito/bip-teste-integrado/internal/usecase"
)

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC *usecase.TransferUseCase
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC *usecase.TransferUseCase) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create executes a transfer between two benefits.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.transferUC.Transfer(r.Context(), req.ToDomain())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "transfer failed", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(result))
}
