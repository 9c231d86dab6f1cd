package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lftbrito/bip-teste-integrado/internal/adapter/http/dto"
	"github.com/lftbrito/bip-teste-integrado/internal/usecase"
)

// BenefitHandler handles benefit-related HTTP requests.
type BenefitHandler struct {
	benefitUC *usecase.BenefitUseCase
}

// NewBenefitHandler creates a new BenefitHandler.
func NewBenefitHandler(benefitUC *usecase.BenefitUseCase) *BenefitHandler {
	return &BenefitHandler{benefitUC: benefitUC}
}

// Create creates a new benefit.
func (h *BenefitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBenefitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	benefit, err := h.benefitUC.Create(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create benefit", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.BenefitFromDomain(benefit))
}

// Get retrieves a benefit by ID.
func (h *BenefitHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing benefit ID", "")
		return
	}

	benefit, err := h.benefitUC.Get(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get benefit", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BenefitFromDomain(benefit))
}

// List lists all benefits. With ?active=true only active benefits are
// returned.
func (h *BenefitHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.benefitUC.List
	if r.URL.Query().Get("active") == "true" {
		list = h.benefitUC.ListActive
	}

	benefits, err := list(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list benefits", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BenefitsFromDomain(benefits))
}

// ListActive lists only active benefits.
func (h *BenefitHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	benefits, err := h.benefitUC.ListActive(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list benefits", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BenefitsFromDomain(benefits))
}

// Update replaces the mutable fields of a benefit.
func (h *BenefitHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing benefit ID", "")
		return
	}

	var req dto.UpdateBenefitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	benefit, err := h.benefitUC.Update(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update benefit", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BenefitFromDomain(benefit))
}

// Deactivate soft-deletes a benefit.
func (h *BenefitHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing benefit ID", "")
		return
	}

	if err := h.benefitUC.Deactivate(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to deactivate benefit", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
