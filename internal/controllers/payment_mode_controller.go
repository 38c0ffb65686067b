package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/landlordpro/backend/internal/dtos"
	"github.com/landlordpro/backend/internal/services"
	"github.com/landlordpro/backend/internal/utils"
)

type PaymentModeController struct {
	modeService services.PaymentModeService
	validate    *validator.Validate
}

func NewPaymentModeController(modeService services.PaymentModeService) *PaymentModeController {
	return &PaymentModeController{
		modeService: modeService,
		validate:    validator.New(),
	}
}

// POST /api/payment-modes (admin only)
func (c *PaymentModeController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreatePaymentModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	m, err := c.modeService.Create(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.DataResponse{Success: true, Data: m})
}

// GET /api/payment-modes
func (c *PaymentModeController) ListHandler(w http.ResponseWriter, r *http.Request) {
	page := utils.ParsePageQuery(r)
	modes, total, err := c.modeService.List(r.Context(), page)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithPage(w, modes, total, page)
}

// GET /api/payment-modes/{id}
func (c *PaymentModeController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	m, err := c.modeService.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{Success: true, Data: m})
}

// PUT /api/payment-modes/{id} (admin only)
func (c *PaymentModeController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdatePaymentModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	m, err := c.modeService.Update(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{Success: true, Data: m})
}

// DELETE /api/payment-modes/{id} (admin only)
func (c *PaymentModeController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.modeService.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{
		Success: true,
		Message: "Payment mode deleted",
	})
}
