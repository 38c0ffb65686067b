package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/landlordpro/backend/internal/dtos"
	"github.com/landlordpro/backend/internal/services"
	"github.com/landlordpro/backend/internal/storage"
	"github.com/landlordpro/backend/internal/utils"
)

type PaymentController struct {
	paymentService      services.PaymentService
	notificationService services.NotificationService
	files               *storage.FileStore
	validate            *validator.Validate
}

func NewPaymentController(
	paymentService services.PaymentService,
	notificationService services.NotificationService,
	files *storage.FileStore,
) *PaymentController {
	return &PaymentController{
		paymentService:      paymentService,
		notificationService: notificationService,
		files:               files,
		validate:            validator.New(),
	}
}

// POST /api/payments accepts multipart/form-data with an optional
// "proof" file riding alongside the form fields.
func (c *PaymentController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	if err := r.ParseMultipartForm(storage.MaxUploadSize); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid multipart payload", nil, err)
		return
	}

	req, err := paymentRequestFromForm(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	_, proofHeader, fErr := r.FormFile("proof")
	hasProof := fErr == nil

	p, err := c.paymentService.Create(r.Context(), actor, req, hasProof)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	// Attach the proof after the row exists so the file lands in the
	// payment's own directory.
	if hasProof {
		name, sErr := c.files.Save(p.ID, proofHeader)
		if sErr != nil {
			utils.HandleAppError(w, sErr)
			return
		}
		proofURL := fmt.Sprintf("/api/payments/proof/%s/%s", p.ID, name)
		if p, err = c.paymentService.SetProof(r.Context(), actor, p.ID, proofURL); err != nil {
			utils.HandleAppError(w, err)
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.DataResponse{Success: true, Data: p})
}

func paymentRequestFromForm(r *http.Request) (dtos.CreatePaymentRequest, error) {
	var req dtos.CreatePaymentRequest

	leaseID, err := uuid.Parse(r.FormValue("lease_id"))
	if err != nil {
		return req, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    "Invalid lease_id format",
			Err:        err,
		}
	}
	modeID, err := uuid.Parse(r.FormValue("payment_mode_id"))
	if err != nil {
		return req, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    "Invalid payment_mode_id format",
			Err:        err,
		}
	}
	amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
	if err != nil {
		return req, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    "Invalid amount",
			Err:        err,
		}
	}

	req.LeaseID = leaseID
	req.PaymentModeID = modeID
	req.Amount = amount
	req.PeriodStart = r.FormValue("period_start")
	req.PeriodEnd = r.FormValue("period_end")
	req.InvoiceNumber = r.FormValue("invoice_number")
	return req, nil
}

// GET /api/payments
func (c *PaymentController) ListHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	leaseID, err := queryUUID(r, "leaseId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	page := utils.ParsePageQuery(r)
	payments, total, err := c.paymentService.List(r.Context(), actor, leaseID, page)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithPage(w, payments, total, page)
}

// GET /api/payments/{id}
func (c *PaymentController) GetHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	p, err := c.paymentService.Get(r.Context(), actor, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{Success: true, Data: p})
}

// PUT /api/payments/{id}
func (c *PaymentController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	p, err := c.paymentService.Update(r.Context(), actor, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{Success: true, Data: p})
}

// DELETE /api/payments/{id}
func (c *PaymentController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	p, err := c.paymentService.Get(r.Context(), actor, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.paymentService.Delete(r.Context(), actor, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	// Deleted payments keep no proof file; a later restore starts
	// without one.
	if p.ProofURL != nil {
		if rmErr := c.files.Remove(p.ID, path.Base(*p.ProofURL)); rmErr != nil {
			utils.Logger.Warnf("Failed to remove proof file for payment %s: %v", p.ID, rmErr)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{
		Success: true,
		Message: "Payment deleted",
	})
}

// PATCH /api/payments/{id}/restore (admin only)
func (c *PaymentController) RestoreHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	p, err := c.paymentService.Restore(r.Context(), actor, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{Success: true, Data: p})
}

// GET /api/payments/proof/{paymentId}/{filename}
func (c *PaymentController) ProofHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathUUID(r, "paymentId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	// Scope check rides on the payment lookup.
	if _, err := c.paymentService.Get(r.Context(), actor, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	f, err := c.files.Open(id, mux.Vars(r)["filename"])
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = io.Copy(w, f)
}

// POST /api/payments/notify-upcoming (admin only)
func (c *PaymentController) NotifyUpcomingHandler(w http.ResponseWriter, r *http.Request) {
	created, err := c.notificationService.NotifyUpcomingPayments(r.Context())
	if err != nil && created == 0 {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NotifyUpcomingResponse{
		Success: true,
		Message: fmt.Sprintf("%d notification(s) created.", created),
		Created: created,
	})
}
