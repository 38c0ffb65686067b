package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/landlordpro/backend/internal/dtos"
	"github.com/landlordpro/backend/internal/services"
	"github.com/landlordpro/backend/internal/utils"
)

type LeaseController struct {
	leaseService services.LeaseService
	validate     *validator.Validate
}

func NewLeaseController(leaseService services.LeaseService) *LeaseController {
	return &LeaseController{
		leaseService: leaseService,
		validate:     validator.New(),
	}
}

// POST /api/leases
func (c *LeaseController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.CreateLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	lease, err := c.leaseService.Create(r.Context(), actor, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.DataResponse{Success: true, Data: lease})
}

// GET /api/leases
func (c *LeaseController) ListHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	params := services.LeaseFilterParams{}
	if status := r.URL.Query().Get("status"); status != "" {
		params.Status = &status
	}
	if params.TenantID, err = queryUUID(r, "tenantId"); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if params.LocalID, err = queryUUID(r, "localId"); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	page := utils.ParsePageQuery(r)
	leases, total, err := c.leaseService.List(r.Context(), actor, params, page)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithPage(w, leases, total, page)
}

// GET /api/leases/{id}
func (c *LeaseController) GetHandler(w http.ResponseWriter, r *http.Request) {
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
	lease, err := c.leaseService.Get(r.Context(), actor, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{Success: true, Data: lease})
}

// PUT /api/leases/{id}
func (c *LeaseController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
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

	var req dtos.UpdateLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	lease, err := c.leaseService.Update(r.Context(), actor, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{Success: true, Data: lease})
}

// DELETE /api/leases/{id}
func (c *LeaseController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
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
	if err := c.leaseService.Delete(r.Context(), actor, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{
		Success: true,
		Message: "Lease deleted",
	})
}

// POST /api/leases/trigger-expired (admin only)
func (c *LeaseController) TriggerExpiryHandler(w http.ResponseWriter, r *http.Request) {
	n, err := c.leaseService.ExpireDue(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ExpireLeasesResponse{
		Success: true,
		Message: fmt.Sprintf("%d lease(s) marked as expired.", n),
		Expired: n,
	})
}

// GET /api/leases/report/pdf
func (c *LeaseController) ReportPDFHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	pdfBytes, err := c.leaseService.RenderPDF(r.Context(), actor)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="lease-report.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}
