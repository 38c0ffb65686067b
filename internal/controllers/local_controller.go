package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/landlordpro/backend/internal/dtos"
	"github.com/landlordpro/backend/internal/services"
	"github.com/landlordpro/backend/internal/utils"
)

type LocalController struct {
	localService services.LocalService
	validate     *validator.Validate
}

func NewLocalController(localService services.LocalService) *LocalController {
	return &LocalController{
		localService: localService,
		validate:     validator.New(),
	}
}

// POST /api/locals
func (c *LocalController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.CreateLocalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	l, err := c.localService.Create(r.Context(), actor, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.DataResponse{Success: true, Data: l})
}

// GET /api/locals
func (c *LocalController) ListHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	params := services.LocalFilterParams{}
	if status := r.URL.Query().Get("status"); status != "" {
		params.Status = &status
	}
	if params.PropertyID, err = queryUUID(r, "propertyId"); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if params.FloorID, err = queryUUID(r, "floorId"); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	page := utils.ParsePageQuery(r)
	locals, total, err := c.localService.List(r.Context(), actor, params, page)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithPage(w, locals, total, page)
}

// GET /api/locals/{id}
func (c *LocalController) GetHandler(w http.ResponseWriter, r *http.Request) {
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
	l, err := c.localService.Get(r.Context(), actor, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{Success: true, Data: l})
}

// PUT/PATCH /api/locals/{id}
func (c *LocalController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
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

	var req dtos.UpdateLocalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	l, err := c.localService.Update(r.Context(), actor, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{Success: true, Data: l})
}

// PATCH /api/locals/{id}/status, open to any authenticated user.
func (c *LocalController) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
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

	var req dtos.UpdateLocalStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	l, err := c.localService.UpdateStatus(r.Context(), actor, id, req.Status)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{Success: true, Data: l})
}

// DELETE /api/locals/{id}
func (c *LocalController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
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
	if err := c.localService.Delete(r.Context(), actor, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{
		Success: true,
		Message: "Local deleted",
	})
}

// PATCH /api/locals/{id}/restore (admin only)
func (c *LocalController) RestoreHandler(w http.ResponseWriter, r *http.Request) {
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
	l, err := c.localService.Restore(r.Context(), actor, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{Success: true, Data: l})
}
