package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/landlordpro/backend/internal/dtos"
	"github.com/landlordpro/backend/internal/services"
	"github.com/landlordpro/backend/internal/utils"
)

type FloorController struct {
	floorService     services.FloorService
	occupancyService services.OccupancyService
	validate         *validator.Validate
}

func NewFloorController(floorService services.FloorService, occupancyService services.OccupancyService) *FloorController {
	return &FloorController{
		floorService:     floorService,
		occupancyService: occupancyService,
		validate:         validator.New(),
	}
}

// GET /api/floors
func (c *FloorController) ListHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	propertyID, err := queryUUID(r, "propertyId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	page := utils.ParsePageQuery(r)
	floors, total, err := c.floorService.List(r.Context(), actor, propertyID, page)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithPage(w, floors, total, page)
}

// GET /api/floors/{id}
func (c *FloorController) GetHandler(w http.ResponseWriter, r *http.Request) {
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
	f, err := c.floorService.Get(r.Context(), actor, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{Success: true, Data: f})
}

// PUT /api/floors/{id}
func (c *FloorController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
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

	var req dtos.UpdateFloorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	f, err := c.floorService.Update(r.Context(), actor, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{Success: true, Data: f})
}

// DELETE /api/floors/{id}
func (c *FloorController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
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
	if err := c.floorService.Delete(r.Context(), actor, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{
		Success: true,
		Message: "Floor deleted",
	})
}

// GET /api/floors/{id}/occupancy
func (c *FloorController) OccupancyHandler(w http.ResponseWriter, r *http.Request) {
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
	occ, err := c.occupancyService.FloorOccupancy(r.Context(), actor, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{Success: true, Data: occ})
}

// GET /api/floors/reports/occupancy
func (c *FloorController) OccupancyReportHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	report, err := c.occupancyService.Report(r.Context(), actor)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{Success: true, Data: report})
}

// GET /api/floors/{id}/locals
func (c *FloorController) ListLocalsHandler(w http.ResponseWriter, r *http.Request) {
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
	page := utils.ParsePageQuery(r)
	locals, total, err := c.floorService.ListLocals(r.Context(), actor, id, page)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithPage(w, locals, total, page)
}
