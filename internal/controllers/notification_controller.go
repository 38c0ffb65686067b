package controllers

import (
	"net/http"

	"github.com/landlordpro/backend/internal/services"
	"github.com/landlordpro/backend/internal/utils"
)

type NotificationController struct {
	notificationService services.NotificationService
}

func NewNotificationController(notificationService services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// GET /api/notifications
func (c *NotificationController) ListHandler(w http.ResponseWriter, r *http.Request) {
	c.listMine(w, r, false)
}

// GET /api/notifications/unread
func (c *NotificationController) ListUnreadHandler(w http.ResponseWriter, r *http.Request) {
	c.listMine(w, r, true)
}

func (c *NotificationController) listMine(w http.ResponseWriter, r *http.Request, unreadOnly bool) {
	actor, err := getActor(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	page := utils.ParsePageQuery(r)
	notifs, total, err := c.notificationService.ListMine(r.Context(), actor, unreadOnly, page)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithPage(w, notifs, total, page)
}

// GET /api/notifications/all (admin only)
func (c *NotificationController) ListAllHandler(w http.ResponseWriter, r *http.Request) {
	page := utils.ParsePageQuery(r)
	notifs, total, err := c.notificationService.ListAll(r.Context(), page)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithPage(w, notifs, total, page)
}

// PUT /api/notifications/{id}/read
func (c *NotificationController) MarkReadHandler(w http.ResponseWriter, r *http.Request) {
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
	if err := c.notificationService.MarkRead(r.Context(), actor, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.DataResponse{
		Success: true,
		Message: "Notification marked as read",
	})
}
