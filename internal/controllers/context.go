package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/landlordpro/backend/internal/middleware"
	"github.com/landlordpro/backend/internal/models"
	"github.com/landlordpro/backend/internal/services"
	"github.com/landlordpro/backend/internal/utils"
)

// getActor rebuilds the caller identity from the claims stashed by the
// auth middleware.
func getActor(r *http.Request) (services.Actor, error) {
	rawID, _ := r.Context().Value(middleware.ContextKeyUserID).(string)
	if rawID == "" {
		return services.Actor{}, &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeUnauthorized,
			Message:    "Missing user identity in context",
		}
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return services.Actor{}, &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeUnauthorized,
			Message:    "Invalid user identity format",
			Err:        err,
		}
	}
	rawRole, _ := r.Context().Value(middleware.ContextKeyRole).(string)
	role, err := models.ParseRole(rawRole)
	if err != nil {
		return services.Actor{}, &utils.AppError{
			StatusCode: http.StatusForbidden,
			Code:       utils.ErrCodeForbidden,
			Message:    "Unknown role",
			Err:        err,
		}
	}
	return services.Actor{ID: id, Role: role}, nil
}

// pathUUID parses a UUID path variable.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    "Invalid " + name + " format",
			Err:        err,
		}
	}
	return id, nil
}

// queryUUID parses an optional UUID query parameter, nil when absent.
func queryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    "Invalid " + name + " format",
			Err:        err,
		}
	}
	return &id, nil
}
