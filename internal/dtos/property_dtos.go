package dtos

import "github.com/google/uuid"

type CreatePropertyRequest struct {
	Name           string     `json:"name" validate:"required,min=2,max=160"`
	Location       string     `json:"location" validate:"required"`
	Description    string     `json:"description"`
	NumberOfFloors int16      `json:"number_of_floors" validate:"required,gte=1,lte=200"`
	HasBasement    bool       `json:"has_basement"`
	ManagerID      *uuid.UUID `json:"manager_id,omitempty"`
}

type UpdatePropertyRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=160"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
}

type AssignManagerRequest struct {
	ManagerID *uuid.UUID `json:"manager_id"`
}
