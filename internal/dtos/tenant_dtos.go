package dtos

type CreateTenantRequest struct {
	FullName string  `json:"full_name" validate:"required,min=2,max=120"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone,omitempty"`
}

type UpdateTenantRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=120"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `json:"phone,omitempty"`
}
