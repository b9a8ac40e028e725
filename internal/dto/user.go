package dto

// CreateUserRequest is the payload for the manager-only user creation
// endpoint.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName"`
	Role     string `json:"role" validate:"required,oneof=TERRITORY_MANAGER SALES_PROMOTION_ASSISTANT"`
	District string `json:"district"`
}
