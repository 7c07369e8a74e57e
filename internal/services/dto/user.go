package dto

type UpdateUserRequest struct {
	FullName    *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
	Username    *string `json:"username,omitempty" validate:"omitempty,min=3,max=30"`
	IsSuspended *bool   `json:"is_suspended,omitempty"`
}

type SwitchRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=buyer seller rep"`
}
