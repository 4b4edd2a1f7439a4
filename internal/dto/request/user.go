package request

type UpdateProfileRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,min=7,max=15"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=255"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}
