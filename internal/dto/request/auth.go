package request

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=3,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=7,max=15"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=255"`
	Role     string  `json:"role" validate:"required,oneof=client artisan"`

	// Artisans get a store created at registration; the name defaults to
	// "Tienda de <name>" when empty.
	StoreName        *string `json:"store_name,omitempty" validate:"omitempty,min=3,max=100"`
	StoreDescription *string `json:"store_description,omitempty" validate:"omitempty,max=500"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
