package requests

type Signup struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6,max_bytes=72"`
	Name        string `json:"name" validate:"required,max=100"`
	UserType    string `json:"userType" validate:"required"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	Address     string `json:"address" validate:"omitempty,max=255"`
	DateOfBirth string `json:"dateOfBirth" validate:"omitempty,flexible_date"`
	Gender      string `json:"gender" validate:"omitempty,oneof=male female other"`
}

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
