package request

type RegisterRequest struct {
	Email     string  `json:"email" validate:"required,email,max=255"`
	Password  string  `json:"password" validate:"required,maxbytes=72"`
	Name      string  `json:"name" validate:"omitempty,max=100"`
	LastName  string  `json:"last_name" validate:"omitempty,max=100"`
	Birthdate *string `json:"birthdate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Gender    string  `json:"gender" validate:"omitempty,oneof=male female undefined"`
	RoleID    *int64  `json:"role_id,omitempty" validate:"omitempty,min=1"`
}

type VerifyOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,numeric,min=4,max=10"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RecoveryRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ValidateRecoveryOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,numeric,min=4,max=10"`
}

type ResetPasswordRequest struct {
	Email          string `json:"email" validate:"required,email"`
	RecoveryTicket string `json:"recovery_ticket" validate:"required,uuid"`
	NewPassword    string `json:"new_password" validate:"required,maxbytes=72"`
}

type ExistsRequest struct {
	Email string `json:"email" validate:"required,email"`
}
