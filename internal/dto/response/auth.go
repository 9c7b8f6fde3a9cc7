package response

import (
	"time"

	"account-service/internal/data/entity"
)

type LoginOutcome string

const (
	OutcomeAuthorized           LoginOutcome = "authorized"
	OutcomeVerificationRequired LoginOutcome = "verification_required"
	OutcomeSuspended            LoginOutcome = "suspended"
)

type AccountResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	LastName  string    `json:"last_name"`
	Birthdate *string   `json:"birthdate,omitempty"`
	Gender    string    `json:"gender"`
	Status    string    `json:"status"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	// OTP is only filled when EXPOSE_OTP is on.
	OTP string `json:"otp,omitempty"`
}

// LoginResponse carries a token only for OutcomeAuthorized.
type LoginResponse struct {
	Outcome   LoginOutcome `json:"outcome"`
	Status    string       `json:"status"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}

type RecoveryTicketResponse struct {
	RecoveryTicket string    `json:"recovery_ticket"`
	ExpiresAt      time.Time `json:"expires_at"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}

func AccountToResponse(account *entity.Account) AccountResponse {
	resp := AccountResponse{
		ID:        account.ID,
		Email:     account.Email,
		Name:      account.Name,
		LastName:  account.LastName,
		Gender:    string(account.Gender),
		Status:    string(account.Status),
		Role:      account.RoleName,
		CreatedAt: account.CreatedAt,
	}

	if account.Birthdate != nil {
		b := account.Birthdate.Format(time.DateOnly)
		resp.Birthdate = &b
	}

	return resp
}
