package request

import "strings"

// UpdateAccountRequest patches an account. Nil or blank fields are left untouched.
type UpdateAccountRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Birthdate *string `json:"birthdate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Gender    *string `json:"gender,omitempty" validate:"omitempty,oneof=male female undefined"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=active suspended"`
}

// Empty reports whether the request carries no change.
func (r *UpdateAccountRequest) Empty() bool {
	for _, f := range []*string{r.Name, r.LastName, r.Birthdate, r.Gender, r.Status} {
		if f != nil && strings.TrimSpace(*f) != "" {
			return false
		}
	}
	return true
}
