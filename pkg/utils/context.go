package utils

import (
	"context"
)

type contextKey string

const (
	AccountIDKey contextKey = "account_id"
	EmailKey     contextKey = "email"
)

// SetAccountContext stores the authenticated account identity on the request context.
func SetAccountContext(ctx context.Context, accountID int64, email string) context.Context {
	ctx = context.WithValue(ctx, AccountIDKey, accountID)
	ctx = context.WithValue(ctx, EmailKey, email)
	return ctx
}

func GetAccountIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(AccountIDKey).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok && email != ""
}
