package shared

import "context"

type userContextKey struct{}

// AuthUser identifies the authenticated admin attached to a request.
type AuthUser struct {
	ID       int64
	Username string
}

// ContextWithUser stores the authenticated user in context.
func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext extracts the authenticated user from context.
func UserFromContext(ctx context.Context) *AuthUser {
	user, _ := ctx.Value(userContextKey{}).(*AuthUser)
	return user
}
