package middleware

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"stockroom/internal/domain"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "role"
)

var errUnauthorized = errors.New("unauthorized")

// ContextWithUserID returns a new context with the given user ID set.
// This is intended for use in tests and middleware.
func ContextWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ContextWithRole returns a new context with the given role set.
func ContextWithRole(ctx context.Context, role domain.Role) context.Context {
	return context.WithValue(ctx, roleKey, role)
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	v := ctx.Value(userIDKey)
	if v == nil {
		return uuid.Nil, errUnauthorized
	}

	switch id := v.(type) {
	case uuid.UUID:
		return id, nil
	case string:
		parsed, err := uuid.Parse(id)
		if err != nil {
			return uuid.Nil, errUnauthorized
		}
		return parsed, nil
	default:
		return uuid.Nil, errUnauthorized
	}
}

func GetRoleFromContext(ctx context.Context) (domain.Role, error) {
	v := ctx.Value(roleKey)
	if v == nil {
		return "", errUnauthorized
	}

	switch role := v.(type) {
	case domain.Role:
		return role, nil
	case string:
		return domain.Role(role), nil
	default:
		return "", errUnauthorized
	}
}
