package requestctx

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hrms-core/hrms-backend-go/internal/domain/user"
)

// Actor extracts the authenticated actor from the JWT claims on ctx.
func Actor(ctx context.Context) (user.Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Actor{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Actor{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	roleStr, ok := claims["role"].(string)
	if !ok || !user.Role(roleStr).Valid() {
		return user.Actor{}, fmt.Errorf("role claim is missing or invalid")
	}

	employeeID, _ := claims["employee_id"].(string)

	return user.Actor{
		ID:         userID,
		EmployeeID: employeeID,
		Role:       user.Role(roleStr),
	}, nil
}
