package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/auth"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/user"
)

// TokenClaims is the identity carried by a verified access token.
type TokenClaims struct {
	UserID     string
	Email      string
	CompanyID  string
	Role       user.Role
	EmployeeID *string
}

// ClaimsFromRequest extracts the access-token claims placed in the request
// context by the jwtauth verifier. Handlers pass the company ID down into
// services explicitly rather than having services read the token themselves.
func ClaimsFromRequest(r *http.Request) (TokenClaims, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return TokenClaims{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return TokenClaims{}, auth.ErrInvalidToken
	}
	companyID, ok := claims["company_id"].(string)
	if !ok {
		return TokenClaims{}, auth.ErrInvalidToken
	}

	tc := TokenClaims{
		UserID:    userID,
		CompanyID: companyID,
	}
	if email, ok := claims["email"].(string); ok {
		tc.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		tc.Role = user.Role(role)
	}
	if employeeID, ok := claims["employee_id"].(string); ok {
		tc.EmployeeID = &employeeID
	}

	return tc, nil
}
