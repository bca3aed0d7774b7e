// File: internal/user/role.go
package user

import (
	"strings"

	"ktm_rentals_backend/internal/common"
)

// DeriveRole computes the role for a principal from the identity provider's
// custom claims and the configured administrator allow-list.
//
// A principal is an administrator if the provider marks the account with a
// `role: admin` claim, or if its email appears on the allow-list. The
// allow-list is a bootstrap mechanism injected from configuration; an empty
// list disables that path entirely.
func DeriveRole(claims map[string]interface{}, email string, allowList []string) string {
	if roleClaim, ok := claims["role"].(string); ok && roleClaim == common.RoleAdmin {
		return common.RoleAdmin
	}

	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized != "" {
		for _, allowed := range allowList {
			if strings.EqualFold(allowed, normalized) {
				return common.RoleAdmin
			}
		}
	}
	return common.RoleUser
}
