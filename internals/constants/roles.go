package constants

import (
	"fmt"
	"strings"
)

const (
	RoleAdmin         = "ADMIN"
	RoleServiceCenter = "SERVICE_CENTER"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "Only ADMIN may access %s."
	ErrOnlyStaffCanAccess  = "Only ADMIN or SERVICE_CENTER staff may access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

var (
	AllRoles = []string{
		RoleAdmin,
		RoleServiceCenter,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

// NormalizeRole uppercases and trims a role code; unknown codes come back as "".
func NormalizeRole(role string) string {
	r := strings.ToUpper(strings.TrimSpace(role))
	for _, known := range AllRoles {
		if r == known {
			return r
		}
	}
	return ""
}
