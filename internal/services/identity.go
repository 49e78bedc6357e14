package services

import (
	"github.com/SAP-F-2025/gradable-block-service/internal/models"
)

// Identity names the student whose module is looked up: either a resolved
// user record or a bare login name.
type Identity interface {
	isIdentity()
}

type ByRecord struct {
	User *models.User
}

type ByUsername struct {
	Username string
}

func (ByRecord) isIdentity()   {}
func (ByUsername) isIdentity() {}

// IdentityFromLogin turns an optional request login into an Identity
func IdentityFromLogin(login *string) Identity {
	if login == nil {
		return nil
	}
	return ByUsername{Username: *login}
}
