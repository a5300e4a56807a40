package auth

import "github.com/harrylevesque/storefront/internal/models"

// Identity is the caller an operation runs as. A nil User means nobody is
// logged in on the presented token.
type Identity struct {
	Token Token
	User  *models.User
}

func IsAuthenticated(id Identity) bool {
	return id.User != nil
}

func IsAdmin(id Identity) bool {
	return IsAuthenticated(id) && id.User.IsAdmin
}
