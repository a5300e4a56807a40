package auth

import (
	"net/http"
	"strings"
)

const SessionHeader = "X-Session-Token"

// ExtractToken returns the session token carried by r, looking first at a
// Bearer Authorization header and then at X-Session-Token.
func ExtractToken(r *http.Request) Token {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return Token(strings.TrimSpace(parts[1]))
		}
	}
	return Token(strings.TrimSpace(r.Header.Get(SessionHeader)))
}
