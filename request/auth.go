package request

import (
	"encoding/base64"
	"fmt"
)

// BasicAuth formats an Authorization header value from basic credentials.
func BasicAuth(username, password string) string {
	credentials := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return "Basic " + credentials
}

// BearerAuth formats an Authorization header value from a bearer token.
func BearerAuth(token string) string {
	return fmt.Sprintf("Bearer %s", token)
}
