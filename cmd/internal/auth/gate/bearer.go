package gate

import "strings"

const bearerPrefix = "Bearer "

// BearerToken extracts the token from an Authorization header value.
// The scheme is case-sensitive and must be followed by exactly one space.
func BearerToken(header string) (string, bool) {
	tok, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || tok == "" {
		return "", false
	}
	if strings.ContainsAny(tok, " \t\r\n") {
		return "", false
	}
	return tok, true
}
