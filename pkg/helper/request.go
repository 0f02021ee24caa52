package helper

import "strings"

// ClientIP picks the originating client address: the first entry of an
// X-Forwarded-For header when present, the socket address otherwise.
func ClientIP(forwardedFor, remoteAddr string) string {
	if forwardedFor != "" {
		first := strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
		if first != "" {
			return first
		}
	}
	return strings.TrimSpace(remoteAddr)
}

// BearerToken strips the "Bearer" scheme from an Authorization header value.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= 6 && strings.EqualFold(header[:6], "bearer") {
		return strings.TrimSpace(header[6:])
	}
	return header
}
