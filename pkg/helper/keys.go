package helper

import "strings"

const guestPrefix = "guest:"

// MakeViewKey builds the dedup cache key for a (viewer, video) pair.
func MakeViewKey(identity, videoID string) string {
	return "view:" + identity + ":" + videoID
}

// GuestIdentity derives the fallback viewer identity from a network address.
func GuestIdentity(ip string) string {
	return guestPrefix + ip
}

// IsGuestIdentity reports whether identity was built by GuestIdentity.
func IsGuestIdentity(identity string) bool {
	return strings.HasPrefix(identity, guestPrefix)
}
