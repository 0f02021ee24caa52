// Package signature verifies provider webhook signatures of the form
// "t=<unix-timestamp>,v1=<hex-hmac-sha256>".
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMalformedHeader = errors.New("signature header missing timestamp or digest")
	ErrMismatch        = errors.New("signature digest mismatch")
	ErrExpired         = errors.New("signature timestamp outside tolerance")
	ErrNoSecret        = errors.New("webhook secret not configured")
)

// Header is a parsed signature header. A header may carry several v1 digests
// during secret rotation.
type Header struct {
	Timestamp string
	Digests   []string
}

// Parse splits a raw header. Unknown elements are ignored.
func Parse(raw string) (Header, error) {
	var h Header
	for _, element := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(element), "=", 2)
		if len(parts) != 2 {
			continue
		}
		switch parts[0] {
		case "t":
			h.Timestamp = parts[1]
		case "v1":
			if parts[1] != "" {
				h.Digests = append(h.Digests, parts[1])
			}
		}
	}
	if h.Timestamp == "" || len(h.Digests) == 0 {
		return Header{}, ErrMalformedHeader
	}
	return h, nil
}

// Compute returns the hex HMAC-SHA256 of timestamp + "." + body.
func Compute(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Sign builds a header value for body at ts.
func Sign(secret string, body []byte, ts time.Time) string {
	t := strconv.FormatInt(ts.Unix(), 10)
	return fmt.Sprintf("t=%s,v1=%s", t, Compute(secret, t, body))
}

// Verifier checks headers against a shared secret.
type Verifier struct {
	Secret string
	// Tolerance bounds the age of the signed timestamp; zero disables the check.
	Tolerance time.Duration
	Now       func() time.Time
}

// Verify authenticates body against the raw header value.
func (v Verifier) Verify(body []byte, rawHeader string) error {
	if v.Secret == "" {
		return ErrNoSecret
	}
	h, err := Parse(rawHeader)
	if err != nil {
		return err
	}

	expected := []byte(Compute(v.Secret, h.Timestamp, body))
	matched := false
	for _, d := range h.Digests {
		// hmac.Equal is constant time; keep scanning all digests regardless.
		if hmac.Equal(expected, []byte(strings.ToLower(d))) {
			matched = true
		}
	}
	if !matched {
		return ErrMismatch
	}

	if v.Tolerance > 0 {
		ts, err := strconv.ParseInt(h.Timestamp, 10, 64)
		if err != nil {
			return ErrMalformedHeader
		}
		now := time.Now
		if v.Now != nil {
			now = v.Now
		}
		age := now().Sub(time.Unix(ts, 0))
		if age > v.Tolerance || age < -v.Tolerance {
			return ErrExpired
		}
	}
	return nil
}
