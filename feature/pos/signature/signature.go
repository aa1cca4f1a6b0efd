// Package signature verifies that an inbound webhook body genuinely came
// from the POS system.
//
// Two schemes are supported, selected by which header the delivery carries:
//
//   - Body scheme: hex-encoded HMAC-SHA256 over the raw request body, with
//     an optional "sha256=" prefix on the claimed signature.
//   - URL scheme: base64-encoded HMAC-SHA1 over the exact notification URL
//     concatenated with the raw body. The URL must match the one the sender
//     signed against byte for byte.
//
// Verification is a pure function over its inputs: malformed or missing
// signatures reject, they never panic. A rejection is terminal for that
// delivery attempt; the sender's own redelivery policy governs retries.
package signature

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

// SchemePrefix is the optional tag on body-scheme signatures.
const SchemePrefix = "sha256="

var (
	// ErrMissing indicates an empty claimed signature or secret.
	ErrMissing = errors.New("signature or secret missing")
	// ErrMalformed indicates the claimed signature could not be decoded.
	ErrMalformed = errors.New("signature is not valid hex/base64")
	// ErrLength indicates the decoded signature has the wrong digest length.
	ErrLength = errors.New("signature length mismatch")
	// ErrMismatch indicates the digests differ.
	ErrMismatch = errors.New("signature mismatch")
)

// VerifyBody checks a hex HMAC-SHA256 signature computed over body alone.
// A nil return means accept; any error means reject.
func VerifyBody(body []byte, claimed, secret string) error {
	if claimed == "" || secret == "" {
		return ErrMissing
	}

	claimed = strings.TrimPrefix(claimed, SchemePrefix)
	decoded, err := hex.DecodeString(claimed)
	if err != nil {
		return ErrMalformed
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := mac.Sum(nil)

	// Report a length mismatch distinctly; it usually means the sender
	// switched digest algorithms or truncated the header.
	if len(decoded) != len(expected) {
		return ErrLength
	}
	if !hmac.Equal(decoded, expected) {
		return ErrMismatch
	}
	return nil
}

// VerifyURL checks a base64 HMAC-SHA1 signature computed over url+body.
// The url must be the exact notification URL configured at the sender;
// re-deriving it from the inbound request does not survive proxies.
func VerifyURL(url string, body []byte, claimed, secret string) error {
	if claimed == "" || secret == "" {
		return ErrMissing
	}

	decoded, err := base64.StdEncoding.DecodeString(claimed)
	if err != nil {
		return ErrMalformed
	}

	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write([]byte(url))
	mac.Write(body)
	expected := mac.Sum(nil)

	if len(decoded) != len(expected) {
		return ErrLength
	}
	if !hmac.Equal(decoded, expected) {
		return ErrMismatch
	}
	return nil
}

// SignBody computes the body-scheme signature for the given body and secret.
func SignBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return SchemePrefix + hex.EncodeToString(mac.Sum(nil))
}

// SignURL computes the url-scheme signature for the given url, body and secret.
func SignURL(url string, body []byte, secret string) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write([]byte(url))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
