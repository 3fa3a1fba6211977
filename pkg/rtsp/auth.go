package rtsp

import (
	"crypto/md5"
	"errors"
	"fmt"
	"strings"
)

// ErrBadChallenge indicates an unusable WWW-Authenticate value
var ErrBadChallenge = errors.New("unusable authentication challenge")

// Challenge is the digest challenge a camera issues on the first
// unauthenticated request. Captured once per connection.
type Challenge struct {
	Realm string
	Nonce string
}

// ParseChallenge parses the value of a WWW-Authenticate header. Only
// the Digest scheme is supported; both realm and nonce are required.
func ParseChallenge(value string) (*Challenge, error) {
	value = strings.TrimSpace(value)

	scheme, rest, _ := strings.Cut(value, " ")
	if scheme != "Digest" {
		return nil, fmt.Errorf("%w: scheme %q", ErrBadChallenge, scheme)
	}

	params := parseAuthParams(rest)
	challenge := &Challenge{
		Realm: params["realm"],
		Nonce: params["nonce"],
	}
	if challenge.Realm == "" || challenge.Nonce == "" {
		return nil, fmt.Errorf("%w: realm or nonce missing", ErrBadChallenge)
	}

	return challenge, nil
}

// DigestAuthorization produces the Authorization header value for the
// given request using the RFC 2617 construction without qop:
//
//	HA1 = MD5(username:realm:password)
//	HA2 = MD5(method:uri)
//	response = MD5(HA1:nonce:HA2)
//
// Cameras validate this text verbatim, so the field order is fixed.
func DigestAuthorization(username, password string, challenge *Challenge, method, uri string) string {
	ha1 := md5Hex(username + ":" + challenge.Realm + ":" + password)
	ha2 := md5Hex(method + ":" + uri)
	response := md5Hex(ha1 + ":" + challenge.Nonce + ":" + ha2)

	return fmt.Sprintf(
		`Digest username="%s", realm="%s", nonce="%s", uri="%s", response="%s"`,
		username, challenge.Realm, challenge.Nonce, uri, response,
	)
}

// parseAuthParams parses `realm="X", nonce="Y"` style parameter lists.
func parseAuthParams(s string) map[string]string {
	params := make(map[string]string)

	for _, part := range splitAuthParams(s) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), "\"")
		params[key] = value
	}

	return params
}

// splitAuthParams splits on commas while respecting quoted strings.
func splitAuthParams(s string) []string {
	var parts []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(s); i++ {
		ch := s[i]

		switch {
		case ch == '"':
			inQuotes = !inQuotes
			current.WriteByte(ch)
		case ch == ',' && !inQuotes:
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteByte(ch)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

func md5Hex(data string) string {
	hash := md5.Sum([]byte(data))
	return fmt.Sprintf("%x", hash)
}
