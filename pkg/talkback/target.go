package talkback

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidURL indicates the camera URL could not be parsed
var ErrInvalidURL = errors.New("invalid RTSP URL")

// Target identifies a camera control endpoint plus optional
// credentials, parsed once from an rtsp:// URL and immutable after.
type Target struct {
	Host     string
	Port     int
	Path     string // no leading slash
	Username string
	Password string
}

// ParseTarget parses an rtsp:// URL into a Target. The port defaults
// to 554 when absent.
func ParseTarget(rawURL string) (*Target, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("%w: empty URL", ErrInvalidURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "rtsp" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: host missing", ErrInvalidURL)
	}

	port := 554
	if u.Port() != "" {
		port, err = strconv.Atoi(u.Port())
		if err != nil {
			return nil, fmt.Errorf("%w: port %q", ErrInvalidURL, u.Port())
		}
	}

	target := &Target{
		Host: u.Hostname(),
		Port: port,
		Path: strings.TrimPrefix(u.Path, "/"),
	}
	if u.User != nil {
		target.Username = u.User.Username()
		target.Password, _ = u.User.Password()
	}

	return target, nil
}

// hasCredentials reports whether authenticated requests are possible.
func (t *Target) hasCredentials() bool {
	return t.Username != "" && t.Password != ""
}

// baseURI is the control URI derived from the target.
func (t *Target) baseURI() string {
	return fmt.Sprintf("rtsp://%s:%d/%s", t.Host, t.Port, t.Path)
}
