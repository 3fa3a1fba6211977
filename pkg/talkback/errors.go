package talkback

import "errors"

// The three failure classes of a talk-back session. Start wraps every
// fatal condition in exactly one of them; callers match with errors.Is.
var (
	// ErrConnect covers socket, connect and timeout failures.
	ErrConnect = errors.New("failed to reach camera")
	// ErrAuth covers missing credentials and a camera that never
	// issued a digest challenge.
	ErrAuth = errors.New("digest authentication failed")
	// ErrHandshake covers a missing required header or body element,
	// a non-success status on a required step, and a session
	// description without a send-only track.
	ErrHandshake = errors.New("RTSP handshake failed")
)
