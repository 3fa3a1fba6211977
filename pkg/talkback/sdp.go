package talkback

import (
	"fmt"
	"strings"

	"github.com/pion/sdp/v3"
)

// backchannelControl returns the control path of the first media
// section marked a=sendonly, which is the track the camera accepts
// audio on. A description without such a section, or a send-only
// section without a control attribute, is a handshake failure rather
// than a silent default.
func backchannelControl(body string) (string, error) {
	description := &sdp.SessionDescription{}
	if err := description.Unmarshal([]byte(body)); err != nil {
		return "", fmt.Errorf("%w: invalid session description: %v", ErrHandshake, err)
	}

	for _, media := range description.MediaDescriptions {
		if _, ok := media.Attribute("sendonly"); !ok {
			continue
		}

		control, ok := media.Attribute("control")
		if !ok || control == "" {
			return "", fmt.Errorf("%w: send-only track has no control attribute", ErrHandshake)
		}
		return strings.TrimSpace(control), nil
	}

	return "", fmt.Errorf("%w: no send-only track in session description", ErrHandshake)
}

// resolveControlURI joins a relative control path onto the content
// base, normalizing the base to exactly one trailing slash.
func resolveControlURI(contentBase, control string) string {
	return strings.TrimRight(contentBase, "/") + "/" + control
}
