package rtsp

import (
	"fmt"
	"strings"
)

// Header is a single name/value pair. Requests carry headers as an
// ordered slice so the wire form is deterministic.
type Header struct {
	Name  string
	Value string
}

// Request represents an RTSP 1.0 request. CSeq is always emitted as
// the first header after the request line.
type Request struct {
	Method  string
	URI     string
	CSeq    int
	Headers []Header
}

// Marshal renders the request in RTSP wire form.
func (r *Request) Marshal() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s RTSP/1.0\r\n", r.Method, r.URI)
	fmt.Fprintf(&b, "CSeq: %d\r\n", r.CSeq)
	for _, h := range r.Headers {
		fmt.Fprintf(&b, "%s: %s\r\n", h.Name, h.Value)
	}
	b.WriteString("\r\n")

	return b.String()
}
