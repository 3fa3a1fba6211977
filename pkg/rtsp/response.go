package rtsp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidResponse indicates a malformed RTSP response
var ErrInvalidResponse = errors.New("invalid RTSP response")

// Response represents a parsed RTSP response.
type Response struct {
	StatusLine string
	StatusCode int
	Header     textproto.MIMEHeader
	Body       string
}

// OK reports whether the response signals success.
func (r *Response) OK() bool {
	return r.StatusCode == 200
}

// Session extracts the session identifier and the advisory timeout
// from the Session header. "abc123;timeout=60" yields ("abc123", 60s).
// The identifier is empty when the header is absent.
func (r *Response) Session() (string, time.Duration) {
	value := r.Header.Get("Session")
	if value == "" {
		return "", 0
	}

	parts := strings.Split(value, ";")
	id := strings.TrimSpace(parts[0])

	var timeout time.Duration
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "timeout=") {
			if seconds, err := strconv.Atoi(strings.TrimPrefix(part, "timeout=")); err == nil {
				timeout = time.Duration(seconds) * time.Second
			}
		}
	}

	return id, timeout
}

// ServerPort extracts the first port of the server_port=n-m parameter
// inside the Transport header.
func (r *Response) ServerPort() (int, bool) {
	transport := r.Header.Get("Transport")
	if transport == "" {
		return 0, false
	}

	for _, part := range strings.Split(transport, ";") {
		part = strings.TrimSpace(part)
		if !strings.HasPrefix(part, "server_port=") {
			continue
		}

		portRange := strings.TrimPrefix(part, "server_port=")
		first, _, _ := strings.Cut(portRange, "-")
		port, err := strconv.Atoi(first)
		if err != nil || port <= 0 {
			return 0, false
		}
		return port, true
	}

	return 0, false
}

// readResponse reads one complete RTSP response from reader. The
// header block is consumed line by line until its terminating blank
// line, and the body, when a Content-Length is advertised, is read in
// full. Partial arrivals block until the remainder shows up.
func readResponse(reader *bufio.Reader) (*Response, error) {
	tp := textproto.NewReader(reader)

	statusLine, err := tp.ReadLine()
	if err != nil {
		return nil, fmt.Errorf("read status line: %w", err)
	}

	statusCode, err := parseStatusLine(statusLine)
	if err != nil {
		return nil, err
	}

	header, err := tp.ReadMIMEHeader()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	body := ""
	if lengthValue := header.Get("Content-Length"); lengthValue != "" {
		length, err := strconv.Atoi(lengthValue)
		if err != nil || length < 0 {
			return nil, fmt.Errorf("%w: bad Content-Length %q", ErrInvalidResponse, lengthValue)
		}
		if length > 0 {
			buf := make([]byte, length)
			if _, err := io.ReadFull(reader, buf); err != nil {
				return nil, fmt.Errorf("read body: %w", err)
			}
			body = string(buf)
		}
	}

	return &Response{
		StatusLine: statusLine,
		StatusCode: statusCode,
		Header:     header,
		Body:       body,
	}, nil
}

// parseStatusLine parses "RTSP/1.0 200 OK" into its status code.
func parseStatusLine(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 || !strings.HasPrefix(fields[0], "RTSP/") {
		return 0, fmt.Errorf("%w: status line %q", ErrInvalidResponse, line)
	}

	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("%w: status code in %q", ErrInvalidResponse, line)
	}

	return code, nil
}
