package talkback

import (
	"bufio"
	"fmt"
	"net"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// cameraRequest is one request as the fake camera received it.
type cameraRequest struct {
	Method string
	URI    string
	CSeq   int
	Header textproto.MIMEHeader
}

// fakeCamera is a scripted camera: it accepts one control connection
// and answers each request with the next canned response. When the
// script runs out, or the client hangs up, the connection is closed
// and clientGone is signalled.
type fakeCamera struct {
	listener  net.Listener
	responses []string

	mu       sync.Mutex
	requests []cameraRequest

	clientGone chan struct{}
}

func newFakeCamera(t *testing.T, responses ...string) *fakeCamera {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	camera := &fakeCamera{
		listener:   listener,
		responses:  responses,
		clientGone: make(chan struct{}),
	}
	go camera.serve()

	t.Cleanup(func() { listener.Close() })
	return camera
}

func (c *fakeCamera) port() int {
	return c.listener.Addr().(*net.TCPAddr).Port
}

// url builds the camera URL with the given userinfo, e.g. "admin:1234@".
func (c *fakeCamera) url(userinfo string) string {
	return fmt.Sprintf("rtsp://%s127.0.0.1:%d/media", userinfo, c.port())
}

func (c *fakeCamera) baseURI() string {
	return fmt.Sprintf("rtsp://127.0.0.1:%d/media", c.port())
}

func (c *fakeCamera) snapshot() []cameraRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]cameraRequest(nil), c.requests...)
}

// waitClientGone fails the test unless the client releases the control
// connection.
func (c *fakeCamera) waitClientGone(t *testing.T) {
	t.Helper()
	select {
	case <-c.clientGone:
	case <-time.After(2 * time.Second):
		t.Fatal("client did not release the control connection")
	}
}

func (c *fakeCamera) serve() {
	conn, err := c.listener.Accept()
	if err != nil {
		close(c.clientGone)
		return
	}
	defer conn.Close()

	reader := bufio.NewReader(conn)
	for i := 0; ; i++ {
		req, err := readCameraRequest(reader)
		if err != nil {
			close(c.clientGone)
			return
		}

		c.mu.Lock()
		c.requests = append(c.requests, req)
		c.mu.Unlock()

		if i >= len(c.responses) {
			close(c.clientGone)
			return
		}
		conn.Write([]byte(c.responses[i]))
	}
}

func readCameraRequest(reader *bufio.Reader) (cameraRequest, error) {
	tp := textproto.NewReader(reader)

	line, err := tp.ReadLine()
	if err != nil {
		return cameraRequest{}, err
	}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return cameraRequest{}, fmt.Errorf("bad request line %q", line)
	}

	header, err := tp.ReadMIMEHeader()
	if err != nil {
		return cameraRequest{}, err
	}
	cseq, _ := strconv.Atoi(header.Get("CSeq"))

	return cameraRequest{
		Method: fields[0],
		URI:    fields[1],
		CSeq:   cseq,
		Header: header,
	}, nil
}

// Canned responses.

const (
	testRealm     = "IP Camera"
	testNonce     = "abc"
	testSessionID = "abc123"
)

func challenge401() string {
	return "RTSP/1.0 401 Unauthorized\r\n" +
		"CSeq: 1\r\n" +
		`WWW-Authenticate: Digest realm="` + testRealm + `", nonce="` + testNonce + `"` + "\r\n" +
		"\r\n"
}

func describe200(contentBase, body string) string {
	resp := "RTSP/1.0 200 OK\r\nCSeq: 2\r\n"
	if contentBase != "" {
		resp += "Content-Base: " + contentBase + "\r\n"
	}
	resp += "Content-Type: application/sdp\r\n"
	resp += fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(body), body)
	return resp
}

func setup200(extras string) string {
	return "RTSP/1.0 200 OK\r\n" +
		"CSeq: 3\r\n" +
		extras +
		"\r\n"
}

func ok200(cseq int) string {
	return fmt.Sprintf("RTSP/1.0 200 OK\r\nCSeq: %d\r\n\r\n", cseq)
}

func status(code int, reason string, cseq int) string {
	return fmt.Sprintf("RTSP/1.0 %d %s\r\nCSeq: %d\r\n\r\n", code, reason, cseq)
}
