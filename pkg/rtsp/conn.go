package rtsp

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

// ErrConnClosed indicates an operation on a closed control connection
var ErrConnClosed = errors.New("connection closed")

// Conn is the RTSP control connection to a camera. It owns the
// underlying TCP socket and a persistent read buffer, so a response
// arriving in fragments across reads is still assembled into one
// complete message. Exactly one caller operates a Conn at a time.
type Conn struct {
	conn    net.Conn
	reader  *bufio.Reader
	timeout time.Duration
	closed  bool
}

// Dial opens a control connection to host:port, bounded by timeout.
// The same timeout applies to every subsequent write and read.
func Dial(host string, port int, timeout time.Duration) (*Conn, error) {
	address := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}

	return &Conn{
		conn:    conn,
		reader:  bufio.NewReader(conn),
		timeout: timeout,
	}, nil
}

// WriteRequest sends a single request on the control connection.
func (c *Conn) WriteRequest(req *Request) error {
	if c.closed {
		return ErrConnClosed
	}

	c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
	if _, err := c.conn.Write([]byte(req.Marshal())); err != nil {
		return fmt.Errorf("write %s request: %w", req.Method, err)
	}
	return nil
}

// ReadResponse blocks until a complete response (header block plus any
// Content-Length body) has arrived, or the read deadline expires.
func (c *Conn) ReadResponse() (*Response, error) {
	if c.closed {
		return nil, ErrConnClosed
	}

	c.conn.SetReadDeadline(time.Now().Add(c.timeout))
	return readResponse(c.reader)
}

// Close releases the connection. Safe to call multiple times and on a
// connection whose last operation failed.
func (c *Conn) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.conn.Close()
}

// Closed reports whether Close has been called.
func (c *Conn) Closed() bool {
	return c.closed
}
