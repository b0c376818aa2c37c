// Package console implements the host side of the pi-key maintenance
// console: line out, payload lines back, terminated by ok or error.
package console

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	devconsole "github.com/puckawayjeff/pi-key/console"
	"github.com/puckawayjeff/pi-key/host/serial"
)

// responseTimeout bounds how long Do waits for the terminating ok or
// error line. Event dumps are the longest responses and still finish
// well inside this.
const responseTimeout = 2 * time.Second

// Client drives one console session over a serial port.
type Client struct {
	port serial.Port
	buf  []byte
}

// Dial opens the device and discards anything the firmware printed
// before we attached, like the maintenance banner.
func Dial(device string) (*Client, error) {
	port, err := serial.Open(serial.DefaultConfig(device))
	if err != nil {
		return nil, err
	}
	c := NewClient(port)

	// Give the device time to settle if it just enumerated.
	time.Sleep(100 * time.Millisecond)
	c.drain()
	return c, nil
}

// NewClient wraps an already-open port.
func NewClient(port serial.Port) *Client {
	return &Client{port: port}
}

// Close closes the underlying port.
func (c *Client) Close() error {
	return c.port.Close()
}

// Do sends one command line and collects the response. The returned
// slice holds the payload lines; the terminating ok line is consumed
// and an error line becomes the returned error.
func (c *Client) Do(line string) ([]string, error) {
	if _, err := c.port.Write([]byte(line + "\n")); err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}

	deadline := time.Now().Add(responseTimeout)
	var out []string
	for {
		resp, err := c.readLine(deadline)
		if err != nil {
			return out, err
		}
		switch {
		case resp == "ok":
			return out, nil
		case strings.HasPrefix(resp, "error: "):
			return out, errors.New(strings.TrimPrefix(resp, "error: "))
		default:
			out = append(out, resp)
		}
	}
}

// PushSetting sends a set command with the value quoted and a CRC
// trailer attached, so line noise cannot silently corrupt a macro.
func (c *Client) PushSetting(key, value string) error {
	line := "set " + key + " " + devconsole.QuoteArg(value) + " " + devconsole.CRCArg(value)
	_, err := c.Do(line)
	return err
}

// readLine returns the next CRLF- or LF-terminated line, polling the
// port until the deadline.
func (c *Client) readLine(deadline time.Time) (string, error) {
	chunk := make([]byte, 256)
	for {
		if i := bytes.IndexByte(c.buf, '\n'); i >= 0 {
			line := strings.TrimRight(string(c.buf[:i]), "\r")
			c.buf = c.buf[i+1:]
			return line, nil
		}
		if time.Now().After(deadline) {
			return "", errors.New("timed out waiting for device response")
		}
		n, err := c.port.Read(chunk)
		if err != nil {
			return "", fmt.Errorf("read failed: %w", err)
		}
		if n == 0 {
			// Port read timeout, poll again.
			continue
		}
		c.buf = append(c.buf, chunk[:n]...)
	}
}

// drain discards buffered input until a read comes back empty.
func (c *Client) drain() {
	chunk := make([]byte, 256)
	for {
		n, err := c.port.Read(chunk)
		if err != nil || n == 0 {
			return
		}
	}
}
