// Package testutil holds helpers shared by integration tests.
package testutil

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/rowolff/bb-character-sheet/internal/frontend/telnet"
)

// TelnetClient drives a loot terminal session from a test.
type TelnetClient struct {
	t      *testing.T
	conn   net.Conn
	reader *bufio.Reader
}

// NewTelnetClient dials addr. The connection is closed on test cleanup.
func NewTelnetClient(t *testing.T, addr string) *TelnetClient {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		t.Fatalf("connecting to %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return &TelnetClient{t: t, conn: conn, reader: bufio.NewReader(conn)}
}

// ReadUntil reads until the plain text of the output contains substr.
// Telnet negotiation and ANSI styling are removed from the result.
func (c *TelnetClient) ReadUntil(substr string, timeout time.Duration) string {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))

	var raw []byte
	tmp := make([]byte, 1024)
	for {
		n, err := c.reader.Read(tmp)
		raw = append(raw, tmp[:n]...)
		text := telnet.StripANSI(string(telnet.FilterIAC(raw)))
		if strings.Contains(text, substr) {
			return text
		}
		if err != nil {
			c.t.Fatalf("reading until %q: got %q: %v", substr, text, err)
		}
	}
}

// Send writes text followed by CRLF.
func (c *TelnetClient) Send(text string) {
	c.t.Helper()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if _, err := fmt.Fprintf(c.conn, "%s\r\n", text); err != nil {
		c.t.Fatalf("sending %q: %v", text, err)
	}
}

// Command sends line and returns the output up to the next prompt.
func (c *TelnetClient) Command(line, prompt string) string {
	c.t.Helper()
	c.Send(line)
	return c.ReadUntil(prompt, 5*time.Second)
}

// Close closes the connection.
func (c *TelnetClient) Close() {
	_ = c.conn.Close()
}
