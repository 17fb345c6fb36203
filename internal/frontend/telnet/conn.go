package telnet

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Telnet command and option bytes (RFC 854, RFC 858).
const (
	IAC  byte = 255
	DONT byte = 254
	DO   byte = 253
	WONT byte = 252
	WILL byte = 251
	SB   byte = 250
	GA   byte = 249
	NOP  byte = 241
	SE   byte = 240

	OptEcho            byte = 1
	OptSuppressGoAhead byte = 3
	OptLinemode        byte = 34
)

// MaxLineLength caps a single input line. Longer input is truncated.
const MaxLineLength = 1024

const (
	backspace byte = 0x08
	del       byte = 0x7f
)

// Conn is one terminal session over TCP. Reads are line oriented with
// Telnet negotiation stripped; writes are serialized.
type Conn struct {
	id     uuid.UUID
	raw    net.Conn
	reader *bufio.Reader

	writeMu      sync.Mutex
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewConn wraps raw with a fresh session ID. A zero timeout disables
// the corresponding deadline.
//
// Precondition: raw must be open.
func NewConn(raw net.Conn, readTimeout, writeTimeout time.Duration) *Conn {
	return &Conn{
		id:           uuid.New(),
		raw:          raw,
		reader:       bufio.NewReaderSize(raw, 4096),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// ID identifies the session in logs.
func (c *Conn) ID() uuid.UUID { return c.id }

// RemoteAddr returns the client address.
func (c *Conn) RemoteAddr() net.Addr { return c.raw.RemoteAddr() }

// Negotiate announces that the server suppresses go-ahead.
func (c *Conn) Negotiate() error {
	return c.write([]byte{IAC, WILL, OptSuppressGoAhead})
}

// ReadLine returns the next line without its terminator. Negotiation
// sequences and control characters are dropped and backspace edits the
// line. A final unterminated line is returned together with io.EOF.
func (c *Conn) ReadLine() (string, error) {
	if c.readTimeout > 0 {
		_ = c.raw.SetReadDeadline(time.Now().Add(c.readTimeout))
	}
	raw, err := c.reader.ReadBytes('\n')
	if err != nil && (err != io.EOF || len(raw) == 0) {
		return "", err
	}
	return cleanLine(FilterIAC(raw)), err
}

func cleanLine(b []byte) string {
	out := make([]byte, 0, len(b))
	for _, ch := range b {
		switch {
		case ch == backspace || ch == del:
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case ch < 32 && ch != '\t':
		default:
			if len(out) < MaxLineLength {
				out = append(out, ch)
			}
		}
	}
	return string(out)
}

// WriteLine writes text and a CRLF.
func (c *Conn) WriteLine(text string) error {
	return c.write([]byte(text + "\r\n"))
}

// WriteLines writes each line with a CRLF in a single write.
func (c *Conn) WriteLines(lines []string) error {
	var buf []byte
	for _, l := range lines {
		buf = append(buf, l...)
		buf = append(buf, '\r', '\n')
	}
	return c.write(buf)
}

// WritePrompt writes prompt without a line terminator.
func (c *Conn) WritePrompt(prompt string) error {
	return c.write([]byte(prompt))
}

func (c *Conn) write(b []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.writeTimeout > 0 {
		_ = c.raw.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	if _, err := c.raw.Write(b); err != nil {
		return fmt.Errorf("writing to %s: %w", c.raw.RemoteAddr(), err)
	}
	return nil
}

// Close closes the connection.
func (c *Conn) Close() error {
	return c.raw.Close()
}

// FilterIAC removes Telnet command sequences from input. An escaped
// IAC IAC yields one literal 0xFF byte. A truncated trailing sequence
// is dropped.
func FilterIAC(input []byte) []byte {
	out := make([]byte, 0, len(input))
	for i := 0; i < len(input); {
		if input[i] != IAC {
			out = append(out, input[i])
			i++
			continue
		}
		if i+1 >= len(input) {
			break
		}
		switch input[i+1] {
		case WILL, WONT, DO, DONT:
			i += 3
		case SB:
			j := i + 2
			for j < len(input) && !(input[j] == IAC && j+1 < len(input) && input[j+1] == SE) {
				j++
			}
			i = j + 2
		case IAC:
			out = append(out, IAC)
			i += 2
		default:
			i += 2
		}
	}
	return out
}
