package redisserver

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Protocol limits. Lookup commands are short, so these are far below
// what Redis itself accepts.
const (
	MaxArrayLen  = 256
	MaxBulkLen   = 64 * 1024
	MaxInlineLen = 4 * 1024
)

var (
	ErrProtocol      = errors.New("resp: protocol error")
	ErrLimitExceeded = errors.New("resp: limit exceeded")
)

// ReadCommand reads one command, either a RESP array of bulk strings or
// an inline line such as "PING\r\n". A blank line yields no arguments.
func ReadCommand(r *bufio.Reader) ([][]byte, error) {
	b, err := r.Peek(1)
	if err != nil {
		return nil, err
	}
	if b[0] == '*' {
		return readArray(r)
	}

	line, err := readLine(r, MaxInlineLen)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	args := make([][]byte, len(fields))
	for i, f := range fields {
		args[i] = []byte(f)
	}
	return args, nil
}

func readArray(r *bufio.Reader) ([][]byte, error) {
	n, err := readLength(r, '*', MaxArrayLen)
	if err != nil || n <= 0 {
		return nil, err
	}
	args := make([][]byte, 0, n)
	for range n {
		arg, err := readBulk(r)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func readBulk(r *bufio.Reader) ([]byte, error) {
	n, err := readLength(r, '$', MaxBulkLen)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, nil
	}
	buf := make([]byte, n+2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	if buf[n] != '\r' || buf[n+1] != '\n' {
		return nil, fmt.Errorf("%w: bulk string not terminated by CRLF", ErrProtocol)
	}
	return buf[:n], nil
}

// readLength parses a "<prefix><n>\r\n" header. -1 is the only negative
// length allowed.
func readLength(r *bufio.Reader, prefix byte, limit int) (int, error) {
	line, err := readLine(r, 32)
	if err != nil {
		return 0, err
	}
	if len(line) < 2 || line[0] != prefix {
		return 0, fmt.Errorf("%w: expected %q header, got %q", ErrProtocol, prefix, line)
	}
	n, err := strconv.Atoi(line[1:])
	if err != nil || n < -1 {
		return 0, fmt.Errorf("%w: bad length %q", ErrProtocol, line[1:])
	}
	if n > limit {
		return 0, fmt.Errorf("%w: length %d over %d", ErrLimitExceeded, n, limit)
	}
	return n, nil
}

func readLine(r *bufio.Reader, limit int) (string, error) {
	var buf []byte
	for {
		frag, err := r.ReadSlice('\n')
		buf = append(buf, frag...)
		if len(buf) > limit {
			return "", fmt.Errorf("%w: line over %d bytes", ErrLimitExceeded, limit)
		}
		if err == nil {
			break
		}
		if !errors.Is(err, bufio.ErrBufferFull) {
			return "", err
		}
	}
	line, ok := bytes.CutSuffix(buf, []byte("\r\n"))
	if !ok {
		return "", fmt.Errorf("%w: line not terminated by CRLF", ErrProtocol)
	}
	return string(line), nil
}

// Writer encodes replies. The first write error sticks and later writes
// are dropped; Flush reports it.
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) write(parts ...string) {
	for _, p := range parts {
		if w.err != nil {
			return
		}
		_, w.err = w.w.WriteString(p)
	}
}

// Status writes a simple string such as +OK.
func (w *Writer) Status(s string) { w.write("+", s, "\r\n") }

// Error writes an error reply. Line breaks in s are replaced.
func (w *Writer) Error(s string) {
	w.write("-", strings.NewReplacer("\r", " ", "\n", " ").Replace(s), "\r\n")
}

// Int writes an integer reply.
func (w *Writer) Int(n int64) { w.write(":", strconv.FormatInt(n, 10), "\r\n") }

// Bulk writes a bulk string. A nil slice is the nil bulk.
func (w *Writer) Bulk(b []byte) {
	if b == nil {
		w.Nil()
		return
	}
	w.write("$", strconv.Itoa(len(b)), "\r\n", string(b), "\r\n")
}

// BulkString writes s as a bulk string.
func (w *Writer) BulkString(s string) { w.write("$", strconv.Itoa(len(s)), "\r\n", s, "\r\n") }

// Nil writes the nil bulk string.
func (w *Writer) Nil() { w.write("$-1\r\n") }

// Array writes an array header. The caller writes n elements after it.
func (w *Writer) Array(n int) { w.write("*", strconv.Itoa(n), "\r\n") }

// Flush sends buffered replies.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}

func commandName(b []byte) string {
	return strings.ToUpper(string(b))
}
