// Package server implements Skillet's TCP evaluation protocol: a
// newline-delimited JSON request/response exchange over a persistent
// connection, grounded on the teacher's Protocol wrapper
// (pkg/fastcgi/protocol.go) but replacing FastCGI's binary record
// framing with line-delimited JSON, since Skillet requests/responses
// are small scalar-ish payloads rather than streamed CGI output.
package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"

	"github.com/google/uuid"
)

// Request is one evaluation request read off the wire.
type Request struct {
	ID         string                 `json:"id"`
	Expression string                 `json:"expression"`
	Args       map[string]interface{} `json:"args"`
}

// Response is the corresponding reply.
type Response struct {
	ID      string      `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   string      `json:"error,omitempty"`
	CacheHit bool       `json:"cache_hit,omitempty"`
}

// Protocol wraps a net.Conn with buffered line-delimited JSON framing.
type Protocol struct {
	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer
}

// NewProtocol wraps conn for newline-delimited JSON request/response
// exchange.
func NewProtocol(conn net.Conn) *Protocol {
	return &Protocol{
		conn:   conn,
		reader: bufio.NewReader(conn),
		writer: bufio.NewWriter(conn),
	}
}

// ReadRequest reads one JSON-encoded line and decodes it as a Request.
// A request with no ID is assigned one so responses can always be
// correlated.
func (p *Protocol) ReadRequest() (*Request, error) {
	line, err := p.reader.ReadBytes('\n')
	if err != nil {
		return nil, err
	}

	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		return nil, fmt.Errorf("server: malformed request: %w", err)
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	return &req, nil
}

// WriteResponse encodes resp as a JSON line and flushes it.
func (p *Protocol) WriteResponse(resp *Response) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if _, err := p.writer.Write(b); err != nil {
		return err
	}
	if _, err := p.writer.Write([]byte{'\n'}); err != nil {
		return err
	}
	return p.writer.Flush()
}

// Close closes the underlying connection.
func (p *Protocol) Close() error {
	return p.conn.Close()
}
