package server

import (
	"context"
	"net"

	"github.com/sourcegraph/jsonrpc2"
)

// Client is the daemon-side counterpart used by CLI commands to talk
// to a running daemon over its socket.
type Client struct {
	conn *jsonrpc2.Conn
}

type noopHandler struct{}

func (noopHandler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {}

// Dial connects to the daemon socket and wraps the connection in a
// JSON-RPC client. The client never receives server-initiated requests,
// so incoming ones are dropped by noopHandler.
func Dial(ctx context.Context, socketPath string) (*Client, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, err
	}

	stream := jsonrpc2.NewBufferedStream(conn, jsonrpc2.PlainObjectCodec{})
	return &Client{conn: jsonrpc2.NewConn(ctx, stream, noopHandler{})}, nil
}

func (c *Client) Call(ctx context.Context, method string, params, result interface{}) error {
	return c.conn.Call(ctx, method, params, result)
}

func (c *Client) Close() error {
	return c.conn.Close()
}
