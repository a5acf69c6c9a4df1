// Package lsp implements a language server for configuration files.
//
// The server publishes diagnostics for open documents, evaluating them with
// includes resolved against the filesystem, and shows the values of literals
// on hover.
package lsp

import (
	"context"
	"io"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/tconf/tconf/pkg/eval"
	"github.com/tconf/tconf/pkg/logutil"
)

var logger = logutil.GetLogger("lsp")

// Serve runs a language server speaking over in and out until the client
// sends "exit", the connection is closed, or ctx is done.
func Serve(ctx context.Context, in io.Reader, out io.Writer, opts eval.Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s := newServer(opts)
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(transport{in, out}, jsonrpc2.VSCodeObjectCodec{}),
		handler(s))
	logger.Debug().Msg("serving")
	select {
	case <-conn.DisconnectNotify():
	case <-ctx.Done():
		conn.Close()
	}
	logger.Debug().Msg("disconnected")
	return nil
}

type transport struct {
	in  io.Reader
	out io.Writer
}

func (c transport) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c transport) Write(p []byte) (int, error) { return c.out.Write(p) }

func (c transport) Close() error {
	var err error
	if closer, ok := c.in.(io.Closer); ok {
		err = closer.Close()
	}
	if closer, ok := c.out.(io.Closer); ok && any(closer) != any(c.in) {
		if err2 := closer.Close(); err == nil {
			err = err2
		}
	}
	return err
}
