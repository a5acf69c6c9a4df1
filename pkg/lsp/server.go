package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	neturl "net/url"
	"strings"
	"sync"
	"unicode/utf8"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/tconf/tconf/pkg/config"
	"github.com/tconf/tconf/pkg/diag"
	"github.com/tconf/tconf/pkg/eval"
	"github.com/tconf/tconf/pkg/eval/vals"
	"github.com/tconf/tconf/pkg/parse"
	"github.com/tconf/tconf/pkg/url"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

type server struct {
	opts eval.Options

	mu      sync.Mutex
	content map[lsp.DocumentURI]string
}

func newServer(opts eval.Options) *server {
	return &server{opts: opts, content: make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":             s.initialize,
		"textDocument/didOpen":   s.didOpen,
		"textDocument/didChange": s.didChange,
		"textDocument/didClose":  s.didClose,
		"textDocument/hover":     s.hover,
		"shutdown":               noop,
		"exit":                   exit,

		// Required by the protocol.
		"initialized": noop,
		// Sent by clients even when the server doesn't advertise support.
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func exit(_ context.Context, conn jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, conn.Close()
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			logger.Debug().Str("method", req.Method).Msg("method not found")
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			HoverProvider: true,
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	s.update(ctx, conn, params.TextDocument.URI, params.TextDocument.Text)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}
	// Only full changes are advertised in initialize, so the last change holds
	// the whole text.
	s.update(ctx, conn, params.TextDocument.URI,
		params.ContentChanges[len(params.ContentChanges)-1].Text)
	return nil, nil
}

func (s *server) didClose(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	s.mu.Lock()
	delete(s.content, params.TextDocument.URI)
	s.mu.Unlock()
	// Clear the diagnostics of the closed document.
	return nil, conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: params.TextDocument.URI, Diagnostics: []lsp.Diagnostic{}})
}

func (s *server) update(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	s.mu.Lock()
	s.content[uri] = content
	s.mu.Unlock()
	go publishDiagnostics(ctx, conn, uri, content, s.opts)
}

func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	s.mu.Lock()
	content, ok := s.content[params.TextDocument.URI]
	s.mu.Unlock()
	if !ok {
		return lsp.Hover{}, nil
	}

	src := parse.Source{URL: documentURL(params.TextDocument.URI), Code: content}
	// Tokens before a lexical error are still usable.
	tokens, _ := parse.Lex(src)
	idx := lspPositionToIdx(content, params.Position)
	for _, t := range tokens {
		if t.From <= idx && idx < t.To {
			v := literalValue(t)
			if v == nil {
				break
			}
			rg := lspRangeFromRange(content, t)
			return lsp.Hover{
				Contents: []lsp.MarkedString{{Language: "tconf", Value: describeValue(v)}},
				Range:    &rg,
			}, nil
		}
	}
	return lsp.Hover{}, nil
}

// Returns the value of a literal token, or nil for other tokens.
func literalValue(t parse.Token) vals.Value {
	switch t.Kind {
	case parse.IntegerToken:
		return vals.Int(t.Int)
	case parse.FloatToken:
		return vals.Float(t.Float)
	case parse.StringToken:
		return vals.String(t.Value)
	case parse.ColorToken:
		return vals.ColorFromRGBA32(t.Color)
	case parse.URLToken:
		return vals.NewURL(url.Parse(t.Value))
	}
	return nil
}

func describeValue(v vals.Value) string {
	if c, ok := v.(vals.Color); ok {
		r, g, b, a := c.SRGB8()
		return fmt.Sprintf("color %s (r=%d g=%d b=%d a=%d)", c.Hex(), r, g, b, a)
	}
	return vals.KindOf(v).String() + " " + vals.ReprPlain(v)
}

func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string, opts eval.Options) {
	err := conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics(uri, content, opts)})
	if err != nil {
		logger.Debug().Err(err).Str("uri", string(uri)).Msg("failed to publish diagnostics")
	}
}

func diagnostics(uri lsp.DocumentURI, content string, opts eval.Options) []lsp.Diagnostic {
	src := parse.Source{URL: documentURL(uri), Code: content}
	cfg := config.LoadSource(src, config.Options{Eval: opts})
	if cfg.Success() {
		return []lsp.Diagnostic{}
	}
	var e *diag.Error
	if !errors.As(cfg.Err(), &e) {
		return []lsp.Diagnostic{{Severity: lsp.Error, Source: "eval", Message: cfg.ErrorMessage()}}
	}
	message := e.Message
	if e.PreviousMsg != "" {
		message += "\n" + e.PreviousMsg
	}
	return []lsp.Diagnostic{{
		Range:    errorRange(src, e),
		Severity: lsp.Error,
		Source:   diagnosticSource(e.Kind),
		Message:  message,
	}}
}

func diagnosticSource(k diag.Kind) string {
	if k == diag.Parse {
		return "parse"
	}
	return "eval"
}

// Returns the range of an error within src. Errors located in other files are
// put at the start of the document.
func errorRange(src parse.Source, e *diag.Error) lsp.Range {
	if e.Context != nil && e.Context.Name == src.URL.String() && e.Context.Source == src.Code {
		return lspRangeFromRange(src.Code, e.Context)
	}
	if e.Location.URL == src.URL && e.Location.Line > 0 {
		idx := idxFromLineColumn(src.Code, e.Location.Line, e.Location.Column)
		pos := lspPositionFromIdx(src.Code, idx)
		return lsp.Range{Start: pos, End: pos}
	}
	return lsp.Range{}
}

// Converts a document URI like "file:///a/b.conf" to a URL.
func documentURL(uri lsp.DocumentURI) url.URL {
	u, err := neturl.Parse(string(uri))
	if err != nil || u.Scheme == "" {
		return url.Parse(string(uri))
	}
	if u.Scheme == "file" {
		return url.FromPath(u.Path)
	}
	return url.New(u.Scheme, u.Path)
}

func idxFromLineColumn(s string, line, col int) int {
	idx := 0
	for l := 1; l < line; l++ {
		i := strings.IndexByte(s[idx:], '\n')
		if i < 0 {
			return len(s)
		}
		idx += i + 1
	}
	for c := 1; c < col && idx < len(s); c++ {
		_, size := utf8.DecodeRuneInString(s[idx:])
		idx += size
	}
	return idx
}

func lspRangeFromRange(s string, r diag.Ranger) lsp.Range {
	rg := r.Range()
	return lsp.Range{
		Start: lspPositionFromIdx(s, rg.From),
		End:   lspPositionFromIdx(s, rg.To),
	}
}

func lspPositionToIdx(s string, pos lsp.Position) int {
	var idx int
	walkString(s, func(i int, p lsp.Position) bool {
		idx = i
		return p.Line < pos.Line || (p.Line == pos.Line && p.Character < pos.Character)
	})
	return idx
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	var pos lsp.Position
	walkString(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// Generates (index, lspPosition) pairs in s, stopping if f returns false.
func walkString(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	lastCR := false

	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if !lastCR {
				p.Line++
				p.Character = 0
			}
		case r <= 0xFFFF:
			// One UTF-16 code unit.
			p.Character++
		default:
			// A surrogate pair.
			p.Character += 2
		}
		lastCR = r == '\r'
	}
	f(len(s), p)
}
