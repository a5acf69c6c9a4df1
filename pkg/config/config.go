// Package config loads configuration files and provides access to their
// values.
//
// A typical use looks like this:
//
//	cfg := config.Load(url.FromPath("app.conf"), config.Options{})
//	if !cfg.Success() {
//		log.Fatal(cfg.ErrorMessage())
//	}
//	port, err := config.Value[int](cfg, "server.port")
package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tconf/tconf/pkg/diag"
	"github.com/tconf/tconf/pkg/eval"
	"github.com/tconf/tconf/pkg/eval/errs"
	"github.com/tconf/tconf/pkg/eval/vals"
	"github.com/tconf/tconf/pkg/logutil"
	"github.com/tconf/tconf/pkg/parse"
	"github.com/tconf/tconf/pkg/store"
	"github.com/tconf/tconf/pkg/url"
)

var logger = logutil.GetLogger("config")

// Options controls loading.
type Options struct {
	Eval eval.Options
	// If not nil, evaluated files are cached in and loaded from Store.
	Store *store.Store
}

// Config is a loaded configuration. It is immutable, except through the maps
// and vectors returned by its methods.
type Config struct {
	url url.URL
	// Syntax tree of the top-level file, nil if it could not be parsed.
	tree *parse.Object
	// Nil on failure.
	root      *vals.Map
	err       error
	files     []eval.File
	fromCache bool
}

// Load reads, parses and evaluates the file named by u. Failures are recorded
// in the returned Config, never returned.
func Load(u url.URL, opts Options) *Config {
	cfg := &Config{url: u}
	if opts.Store != nil {
		root, ok, err := opts.Store.Get(u, opts.Eval.Getwd)
		if err != nil {
			logger.Warn().Err(err).Stringer("url", u).Msg("cache lookup failed")
		} else if ok {
			// The store has just checked that the file is unchanged, so its
			// tree is the one the cached root was evaluated from.
			if tree, err := parseFile(u, opts.Eval.ReadFile); err == nil {
				logger.Debug().Stringer("url", u).Msg("cache hit")
				cfg.tree, cfg.root, cfg.fromCache = tree, root, true
				return cfg
			}
		}
		logger.Debug().Stringer("url", u).Msg("cache miss")
	}

	ev := eval.NewEvaler(opts.Eval)
	root, err := ev.EvalFile(u)
	cfg.tree = ev.Tree()
	cfg.root = root
	cfg.fail(err)
	cfg.files = ev.Files()

	if opts.Store != nil && cfg.root != nil {
		wd, _ := ev.Wd()
		if err := opts.Store.Put(u, cfg.root, cfg.files, wd); err != nil {
			logger.Warn().Err(err).Stringer("url", u).Msg("cache update failed")
		}
	}
	return cfg
}

// LoadSource parses and evaluates source code. The cache is not used.
func LoadSource(src parse.Source, opts Options) *Config {
	cfg := &Config{url: src.URL}
	ev := eval.NewEvaler(opts.Eval)
	tree, err := parse.Parse(src)
	cfg.tree = tree
	if err == nil {
		cfg.root, err = ev.Eval(eval.NewContext(), src, tree)
	}
	cfg.fail(err)
	cfg.files = ev.Files()
	return cfg
}

func parseFile(u url.URL, readFile parse.ReadFileFunc) (*parse.Object, error) {
	if readFile == nil {
		readFile = parse.ReadLocalFile
	}
	src, err := parse.ReadSource(u, readFile)
	if err != nil {
		return nil, err
	}
	return parse.Parse(src)
}

func (cfg *Config) fail(err error) {
	if err != nil {
		cfg.root, cfg.err = nil, err
		logger.Debug().Err(err).Stringer("url", cfg.url).Msg("load failed")
	}
}

// URL returns the URL the configuration was loaded from.
func (cfg *Config) URL() url.URL { return cfg.url }

// Success reports whether the configuration was loaded successfully.
func (cfg *Config) Success() bool { return cfg.root != nil }

// Err returns the error that caused loading to fail, or nil. It is a
// *diag.Error.
func (cfg *Config) Err() error { return cfg.err }

// ErrorMessage returns the message of the error that caused loading to fail,
// or "" on success. Errors in included files come first, one on each line.
func (cfg *Config) ErrorMessage() string {
	if cfg.err == nil {
		return ""
	}
	return cfg.err.Error()
}

// FromCache reports whether the configuration was loaded from the cache.
func (cfg *Config) FromCache() bool { return cfg.fromCache }

// ASTString returns the syntax tree of the top-level file rendered as source
// code. It is the tree that was evaluated, even if the file has changed since.
// It returns "" if the file could not be read or parsed.
func (cfg *Config) ASTString() string {
	if cfg.tree == nil {
		return ""
	}
	return parse.String(cfg.tree)
}

// RootObject returns the root object, or nil if loading failed.
func (cfg *Config) RootObject() *vals.Map { return cfg.root }

// Files returns the files read while loading, in the order they were first
// read. It is empty for configurations loaded from the cache.
func (cfg *Config) Files() []eval.File { return cfg.files }

// Get returns the value at a dotted path, like "server.ports.0". Map entries
// are selected by key; vector elements by index. The empty path selects the
// root object. It returns vals.Undefined{} if loading failed or there is no
// value at the path.
func (cfg *Config) Get(path string) vals.Value {
	if cfg.root == nil {
		return vals.Undefined{}
	}
	return vals.GetByPath(cfg.root, splitPath(path))
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// Value returns the value at a dotted path converted to T. The supported
// types are those supported by vals.ScanToGo. It is an error of kind
// diag.KeyMissing if there is no value at the path.
func Value[T any](cfg *Config, path string) (T, error) {
	var ret T
	if cfg.err != nil {
		return ret, cfg.err
	}
	v := cfg.Get(path)
	loc := diag.Location{URL: cfg.url}
	if vals.IsUndefined(v) {
		return ret, &diag.Error{Kind: diag.KeyMissing, Location: loc,
			Message: errs.NoSuchKey{Key: path}.Error(), Cause: errs.NoSuchKey{Key: path}}
	}
	if err := vals.ScanToGo(v, &ret); err != nil {
		return ret, &diag.Error{Kind: diag.InvalidOperation, Location: loc,
			Message: fmt.Sprintf("%s: %v", path, err), Cause: err}
	}
	return ret, nil
}

// MarshalJSON implements json.Marshaler. Map keys are sorted, URLs and colors
// become strings. A failed configuration marshals as null.
func (cfg *Config) MarshalJSON() ([]byte, error) {
	if cfg.root == nil {
		return []byte("null"), nil
	}
	return json.Marshal(vals.ToGo(cfg.root))
}

// MarshalYAML implements yaml.Marshaler. Unlike MarshalJSON, map entries keep
// their insertion order.
func (cfg *Config) MarshalYAML() (any, error) {
	if cfg.root == nil {
		return nil, nil
	}
	return vals.ToYAMLNode(cfg.root), nil
}

var (
	_ json.Marshaler = (*Config)(nil)
	_ yaml.Marshaler = (*Config)(nil)
)
