package prog

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tconf/tconf/pkg/config"
	"github.com/tconf/tconf/pkg/eval/vals"
	"github.com/tconf/tconf/pkg/must"
	"github.com/tconf/tconf/pkg/parse"
	"github.com/tconf/tconf/pkg/testutil"
	"github.com/tconf/tconf/pkg/url"
)

func TestWatcher_ReloadsOnChange(t *testing.T) {
	testutil.InTempDir(t)
	must.WriteFile("a.conf", `include("b.conf") a: 1`)
	must.WriteFile("b.conf", "b: 1")

	loaded := make(chan *config.Config, 32)
	var out, errOut bytes.Buffer
	u := url.Parse("file:a.conf")
	w := &watcher{
		load:     func() *config.Config { return config.Load(u, config.Options{}) },
		top:      u,
		out:      &out,
		errOut:   &errOut,
		format:   "json",
		debounce: 20 * time.Millisecond,
		metrics:  newMetrics(),
		loaded:   func(cfg *config.Config) { loaded <- cfg },
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.run(ctx) }()

	// Waits for an evaluation satisfying pred. Editors and filesystems may
	// cause more than one evaluation per change.
	waitFor := func(what string, pred func(*config.Config) bool) {
		t.Helper()
		timeout := time.After(5 * time.Second)
		for {
			select {
			case cfg := <-loaded:
				if pred(cfg) {
					return
				}
			case <-timeout:
				t.Fatalf("timed out waiting for %s", what)
			}
		}
	}
	bIs := func(n int) func(*config.Config) bool {
		return func(cfg *config.Config) bool { return vals.Equal(cfg.Get("b"), vals.Int(n)) }
	}

	waitFor("first evaluation", bIs(1))
	if got := out.String(); got != "{\n  \"a\": 1,\n  \"b\": 1\n}\n" {
		t.Errorf("first output is %q", got)
	}

	must.WriteFile("b.conf", "b: 2")
	waitFor("evaluation after change", bIs(2))

	must.WriteFile("b.conf", "b: ")
	waitFor("failed evaluation", func(cfg *config.Config) bool { return !cfg.Success() })
	if !strings.Contains(errOut.String(), "syntax error, unexpected end of file") {
		t.Errorf("error output is %q", errOut.String())
	}

	// Changes to unrelated files are ignored.
	must.WriteFile("c.conf", "c: 1")
	select {
	case cfg := <-loaded:
		t.Errorf("evaluated after unrelated change, success %v", cfg.Success())
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("run returned %v", err)
	}

	if n := promtest.ToFloat64(w.metrics.evaluations.WithLabelValues("success")); n < 2 {
		t.Errorf("got %v successful evaluations, want at least 2", n)
	}
	if n := promtest.ToFloat64(w.metrics.evaluations.WithLabelValues("error")); n < 1 {
		t.Errorf("got %v failed evaluations, want at least 1", n)
	}
	if n := promtest.ToFloat64(w.metrics.files); n != 2 {
		t.Errorf("watching %v files, want 2", n)
	}
}

func TestMetricsHandler(t *testing.T) {
	m := newMetrics()
	m.observe(config.LoadSource(parse.SourceForTest("a: 1"), config.Options{}), time.Millisecond)
	m.observe(config.LoadSource(parse.SourceForTest("a: "), config.Options{}), time.Millisecond)

	rec := httptest.NewRecorder()
	m.handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	for _, want := range []string{
		`tconf_evaluations_total{status="success"} 1`,
		`tconf_evaluations_total{status="error"} 1`,
		`tconf_evaluation_duration_seconds_count 2`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output doesn't contain %q:\n%s", want, body)
		}
	}
}

func TestValidateFlags(t *testing.T) {
	tests := []struct {
		name  string
		flags any
		want  string
	}{
		{"valid", &watchFlags{formatFlags{"yaml"}, "localhost:9090", time.Second}, ""},
		{"bad format", &watchFlags{formatFlags{"toml"}, "", 0},
			"invalid value toml for --format (oneof=repr json yaml)"},
		{"bad address", &watchFlags{formatFlags{"repr"}, "localhost", 0},
			"invalid value localhost for --metrics-addr (hostname_port)"},
		{"negative debounce", &watchFlags{formatFlags{"repr"}, "", -time.Second},
			"invalid value -1s for --debounce (min=0)"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := validateFlags(test.flags)
			got := ""
			if err != nil {
				got = err.Error()
			}
			if got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}
