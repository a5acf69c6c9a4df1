package prog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/tconf/tconf/pkg/config"
	"github.com/tconf/tconf/pkg/diag"
	"github.com/tconf/tconf/pkg/url"
)

type watchFlags struct {
	formatFlags
	MetricsAddr string        `flag:"metrics-addr" validate:"omitempty,hostname_port"`
	Debounce    time.Duration `flag:"debounce" validate:"min=0"`
}

func newWatchCommand(f *Flags) *cobra.Command {
	var wf watchFlags
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Evaluate a file again whenever it or a file it includes changes",
		Long: `Evaluate a file and print its root object, then evaluate it again whenever
it or any file it includes changes. Errors are printed and watching goes on.
With --metrics-addr, reload metrics are served at /metrics.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFlags(&wf); err != nil {
				return err
			}
			m := newMetrics()
			if wf.MetricsAddr != "" {
				stop, err := serveMetrics(wf.MetricsAddr, m)
				if err != nil {
					return Failure(err)
				}
				defer stop()
			}
			u := fileURL(args[0])
			w := &watcher{
				load:     func() *config.Config { return config.Load(u, f.configOptions(nil)) },
				top:      u,
				out:      cmd.OutOrStdout(),
				errOut:   cmd.ErrOrStderr(),
				format:   wf.Format,
				debounce: wf.Debounce,
				metrics:  m,
			}
			return Failure(w.run(cmd.Context()))
		},
	}
	wf.register(cmd)
	cmd.Flags().StringVar(&wf.MetricsAddr, "metrics-addr", "", "address to serve metrics on, like localhost:9090")
	cmd.Flags().DurationVar(&wf.Debounce, "debounce", 100*time.Millisecond,
		"time to wait for more changes before evaluating again")
	return cmd
}

type watcher struct {
	load     func() *config.Config
	top      url.URL
	out      io.Writer
	errOut   io.Writer
	format   string
	debounce time.Duration
	metrics  *metrics
	// Called after each evaluation. Used in tests.
	loaded func(*config.Config)

	fsw *fsnotify.Watcher
	// Absolute filenames whose changes trigger evaluation.
	files map[string]bool
	// Watched directories.
	dirs map[string]bool
}

// Evaluates the file, and again after changes, until ctx is done.
func (w *watcher) run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()
	w.fsw = fsw
	w.dirs = make(map[string]bool)

	w.reload()
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.files[event.Name] || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("file changed")
			// Wait for the burst of events an editor makes when saving.
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watch error")
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *watcher) reload() {
	start := time.Now()
	cfg := w.load()
	w.metrics.observe(cfg, time.Since(start))
	if cfg.Success() {
		if err := writeConfig(w.out, cfg, w.format); err != nil {
			logger.Warn().Err(err).Msg("failed to write output")
		}
	} else {
		diag.ShowError(w.errOut, cfg.Err())
	}
	w.watch(cfg)
	if w.loaded != nil {
		w.loaded(cfg)
	}
}

// Watches the directories of the files read while loading cfg. Directories
// are watched instead of the files, so that files replaced by renaming are
// still noticed.
func (w *watcher) watch(cfg *config.Config) {
	urls := []url.URL{w.top}
	for _, file := range cfg.Files() {
		urls = append(urls, file.URL)
	}
	w.files = make(map[string]bool)
	for _, u := range urls {
		if u.Scheme() != "file" {
			continue
		}
		name, err := filepath.Abs(u.Filename())
		if err != nil {
			continue
		}
		w.files[name] = true
		dir := filepath.Dir(name)
		if w.dirs[dir] {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("failed to watch directory")
			continue
		}
		w.dirs[dir] = true
	}
	w.metrics.files.Set(float64(len(w.files)))
}

// Serves metrics at addr in the background. The returned function stops the
// server.
func serveMetrics(addr string, m *metrics) (func(), error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	// Report failures to listen right away.
	select {
	case err := <-errCh:
		return nil, fmt.Errorf("cannot serve metrics: %w", err)
	case <-time.After(50 * time.Millisecond):
	}
	logger.Info().Str("addr", addr).Msg("serving metrics")
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn().Err(err).Msg("failed to stop metrics server")
		}
	}, nil
}
