// Package logutil provides structured loggers whose output can be redirected
// after they are created.
//
// Loggers discard everything until SetOutput or SetOutputFile is called,
// typically from the --log flag of the command.
package logutil

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.Mutex
	out    io.Writer = io.Discard
	closer io.Closer
	level  = zerolog.DebugLevel
)

// Forwards writes to the current output.
type switchWriter struct{}

func (switchWriter) Write(p []byte) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	return out.Write(p)
}

// GetLogger gets a logger for a component. The component is recorded in the
// "component" field of every entry.
func GetLogger(component string) zerolog.Logger {
	return zerolog.New(switchWriter{}).Level(level).
		With().Timestamp().Str("component", component).Logger()
}

// SetOutput redirects the output of all loggers obtained with GetLogger,
// including those created before the call.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	if closer != nil {
		closer.Close()
		closer = nil
	}
}

// SetOutputFile redirects the output of all loggers to a file, which is
// appended to. An empty name discards the output.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	SetOutput(file)
	mu.Lock()
	closer = file
	mu.Unlock()
	return nil
}

// SetLevel sets the minimum level of loggers created after the call.
func SetLevel(l zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}
