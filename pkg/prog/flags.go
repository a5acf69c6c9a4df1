package prog

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/tconf/tconf/pkg/config"
	"github.com/tconf/tconf/pkg/eval"
	"github.com/tconf/tconf/pkg/store"
)

// Flags keeps the flags shared by all commands. The flag tags name the
// command-line flags in validation errors.
type Flags struct {
	Log             string `flag:"log"`
	MaxIncludeDepth int    `flag:"max-include-depth" validate:"min=1,max=256"`
	Cache           string `flag:"cache"`
}

func (f *Flags) register(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.StringVar(&f.Log, "log", "", "a file to write debug log to")
	fs.IntVar(&f.MaxIncludeDepth, "max-include-depth", eval.DefaultMaxIncludeDepth,
		"maximum nesting of include calls")
	fs.StringVar(&f.Cache, "cache", "", "path to a database caching evaluated files")
}

func (f *Flags) evalOptions() eval.Options {
	return eval.Options{MaxIncludeDepth: f.MaxIncludeDepth}
}

// Opens the cache if --cache is given. The returned function closes it.
func (f *Flags) openStore() (*store.Store, func(), error) {
	if f.Cache == "" {
		return nil, func() {}, nil
	}
	st, err := store.Open(f.Cache)
	if err != nil {
		return nil, nil, Failure(fmt.Errorf("cannot open cache: %w", err))
	}
	return st, func() { st.Close() }, nil
}

// Like openStore, but --cache must be given.
func (f *Flags) requireStore() (*store.Store, func(), error) {
	if f.Cache == "" {
		return nil, nil, BadUsage("--cache is required")
	}
	return f.openStore()
}

func (f *Flags) configOptions(st *store.Store) config.Options {
	return config.Options{Eval: f.evalOptions(), Store: st}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("flag")
	})
	return v
}

// Validates the flags kept in a struct, reporting the first violation as a
// usage error.
func validateFlags(s any) error {
	err := validate.Struct(s)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		return BadUsage(fmt.Sprintf("invalid value %v for --%s (%s)", fe.Value(), fe.Field(), rule))
	}
	return err
}
