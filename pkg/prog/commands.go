package prog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tconf/tconf/pkg/buildinfo"
	"github.com/tconf/tconf/pkg/config"
	"github.com/tconf/tconf/pkg/diag"
	"github.com/tconf/tconf/pkg/eval/vals"
	"github.com/tconf/tconf/pkg/lsp"
	"github.com/tconf/tconf/pkg/url"
)

type formatFlags struct {
	Format string `flag:"format" validate:"oneof=repr json yaml"`
}

func (ff *formatFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&ff.Format, "format", "f", "repr", "output format: repr, json or yaml")
}

func newEvalCommand(f *Flags) *cobra.Command {
	var ff formatFlags
	cmd := &cobra.Command{
		Use:   "eval FILE",
		Short: "Evaluate a file and print its root object",
		Example: `  tconf eval app.conf
  tconf eval --format json --cache ~/.cache/tconf.db app.conf`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFlags(&ff); err != nil {
				return err
			}
			st, closeStore, err := f.openStore()
			if err != nil {
				return err
			}
			defer closeStore()
			cfg := config.Load(fileURL(args[0]), f.configOptions(st))
			if !cfg.Success() {
				return cfg.Err()
			}
			return writeConfig(cmd.OutOrStdout(), cfg, ff.Format)
		},
	}
	ff.register(cmd)
	return cmd
}

func newGetCommand(f *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "get FILE PATH",
		Short: "Print the value at a dotted path",
		Long: `Print the value at a dotted path like "server.ports.0". Strings are printed
as they are, other values in their source representation.`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeStore, err := f.openStore()
			if err != nil {
				return err
			}
			defer closeStore()
			cfg := config.Load(fileURL(args[0]), f.configOptions(st))
			v, err := config.Value[vals.Value](cfg, args[1])
			if err != nil {
				return err
			}
			if s, ok := v.(vals.String); ok {
				fmt.Fprintln(cmd.OutOrStdout(), string(s))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), vals.Repr(v, 0))
			}
			return nil
		},
	}
}

func newASTCommand(f *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "ast FILE",
		Short: "Print the syntax tree of a file",
		Long: `Print the syntax tree of a file, with parentheses around every operation.
The tree is printed even if evaluating it fails.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(fileURL(args[0]), f.configOptions(nil))
			ast := cfg.ASTString()
			if ast == "" {
				return cfg.Err()
			}
			fmt.Fprintln(cmd.OutOrStdout(), ast)
			return nil
		},
	}
}

func newCheckCommand(f *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Check that files evaluate without errors",
		Args:  minimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, arg := range args {
				cfg := config.Load(fileURL(arg), f.configOptions(nil))
				if cfg.Success() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", arg)
					continue
				}
				failed++
				diag.ShowError(cmd.ErrOrStderr(), cfg.Err())
			}
			if failed > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d files failed\n", failed, len(args))
				return Exit(1)
			}
			return nil
		},
	}
}

func newLSPCommand(f *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run a language server over stdin and stdout",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return lsp.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), f.evalOptions())
		},
	}
}

func newCacheCommand(f *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the evaluation cache given by --cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List cached files and the files they depend on",
			Args:  exactArgs(0),
			RunE: func(cmd *cobra.Command, _ []string) error {
				st, closeStore, err := f.requireStore()
				if err != nil {
					return err
				}
				defer closeStore()
				entries, err := st.Entries()
				if err != nil {
					return Failure(err)
				}
				out := cmd.OutOrStdout()
				for _, e := range entries {
					fmt.Fprintln(out, e.URL)
					for _, file := range e.Files {
						fmt.Fprintf(out, "  %s %s\n", file.Hash[:min(12, len(file.Hash))], file.URL)
					}
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete FILE...",
			Short: "Remove the entries of files",
			Args:  minimumArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				st, closeStore, err := f.requireStore()
				if err != nil {
					return err
				}
				defer closeStore()
				for _, arg := range args {
					if err := st.Delete(fileURL(arg)); err != nil {
						return Failure(err)
					}
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "purge",
			Short: "Remove all entries",
			Args:  exactArgs(0),
			RunE: func(*cobra.Command, []string) error {
				st, closeStore, err := f.requireStore()
				if err != nil {
					return err
				}
				defer closeStore()
				return Failure(st.Purge())
			},
		},
	)
	return cmd
}

func newVersionCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version and build information",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.Marshal(buildinfo.Value)
				if err != nil {
					return Failure(err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			fmt.Fprintln(out, "Version:", buildinfo.Value.Version)
			fmt.Fprintln(out, "Go version:", buildinfo.Value.GoVersion)
			fmt.Fprintln(out, "Reproducible build:", buildinfo.Value.Reproducible)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "show the output in JSON")
	return cmd
}

// Converts a command-line argument to a URL. Arguments with a scheme, like
// "file:a.conf", are parsed as URLs; others are filesystem paths.
func fileURL(arg string) url.URL {
	if u := url.Parse(arg); u.Scheme() != "" {
		return u
	}
	return url.FromPath(arg)
}

func writeConfig(w io.Writer, cfg *config.Config, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return Failure(err)
		}
		fmt.Fprintln(w, string(data))
	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return Failure(err)
		}
		io.WriteString(w, string(data))
	default:
		fmt.Fprintln(w, strings.TrimRight(vals.Repr(cfg.RootObject(), 0), "\n"))
	}
	return nil
}
