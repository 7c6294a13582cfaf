package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reoring/modelshim/cli"
	"github.com/reoring/modelshim/compat"
	"github.com/reoring/modelshim/internal/jsondup"
)

var inputFormats = []string{"json", "yaml"}

const maxDuplicates = 10

type validateOptions struct {
	format          string
	excludeUnset    bool
	excludeDefaults bool
	indent          int
	quiet           bool
	allowDuplicates bool
}

func newValidateCommand(o *options) *cobra.Command {
	vo := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate <resource> [file|-]",
		Short: "Validate a document against a resource model and print the result",
		Long: `validate parses a JSON or YAML document into the resource model and prints
the validated instance as JSON. The document is read from the file argument,
or from standard input when the argument is "-" or missing.

With --quiet a validation failure only sets the exit status.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 2 {
				path = args[1]
			}
			return o.validate(cmd, args[0], path, vo)
		},
	}
	f := cmd.Flags()
	f.StringVar(&vo.format, "format", "", "input format (json|yaml); inferred from the file extension when empty")
	f.BoolVar(&vo.excludeUnset, "exclude-unset", false, "leave out fields absent from the input")
	f.BoolVar(&vo.excludeDefaults, "exclude-defaults", false, "leave out fields equal to their default")
	f.IntVar(&vo.indent, "indent", 0, "indent width of the output; 0 prints compact JSON")
	f.BoolVarP(&vo.quiet, "quiet", "q", false, "print nothing on validation failure")
	f.BoolVar(&vo.allowDuplicates, "allow-duplicate-keys", false, "accept JSON objects with repeated keys (the last value wins)")
	return cmd
}

func (o *options) validate(cmd *cobra.Command, name, path string, vo *validateOptions) error {
	res, err := lookup(name)
	if err != nil {
		return err
	}
	format := vo.format
	if format == "" {
		format = formatFromPath(path)
	}
	if !lo.Contains(inputFormats, format) {
		return &cli.CLIError{Code: cli.ExitUsageError, Message: fmt.Sprintf("unsupported --format %q (want json or yaml)", format)}
	}

	data, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return cli.WrapCLIError("read input", err)
	}
	if format == "json" && !vo.allowDuplicates {
		// syntax errors are reported by the decoder below
		if dups, _ := jsondup.Find(data, maxDuplicates); len(dups) > 0 {
			return cli.NewCLIError(fmt.Sprintf("duplicate keys in input: %s", strings.Join(lo.Map(dups, func(d jsondup.Duplicate, _ int) string {
				return d.Path
			}), ", ")))
		}
	}
	doc, err := decodeDocument(data, format)
	if err != nil {
		return cli.WrapCLIError("decode "+format, err)
	}
	slog.Debug("validating", "resource", res.Name, "input", path, "format", format)

	dst := res.New()
	if err := o.adapter.Validate(dst, doc); err != nil {
		if vo.quiet {
			return cli.NewSilentCLIError(err)
		}
		return err
	}

	var out string
	if vo.excludeUnset || vo.excludeDefaults {
		// exclusions go through the map form; keys come out sorted
		d, err := o.adapter.DumpDict(dst, compat.DumpOptions{
			ExcludeUnset:    vo.excludeUnset,
			ExcludeDefaults: vo.excludeDefaults,
		})
		if err != nil {
			return fmt.Errorf("dump %s: %w", res.Name, err)
		}
		b, err := marshal(d, vo.indent)
		if err != nil {
			return fmt.Errorf("dump %s: %w", res.Name, err)
		}
		out = string(b)
	} else {
		out, err = o.adapter.DumpJSON(dst, vo.indent)
		if err != nil {
			return fmt.Errorf("dump %s: %w", res.Name, err)
		}
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func decodeDocument(data []byte, format string) (any, error) {
	var doc any
	if format == "yaml" {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
