package commands

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/modelshim/jsonschema"
)

func newSchemaCommand(o *options) *cobra.Command {
	var indent int
	cmd := &cobra.Command{
		Use:   "schema <resource>",
		Short: "Print the JSON Schema of a resource model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := lookup(args[0])
			if err != nil {
				return err
			}
			s, err := jsonschema.Reflect(o.adapter, res.Type)
			if err != nil {
				return fmt.Errorf("schema %s: %w", res.Name, err)
			}
			b, err := marshal(s, indent)
			if err != nil {
				return fmt.Errorf("schema %s: %w", res.Name, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}
	cmd.Flags().IntVar(&indent, "indent", 2, "indent width; 0 prints compact JSON")
	return cmd
}

func marshal(v any, indent int) ([]byte, error) {
	if indent <= 0 {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", strings.Repeat(" ", indent))
}
