package commands

import (
	"fmt"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/modelshim/cli"
	"github.com/reoring/modelshim/resources"
)

func newFieldsCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <resource>",
		Short: "List the declared fields of a resource model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := lookup(args[0])
			if err != nil {
				return err
			}
			fields, err := o.adapter.ModelFields(res.Type)
			if err != nil {
				return fmt.Errorf("fields %s: %w", res.Name, err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTYPE\tREQUIRED\tDEFAULT")
			for p := fields.Oldest(); p != nil; p = p.Next() {
				def := "-"
				if v, ok := o.adapter.FieldDefault(p.Value); ok {
					def = formatDefault(v)
				}
				fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n",
					p.Key, o.adapter.FieldDeclaredType(p.Value), o.adapter.FieldIsRequired(p.Value), def)
			}
			return tw.Flush()
		},
	}
}

func formatDefault(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func lookup(name string) (resources.Resource, error) {
	res, err := resources.Lookup(name)
	if err != nil {
		return resources.Resource{}, &cli.CLIError{Code: cli.ExitUsageError, Err: err}
	}
	return res, nil
}
