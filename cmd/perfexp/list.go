package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"perfexp/internal/harness"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List benchmark groups with their axes and variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "GROUP\tAXES\tVARIANTS\tCASES")
			for _, g := range groupsFunc() {
				cases, err := harness.Expand(g)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", g.Name, describeAxes(g.Axes), describeVariants(g.Variants), len(cases))
			}
			return tw.Flush()
		},
	}
}

func describeAxes(axes []harness.Axis) string {
	if len(axes) == 0 {
		return "-"
	}
	parts := make([]string, len(axes))
	for i, a := range axes {
		vals := make([]string, a.Len())
		for j, v := range a.Values() {
			vals[j] = fmt.Sprint(v)
		}
		parts[i] = a.Name() + "=" + strings.Join(vals, ",")
	}
	return strings.Join(parts, " ")
}

func describeVariants(variants []harness.Variant) string {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Name
		if v.Baseline {
			names[i] += "*"
		}
	}
	return strings.Join(names, ",")
}
