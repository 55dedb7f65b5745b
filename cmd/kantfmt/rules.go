package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/kantfmt/internal/rules"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the registered rules with the properties they read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RULE\tPROPERTIES\tKINDS")
			for _, info := range rules.Infos() {
				props := make([]string, 0, len(info.Properties))
				for _, k := range info.Properties {
					props = append(props, string(k))
				}
				kinds := make([]string, 0, len(info.Kinds))
				for _, k := range info.Kinds {
					kinds = append(kinds, k.String())
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", info.ID, join(props), join(kinds))
			}
			return w.Flush()
		},
	}
}

func join(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ",")
}
