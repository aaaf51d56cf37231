package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yi-nology/envprofile/pkg/profile"
)

func newListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := opts.registry()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSOURCE\tPRODUCTION\tAPI SERVER")
			for _, name := range reg.Names() {
				p, err := reg.Select(name)
				if err != nil {
					return err
				}
				source := "file"
				if profile.IsBuiltin(name) {
					source = "builtin"
				}
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", name, source, p.Production, p.APIServerURL)
			}
			return w.Flush()
		},
	}
}
