package main

import (
	"github.com/spf13/cobra"

	"github.com/yi-nology/envprofile/pkg/profile"
)

func newShowCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a profile with environment overrides applied",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := profile.ParseFormat(format)
			if err != nil {
				return err
			}
			prov, err := opts.load(args[0], false)
			if err != nil {
				return err
			}
			data, err := profile.Encode(prov.Profile(), f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := out.Write(data); err != nil {
				return err
			}
			if f == profile.FormatJSON {
				_, err = out.Write([]byte("\n"))
			}
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Output format (json, yaml, protobuf)")
	return cmd
}
