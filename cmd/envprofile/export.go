package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yi-nology/envprofile/pkg/profile"
)

func newExportCmd(opts *globalOptions) *cobra.Command {
	var (
		output string
		format string
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Write a validated profile to a file for a front-end build",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}
			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(output), ".")
			}
			f, err := profile.ParseFormat(format)
			if err != nil {
				return err
			}
			prov, err := opts.load(args[0], strict)
			if err != nil {
				return err
			}
			data, err := profile.Encode(prov.Profile(), f)
			if err != nil {
				return err
			}
			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create %s: %w", dir, err)
				}
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %s (%s) to %s\n", prov.Name(), f, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file")
	cmd.Flags().StringVar(&format, "format", "", "Encoding (json, yaml, protobuf); defaults to the file extension")
	cmd.Flags().BoolVar(&strict, "strict", true, "Require identity provider settings on production profiles")
	return cmd
}
