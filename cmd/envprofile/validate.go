package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yi-nology/envprofile/pkg/profile"
)

func newValidateCmd(opts *globalOptions) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate <name>",
		Short: "Check that a profile is well formed",
		Long: `Validate resolves a profile, applies environment overrides and checks
that its URLs are absolute. With --strict a production profile must also
carry complete identity provider settings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prov, err := opts.load(args[0], strict)
			if err != nil {
				for _, fe := range fieldErrors(err) {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %v\n", fe.Field, fe.Err)
				}
				return fmt.Errorf("profile %q is invalid: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "profile %q is valid\n", prov.Name())
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Also require identity provider settings on production profiles")
	return cmd
}

// fieldErrors flattens the per-field errors carried by err.
func fieldErrors(err error) []*profile.FieldError {
	var out []*profile.FieldError
	var walk func(error)
	walk = func(e error) {
		if fe, ok := e.(*profile.FieldError); ok {
			out = append(out, fe)
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			if inner := u.Unwrap(); inner != nil {
				walk(inner)
			}
		}
	}
	walk(err)
	return out
}
