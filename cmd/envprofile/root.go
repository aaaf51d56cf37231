package main

import (
	"github.com/spf13/cobra"

	"github.com/yi-nology/envprofile/pkg/profile"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	profilesFile string
	envPrefix    string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "envprofile",
		Short: "Inspect and export front-end environment profiles",
		Long: `envprofile works with the named environment profiles a front-end build
is configured from: the built-in "docker" and "local" profiles plus any
listed in a profiles file.

  envprofile list
  envprofile show local --format yaml
  envprofile validate docker --strict
  envprofile export local -o src/environments/environment.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.profilesFile, "profiles-file", "f", "", "YAML file with extra named profiles")
	root.PersistentFlags().StringVar(&opts.envPrefix, "env-prefix", profile.DefaultEnvPrefix, "Prefix of environment variables that override profile fields")

	root.AddCommand(
		newListCmd(opts),
		newShowCmd(opts),
		newValidateCmd(opts),
		newExportCmd(opts),
	)
	return root
}

func (o *globalOptions) registry() (*profile.Registry, error) {
	reg := profile.Builtin()
	if o.profilesFile == "" {
		return reg, nil
	}
	if err := profile.RegisterFile(reg, o.profilesFile); err != nil {
		return nil, err
	}
	return reg, nil
}

// load resolves name with environment overrides applied.
func (o *globalOptions) load(name string, strict bool) (*profile.Provider, error) {
	reg, err := o.registry()
	if err != nil {
		return nil, err
	}
	return profile.Load(profile.Options{
		Registry:  reg,
		Name:      name,
		EnvPrefix: o.envPrefix,
		Strict:    strict,
	})
}
