// Package cli provides the testid command line: annotate, check and version.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const rootLongDescription = `testid annotates the root markup element of every JSX/TSX component with
an attribute naming the component, giving UI tests a stable selector.

Paths may be files or directories; directories are walked recursively,
skipping node_modules, build output and declaration files.`

// NewRootCmd creates the testid command tree with its own configuration
func NewRootCmd() *cobra.Command {
	v := newConfig()
	cmd := &cobra.Command{
		Use:           "testid",
		Short:         "JSX component test id annotator",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	configureRootFlags(cmd, v)
	cmd.AddCommand(newAnnotateCmd(v), newCheckCmd(v), newVersionCmd())
	return cmd
}

func configureRootFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.PersistentFlags()
	flags.StringP(attributeFlagName, "a", v.GetString(attributeKey), "attribute name to inject (default data-test-id)")
	bindFlagToConfig(v, flags.Lookup(attributeFlagName), attributeKey)

	flags.String(optionsFlagName, v.GetString(optionsKey), `raw plugin options, e.g. '{"attributeName": "data-qa"}'`)
	bindFlagToConfig(v, flags.Lookup(optionsFlagName), optionsKey)

	flags.IntP(concurrencyFlagName, "c", v.GetInt(concurrencyKey), "number of files processed in parallel")
	bindFlagToConfig(v, flags.Lookup(concurrencyFlagName), concurrencyKey)

	flags.String(cacheFlagName, v.GetString(cachePathKey), "annotation cache location")
	bindFlagToConfig(v, flags.Lookup(cacheFlagName), cachePathKey)

	flags.Bool(noCacheFlagName, v.GetBool(noCacheKey), "disable the annotation cache (process every file)")
	bindFlagToConfig(v, flags.Lookup(noCacheFlagName), noCacheKey)

	flags.Int(maxFileSizeFlagName, v.GetInt(maxFileSizeKey), "largest source file in bytes; larger files fail")
	bindFlagToConfig(v, flags.Lookup(maxFileSizeFlagName), maxFileSizeKey)

	flags.String(logFileFlagName, v.GetString(logFilenameKey), "log file location")
	bindFlagToConfig(v, flags.Lookup(logFileFlagName), logFilenameKey)

	flags.BoolP(verboseFlagName, "v", false, "log at debug level")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(v *viper.Viper, flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(v.BindPFlag(key, flag))
}

// Execute runs the command line and exits non-zero on failure
func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		cmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
