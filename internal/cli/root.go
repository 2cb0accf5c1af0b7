// Package cli implements the xylux command line front end: batch edits
// driven by YAML edit scripts, Lua macros, and find/replace.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maubry-ortega/Xylux-sub000/internal/config"
	"github.com/maubry-ortega/Xylux-sub000/internal/log"
)

// app holds what the subcommands share once the root command has loaded
// the configuration.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     config.Config
}

// NewRootCmd builds the xylux command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "xylux",
		Short: "A scriptable text editing engine",
		Long: `xylux applies edits to text files with full undo semantics.

Edits come from YAML edit scripts, Lua macros, or find and replace.
Results go to stdout unless --write or --diff is given.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: .xylux/config.toml, then the user config dir)")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "", "log format (text, json)")

	root.AddCommand(
		newApplyCmd(a),
		newRunCmd(a),
		newFindCmd(a),
		newReplaceCmd(a),
		newConfigCmd(a),
	)
	return root
}

// initConfig loads the configuration, lets the logging flags override it
// and installs the logger on stderr.
func (a *app) initConfig(cmd *cobra.Command) error {
	v, err := config.NewViper(a.cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Root().PersistentFlags()
	if flags.Changed("log-level") {
		_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	}
	if flags.Changed("log-format") {
		_ = v.BindPFlag("log.format", flags.Lookup("log-format"))
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}
	a.v = v
	a.cfg = cfg

	setupLogging(cmd.ErrOrStderr(), cfg.Log)
	log.Debug(log.CatCLI, "config loaded", "file", v.ConfigFileUsed())
	return nil
}

// setupLogging installs the handler. The values were validated with the
// rest of the configuration.
func setupLogging(w io.Writer, lc config.LogConfig) {
	level, _ := log.ParseLevel(lc.Level)
	format, _ := log.ParseFormat(lc.Format)
	log.Init(w, level, format)
}

// Execute runs the root command and prints a failure to stderr.
func Execute(version string) error {
	root := NewRootCmd(version)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
