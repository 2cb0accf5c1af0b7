package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maubry-ortega/Xylux-sub000/internal/editscript"
	"github.com/maubry-ortega/Xylux-sub000/internal/log"
	"github.com/maubry-ortega/Xylux-sub000/internal/script"
)

func newApplyCmd(a *app) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "apply SCRIPT FILE",
		Short: "Apply a YAML edit script to a file",
		Long: `Apply a YAML edit script to a file.

Steps run in order and stop at the first failure; nothing is written
when a step fails.

Examples:
  # Preview the result
  xylux apply fix-header.yaml main.go

  # Show what would change, then write it
  xylux apply --diff fix-header.yaml main.go
  xylux apply --write fix-header.yaml main.go`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := editscript.Load(args[0])
			if err != nil {
				return err
			}
			e, err := a.openEngine(args[1])
			if err != nil {
				return err
			}

			report, err := s.Run(e, editscript.WithCaseSensitive(a.cfg.Search.CaseSensitive))
			if err != nil {
				return fmt.Errorf("%s: %w", s.Name, err)
			}
			log.Info(log.CatCLI, "edit script applied",
				"script", s.Name, "steps", report.Steps, "replaced", report.Replaced)

			return out.emit(cmd, e)
		},
	}
	out.register(cmd)
	return cmd
}

func newRunCmd(a *app) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "run MACRO FILE",
		Short: "Run a Lua macro against a file",
		Long: `Run a Lua macro against a file.

The macro sees the document through the global "editor" table. print
writes to stderr. A failing macro leaves the file untouched.

Examples:
  xylux run trailing-semicolons.lua main.js
  xylux run --write trailing-semicolons.lua main.js`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.openEngine(args[1])
			if err != nil {
				return err
			}

			err = script.RunFile(cmd.Context(), e, args[0],
				script.WithExecutionTimeout(a.cfg.ScriptTimeout()),
				script.WithInstructionLimit(a.cfg.Script.InstructionLimit),
				script.WithCaseSensitive(a.cfg.Search.CaseSensitive),
				script.WithOutput(cmd.ErrOrStderr()),
			)
			if err != nil {
				return err
			}
			return out.emit(cmd, e)
		},
	}
	out.register(cmd)
	return cmd
}
