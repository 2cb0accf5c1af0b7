package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// caseSensitive resolves --ignore-case against the configured default.
func (a *app) caseSensitive(cmd *cobra.Command) bool {
	if ignore, _ := cmd.Flags().GetBool("ignore-case"); ignore {
		return false
	}
	return a.cfg.Search.CaseSensitive
}

func newFindCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find QUERY FILE",
		Short: "Print every occurrence of a string",
		Long: `Print every occurrence of QUERY as LINE:COLUMN: TEXT.

Lines and columns are 1-based; columns count characters. Matches may
overlap. QUERY may span lines with an embedded newline.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.openEngine(args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range e.Find(args[0], a.caseSensitive(cmd)) {
				text, _ := e.Line(p.Line)
				fmt.Fprintf(out, "%d:%d: %s\n", p.Line+1, p.Column+1, text)
			}
			return nil
		},
	}
	cmd.Flags().BoolP("ignore-case", "i", false, "match case-insensitively")
	return cmd
}

func newReplaceCmd(a *app) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "replace QUERY REPLACEMENT FILE",
		Short: "Replace every occurrence of a string",
		Long: `Replace every occurrence of QUERY with REPLACEMENT.

Overlapping matches are replaced only where the text still matches
after the later ones were replaced. The count goes to stderr.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.openEngine(args[2])
			if err != nil {
				return err
			}

			n, err := e.ReplaceAll(args[0], args[1], a.caseSensitive(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d replacement(s)\n", n)
			return out.emit(cmd, e)
		},
	}
	cmd.Flags().BoolP("ignore-case", "i", false, "match case-insensitively")
	out.register(cmd)
	return cmd
}
