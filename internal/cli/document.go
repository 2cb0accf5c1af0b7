package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maubry-ortega/Xylux-sub000/internal/engine"
	"github.com/maubry-ortega/Xylux-sub000/internal/log"
	"github.com/maubry-ortega/Xylux-sub000/internal/textio"
)

// outputFlags choose where an edited document goes.
type outputFlags struct {
	write bool
	diff  bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&o.write, "write", "w", false, "write the result back to the file")
	cmd.Flags().BoolVarP(&o.diff, "diff", "d", false, "print a diff instead of the content")
}

// openEngine loads path into an engine configured from the settings.
func (a *app) openEngine(path string) (*engine.Engine, error) {
	buf, err := textio.Open(path, a.cfg.Editor.Encoding)
	if err != nil {
		return nil, err
	}
	opts := append(a.cfg.EngineOptions(), engine.WithBuffer(buf))
	e := engine.New(opts...)

	// A configured line ending converts the file on write.
	if le, ok := a.cfg.LineEnding(); ok && le != e.LineEnding() {
		if err := e.SetLineEnding(le); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// emit prints the diff or the content, then saves when asked.
func (o outputFlags) emit(cmd *cobra.Command, e *engine.Engine) error {
	out := cmd.OutOrStdout()

	switch {
	case o.diff:
		fmt.Fprint(out, e.UnifiedDiff())
	case !o.write:
		fmt.Fprint(out, e.Content())
	}

	if !o.write || !e.IsModified() {
		return nil
	}
	if err := e.Save(textio.Writer(e.Path())); err != nil {
		return err
	}
	log.Info(log.CatCLI, "saved", "path", e.Path())
	return nil
}
