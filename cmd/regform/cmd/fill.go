package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill in and submit the registration form in the terminal",
	Long: `Prompt for each field, showing validation messages inline and asking
again until the answer passes. Once every field is valid, confirm to post the
registration. A failed submission keeps your answers so you can edit and retry.`,
	Args: cobra.NoArgs,
	RunE: runFill,
}

func init() {
	rootCmd.AddCommand(fillCmd)
}

func runFill(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.close(cmd.Context())

	renderer, err := rt.registry.Get("tui")
	if err != nil {
		return err
	}
	session, ok := renderer.(*tui.Renderer)
	if !ok {
		return fmt.Errorf("renderer %q cannot run interactive sessions", renderer.Name())
	}

	f := form.New(
		form.WithSchema(rt.prepared.Schema),
		form.WithSubmitter(rt.client),
		form.WithLogger(rt.logger),
	)

	result, err := session.Fill(cmd.Context(), rt.prepared.Model, f)
	switch {
	case errors.Is(err, tui.ErrAborted):
		fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
		return nil
	case errors.Is(err, tui.ErrDeclined):
		fmt.Fprintln(cmd.ErrOrStderr(), "registration not submitted")
		return nil
	case err != nil:
		return err
	}

	if result.Failure != "" {
		return fmt.Errorf("registration failed: %s", result.Failure)
	}
	return nil
}
