package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the registration form",
	Long: `Render the form to stdout or a file. Use --set to pre-fill fields; each
value is validated exactly as a change from the user would be, so the output
shows the resulting messages and submit state.

Example:
  regform render --output form.html
  regform render --renderer tui --set username=ab --set agreement=true`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("renderer", "r", "vanilla", "renderer to use: vanilla or tui")
	renderCmd.Flags().StringP("output", "o", "", "output file (stdout if empty)")
	renderCmd.Flags().StringArray("set", nil, "field=value to apply before rendering (repeatable)")
	renderCmd.Flags().Bool("inline-styles", false, "embed the stylesheet instead of linking it")
}

func runRender(cmd *cobra.Command, _ []string) error {
	inline, _ := cmd.Flags().GetBool("inline-styles")
	rt, err := newRuntime(cmd, vanilla.WithInlineStyles(inline))
	if err != nil {
		return err
	}
	defer rt.close(cmd.Context())

	f := form.New(form.WithSchema(rt.prepared.Schema), form.WithLogger(rt.logger))
	sets, _ := cmd.Flags().GetStringArray("set")
	for _, assignment := range sets {
		in, err := parseAssignment(rt.prepared.Model, assignment)
		if err != nil {
			return err
		}
		if err := f.Change(in); err != nil {
			return err
		}
	}

	name, _ := cmd.Flags().GetString("renderer")
	out, _, err := rt.registry.Render(cmd.Context(), name, rt.prepared.Model, render.OptionsFromSnapshot(f.Snapshot()))
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", output)
	return nil
}

// parseAssignment turns "field=value" into a change event for the field's
// control.
func parseAssignment(fm model.FormModel, raw string) (form.Input, error) {
	name, value, ok := strings.Cut(raw, "=")
	if !ok {
		return form.Input{}, fmt.Errorf("--set %q: expected field=value", raw)
	}
	field, found := fm.Field(strings.TrimSpace(name))
	if !found {
		return form.Input{}, fmt.Errorf("--set %q: %w %q", raw, form.ErrUnknownField, name)
	}

	switch field.Widget {
	case model.WidgetCheckbox:
		checked, err := strconv.ParseBool(value)
		if err != nil {
			return form.Input{}, fmt.Errorf("--set %q: %w", raw, err)
		}
		return form.Checkbox(field.Name, checked), nil
	case model.WidgetRadio:
		return form.Input{Name: field.Name, Type: form.InputRadio, Value: value}, nil
	case model.WidgetSelect:
		return form.Input{Name: field.Name, Type: form.InputSelect, Value: value}, nil
	default:
		return form.Text(field.Name, value), nil
	}
}
