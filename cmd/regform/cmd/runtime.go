package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/internal/tracing"
	"github.com/goliatone/go-regform/pkg/client"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

// runtime is what every subcommand needs: a logger, the prepared form, the
// renderers and the registration client.
type runtime struct {
	logger   *slog.Logger
	tracer   *tracing.Provider
	prepared *orchestrator.Prepared
	registry *render.Registry
	client   *client.Client
}

func newRuntime(cmd *cobra.Command, renderOpts ...vanilla.Option) (*runtime, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	tracer, err := tracing.NewProvider(tracing.Config{Enabled: cfg.Trace, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return nil, err
	}

	registry, err := newRegistry(cmd.OutOrStdout(), renderOpts...)
	if err != nil {
		return nil, err
	}

	orchOpts := []orchestrator.Option{
		orchestrator.WithEndpoint(cfg.Endpoint),
		orchestrator.WithRegistry(registry),
	}
	if path, _ := cmd.Flags().GetString("contract"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading contract: %w", err)
		}
		orchOpts = append(orchOpts, orchestrator.WithContract(raw))
	}
	if path, _ := cmd.Flags().GetString("preset"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading preset: %w", err)
		}
		preset, err := orchestrator.NewPresetTransformer(raw)
		if err != nil {
			return nil, err
		}
		orchOpts = append(orchOpts, orchestrator.WithSchemaTransformer(preset))
	}

	prepared, err := orchestrator.New(orchOpts...).Prepare(ctx)
	if err != nil {
		return nil, err
	}

	c, err := client.New(
		client.WithEndpoint(prepared.Endpoint),
		client.WithTimeout(cfg.Timeout),
		client.WithTracer(tracer.Tracer()),
		client.WithLogger(logger),
		client.WithHeader("User-Agent", "regform/"+version),
	)
	if err != nil {
		return nil, err
	}

	logger.Debug("form prepared", "endpoint", prepared.Endpoint, "fields", len(prepared.Model.Fields), "trace", tracer.Enabled())
	return &runtime{
		logger:   logger,
		tracer:   tracer,
		prepared: prepared,
		registry: registry,
		client:   c,
	}, nil
}

// close flushes pending spans.
func (rt *runtime) close(ctx context.Context) {
	if err := rt.tracer.Shutdown(ctx); err != nil {
		rt.logger.Warn("tracing shutdown", "error", err)
	}
}

// newRegistry registers the themed vanilla renderer (default) and the text
// renderer.
func newRegistry(out io.Writer, opts ...vanilla.Option) (*render.Registry, error) {
	if cfg.Theme.Name != "" && cfg.Theme.Name != vanilla.DefaultThemeName {
		return nil, fmt.Errorf("unknown theme %q (available: %s)", cfg.Theme.Name, vanilla.DefaultThemeName)
	}
	themeCfg, err := vanilla.ThemeConfig(vanilla.DefaultManifest(), cfg.Theme.Variant, cfg.Theme.Tokens)
	if err != nil {
		return nil, err
	}

	html, err := vanilla.New(append([]vanilla.Option{vanilla.WithTheme(themeCfg)}, opts...)...)
	if err != nil {
		return nil, err
	}

	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(tui.New(tui.WithPromptDriver(tui.NewSurveyDriver(out))))
	return registry, nil
}
