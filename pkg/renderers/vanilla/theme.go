package vanilla

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const (
	// DefaultThemeName names the built-in manifest.
	DefaultThemeName = "regform"
	// FormPartial is the theme template key for the whole form.
	FormPartial = "forms.form"
)

// DefaultManifest returns the built-in theme. Tokens become CSS custom
// properties on the form container; the "dark" variant overrides a subset.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-text":    "#1f2933",
			"color-bg":      "#ffffff",
			"color-border":  "#cbd2d9",
			"color-success": "#1b7f3b",
			"color-error":   "#c81e1e",
			"color-accent":  "#2f6feb",
			"radius":        "6px",
		},
		Templates: map[string]string{
			FormPartial: formTemplate,
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"vanilla.stylesheet": StylesheetName,
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"color-text":   "#e4e7eb",
					"color-bg":     "#1f2933",
					"color-border": "#52606d",
				},
			},
		},
	}
}

// ThemeConfig resolves a manifest and variant into the renderer config.
// Variant tokens, templates and assets override the base manifest; tokens are
// also exposed as "--" prefixed CSS variables. extra tokens win over both.
func ThemeConfig(manifest *theme.Manifest, variant string, extra map[string]string) (*theme.RendererConfig, error) {
	if manifest == nil {
		return nil, fmt.Errorf("vanilla renderer: theme manifest is required")
	}
	if err := theme.NewRegistry().Register(manifest); err != nil {
		return nil, fmt.Errorf("vanilla renderer: invalid theme %q: %w", manifest.Name, err)
	}

	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(manifest.Templates, nil)
	prefix := manifest.Assets.Prefix
	files := mergeStrings(manifest.Assets.Files, nil)

	if variant != "" {
		v, ok := manifest.Variants[variant]
		if !ok {
			return nil, fmt.Errorf("vanilla renderer: theme %q has no variant %q", manifest.Name, variant)
		}
		tokens = mergeStrings(tokens, v.Tokens)
		partials = mergeStrings(partials, v.Templates)
		files = mergeStrings(files, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}
	tokens = mergeStrings(tokens, extra)

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	return &theme.RendererConfig{
		Theme:    manifest.Name,
		Variant:  variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok {
				return ""
			}
			return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
		},
	}, nil
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s: %s;", key, vars[key])
	}
	return b.String()
}

func mergeStrings(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
