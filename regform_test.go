package regform

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

func TestEmbeddedTemplatesContainsForm(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template to be readable: %v", err)
	}
}

func TestEmbeddedAssetsContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(EmbeddedAssets(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".regform") {
		t.Fatalf("expected stylesheet to style the .regform container")
	}
}

func TestGenerateHTMLUsesEndpointOverride(t *testing.T) {
	out, err := GenerateHTML(context.Background(), "", RenderOptions{}, WithEndpoint("http://localhost:9000/registration"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `action="http://localhost:9000/registration"`) {
		t.Fatalf("expected overridden action, got:\n%s", out)
	}
}
