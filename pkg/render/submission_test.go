package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.CSRFToken("", "token123"),
		render.Hidden(" session ", "abc123"),
		render.Hidden("  ", "skip"),
		render.Hidden("existing", "override"),
	)

	wantMerged := map[string]string{
		"existing": "override",
		"_csrf":    "token123",
		"session":  "abc123",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(merged)
	wantSorted := []render.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "existing", Value: "override"},
		{Name: "session", Value: "abc123"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}

	if got := render.SortedHiddenFields(map[string]string{" ": "x"}); got != nil {
		t.Fatalf("expected nil for blank names, got %v", got)
	}
}
