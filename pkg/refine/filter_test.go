package refine_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/refinectl/refinectl/pkg/document"
	"github.com/refinectl/refinectl/pkg/refine"
)

func TestFilterDropsFalseBooleansAndNulls(t *testing.T) {
	flat := mapOf(
		"journal", document.Bool(false),
		"fork", document.Bool(true),
		"empty", document.Null(),
		"port", document.Int(65010),
	)

	got := refine.Filter(flat)

	want := mapOf(
		"fork", document.Bool(true),
		"port", document.Int(65010),
	)
	if !got.Equal(want) {
		t.Fatalf("unexpected filter result:\n%s", document.Display(got))
	}
}

func TestFilterKeepsEmptyValues(t *testing.T) {
	// Emptiness is not the criterion: only false booleans and nulls go.
	flat := mapOf(
		"name", document.String(""),
		"count", document.Int(0),
		"ratio", document.Float(0),
		"tags", document.Array(),
	)

	got := refine.Filter(flat)

	if !got.Equal(flat) {
		t.Fatalf("filter dropped entries it should keep:\n%s", document.Display(got))
	}
}

func TestFilterAppliedToFilteredResultIsIdentity(t *testing.T) {
	flat := mapOf(
		"journal", document.Bool(false),
		"fork", document.Bool(true),
		"oplogSize", document.Int(128),
	)

	once := refine.Filter(flat)
	twice := refine.Filter(once)

	if !once.Equal(twice) {
		t.Fatalf("filter is not idempotent:\nonce:\n%s\ntwice:\n%s", document.Display(once), document.Display(twice))
	}
}

func TestFilterPreservesOrderAndInput(t *testing.T) {
	flat := mapOf(
		"a", document.Bool(false),
		"b", document.String("keep"),
		"c", document.Null(),
		"d", document.Int(1),
	)
	pristine := flat.Clone()

	got := refine.Filter(flat)

	if diff := cmp.Diff([]string{"b", "d"}, got.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
	if !flat.Equal(pristine) {
		t.Fatalf("filter mutated its input")
	}
}

func TestScenarioRefineThenFilter(t *testing.T) {
	// Unfiltered refinement keeps the overridden false boolean; the filter
	// pass removes it.
	unfiltered := refine.Refine(pluginRoot(), []string{"options", "plugin1", "test"})
	filtered := refine.Filter(unfiltered)

	want := mapOf(
		"key1a", document.Bool(true),
		"key2", document.String("val3"),
	)
	if !filtered.Equal(want) {
		t.Fatalf("unexpected filtered refinement:\n%s", document.Display(filtered))
	}
}
