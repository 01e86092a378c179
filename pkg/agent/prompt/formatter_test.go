package prompt

import (
	"testing"
	"time"

	"sales-intel-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int {
	return &n
}

func sampleBundle() *store.ContextBundle {
	return &store.ContextBundle{
		PreviousCalls: []store.CallSummary{
			{Title: "Kickoff", Score: intPtr(65), DealSignal: "neutral", CreatedAt: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
		},
		Company: &store.CompanyProfile{
			Name:       "Acme",
			Domain:     "acme.io",
			PainPoints: []string{"slow onboarding"},
		},
		Rep: &store.RepProfile{
			SalesMotion: "outbound",
			Roles:       []store.TeamRoleEntry{{Role: "AE", Description: "covers EMEA"}},
		},
		Enrichment: &store.Enrichment{
			ValueProposition: "faster onboarding",
			Personas:         []store.Persona{{Title: "VP Ops", PainPoints: []string{"manual work"}}},
			JobTitles:        []string{"VP Ops"},
		},
		CallContext: "Call: Demo Call\nScore: 72/100\n",
		CallType:    "demo",
	}
}

func TestFormat_Deterministic(t *testing.T) {
	bundle := sampleBundle()

	first := Format(store.ModeLegacyCall, bundle)
	second := Format(store.ModeLegacyCall, bundle)

	assert.Equal(t, first, second)
}

func TestFormat_LegacyCallContainsCallFacts(t *testing.T) {
	out := Format(store.ModeLegacyCall, sampleBundle())

	assert.Contains(t, out, "Demo Call")
	assert.Contains(t, out, "72/100")
	assert.Contains(t, out, "<company_profile>")
	assert.Contains(t, out, "<rep_context>")
	assert.Contains(t, out, "<icp>")
	assert.Contains(t, out, "<buyer_personas>")
}

func TestFormat_EmptySectionsOmitted(t *testing.T) {
	bundle := &store.ContextBundle{
		CallContext: "Call: Solo\n",
	}

	out := Format(store.ModeLegacyCall, bundle)

	assert.Contains(t, out, "Solo")
	assert.NotContains(t, out, "<company_profile>")
	assert.NotContains(t, out, "<rep_context>")
	assert.NotContains(t, out, "<icp>")
	assert.NotContains(t, out, "<buyer_personas>")
	assert.NotContains(t, out, "N/A")
}

func TestFormat_NoContextStatesNothingSelected(t *testing.T) {
	out := Format(store.ModeNoContext, &store.ContextBundle{})

	assert.Contains(t, out, "No call or company selected")
}

func TestFormat_FallbackWithEmptyBundleMentionsLimitedContext(t *testing.T) {
	out := Format(store.ModeFallbackWorkspace, &store.ContextBundle{})

	assert.Contains(t, out, "limited")
}

func TestFormat_RepWithoutDataOmitted(t *testing.T) {
	bundle := &store.ContextBundle{
		SemanticContext: "excerpt",
		Rep:             &store.RepProfile{},
	}

	out := Format(store.ModeSemanticWorkspace, bundle)

	assert.Contains(t, out, "<workspace_search>")
	assert.NotContains(t, out, "<rep_context>")
}
