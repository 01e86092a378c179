package store

import (
	"time"

	"github.com/google/uuid"
)

// Mode is the retrieval mode resolved for one agent request. Exactly one mode
// is active per request; it decides which fetchers run and which prompt
// template renders.
type Mode string

const (
	ModePageSpecific      Mode = "page_specific"
	ModeSemanticWorkspace Mode = "semantic_workspace"
	ModeLegacyCall        Mode = "legacy_call"
	ModeLegacyCompany     Mode = "legacy_company"
	ModeFallbackWorkspace Mode = "fallback_workspace"
	ModeNoContext         Mode = "no_context"
)

// PageContext carries the ids the dashboard knows about on the current page.
type PageContext struct {
	TranscriptId *uuid.UUID `json:"transcript_id,omitempty"`
	CompanyId    *uuid.UUID `json:"company_id,omitempty"`
	TeamId       *uuid.UUID `json:"team_id,omitempty"`
}

// ContextRequest is the normalized pipeline input. Fields are not mutually
// exclusive on the wire; the mode dispatcher resolves the ambiguity.
type ContextRequest struct {
	PageType          string
	PageContext       PageContext
	ContextType       string
	ContextId         *uuid.UUID
	UserId            *uuid.UUID
	UseSemanticSearch bool
	Query             string
}

// CallSummary is one previous call used for historical grounding.
type CallSummary struct {
	TranscriptId uuid.UUID
	Title        string
	Score        *int
	DealSignal   string
	CreatedAt    time.Time
}

// Contact is a person attached to a company profile.
type Contact struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
	Email string `json:"email,omitempty"`
}

// CompanyProfile is the structured (not pre-rendered) company fragment.
type CompanyProfile struct {
	Id         uuid.UUID
	Name       string
	Domain     string
	PainPoints []string
	Contacts   []Contact
	Goal       string
}

// TeamRoleEntry is one resolved role for a rep: the system role plus an
// optional custom/department role, each optionally described.
type TeamRoleEntry struct {
	Role           string
	DepartmentRole string
	Description    string
}

// RepProfile describes the requesting sales rep.
type RepProfile struct {
	SalesMotion string
	Roles       []TeamRoleEntry
}

// Persona is one buyer persona from the ICP enrichment block.
type Persona struct {
	Title            string   `json:"title"`
	PainPoints       []string `json:"pain_points"`
	Goals            []string `json:"goals"`
	Responsibilities []string `json:"responsibilities"`
}

// Enrichment is the ICP/persona block plus aggregates derived across all
// personas.
type Enrichment struct {
	ValueProposition string
	Products         []string
	ICPAttributes    []string
	Personas         []Persona

	// Derived aggregates
	AllPainPoints    []string
	AllGoals         []string
	JobTitles        []string
	Responsibilities []string
}

// CallContext is the denormalized fragment for a single call: the rendered
// text block plus the ids needed to chain company-scoped fetches.
type CallContext struct {
	Text      string     `json:"text"`
	CompanyId *uuid.UUID `json:"company_id,omitempty"`
	CallType  string     `json:"call_type,omitempty"`
}

// ContextBundle is the merged in-memory result of loading context for one
// request. It has no identity: built fresh, formatted, discarded.
type ContextBundle struct {
	PreviousCalls []CallSummary
	Company       *CompanyProfile
	Rep           *RepProfile
	Enrichment    *Enrichment

	// Pre-rendered fragments
	CallContext     string
	CompanyContext  string
	PageContext     string
	SemanticContext string

	CallType string
}

// Empty reports whether no fetcher contributed anything.
func (b *ContextBundle) Empty() bool {
	return len(b.PreviousCalls) == 0 &&
		b.Company == nil &&
		b.Rep == nil &&
		b.Enrichment == nil &&
		b.CallContext == "" &&
		b.CompanyContext == "" &&
		b.PageContext == "" &&
		b.SemanticContext == ""
}
