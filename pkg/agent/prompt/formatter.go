package prompt

import (
	"fmt"
	"strings"

	"sales-intel-be/pkg/store"
)

// Format renders the system prompt for one request. It is a pure function of
// (mode, bundle): same inputs always produce byte-identical output. Missing
// optional fields are omitted entirely, never rendered as placeholders.
func Format(mode store.Mode, bundle *store.ContextBundle) string {
	var b strings.Builder

	writePreamble(&b, mode)
	writeStyle(&b)
	writeContext(&b, mode, bundle)
	writeGuidelines(&b)

	return b.String()
}

func writePreamble(b *strings.Builder, mode store.Mode) {
	b.WriteString("<role>\n")
	b.WriteString("You are a sales copilot embedded in a sales intelligence dashboard.\n")
	b.WriteString("You help sales reps understand their calls, companies, and pipeline.\n")
	switch mode {
	case store.ModeLegacyCall:
		b.WriteString("The user is asking about one specific call. Ground every answer in that call's context below.\n")
	case store.ModeLegacyCompany:
		b.WriteString("The user is asking about one specific company. Ground every answer in that company's context below.\n")
	case store.ModeSemanticWorkspace, store.ModeFallbackWorkspace:
		b.WriteString("The user is asking about their workspace. Ground your answer in the excerpts retrieved below.\n")
	case store.ModePageSpecific:
		b.WriteString("The user is looking at a specific dashboard page. Ground your answer in that page's data below.\n")
	case store.ModeNoContext:
		b.WriteString("No call or company is currently selected, so no account data is available for this conversation.\n")
	}
	b.WriteString("</role>\n\n")
}

func writeStyle(b *strings.Builder) {
	b.WriteString("<communication_style>\n")
	b.WriteString("- Be direct and concrete; reference scores, names, and dates from the context\n")
	b.WriteString("- Prefer short actionable answers over generic sales advice\n")
	b.WriteString("- Never invent facts that are not in the provided context\n")
	b.WriteString("</communication_style>\n\n")
}

func writeContext(b *strings.Builder, mode store.Mode, bundle *store.ContextBundle) {
	if mode == store.ModeNoContext {
		b.WriteString("<context>\n")
		b.WriteString("No call or company selected. Ask the user to open a call or company, or answer from general sales knowledge while saying that no account data is loaded.\n")
		b.WriteString("</context>\n\n")
		return
	}

	if mode == store.ModeFallbackWorkspace && bundle.Empty() {
		b.WriteString("<context>\n")
		b.WriteString("Only limited context is available for this conversation. Tell the user you are answering with limited workspace context.\n")
		b.WriteString("</context>\n\n")
		return
	}

	b.WriteString("<context>\n")

	// Fixed join order: previous calls, company, rep, enrichment, page data
	writePreviousCalls(b, bundle.PreviousCalls)

	if bundle.CallContext != "" {
		b.WriteString("<current_call>\n")
		b.WriteString(strings.TrimRight(bundle.CallContext, "\n"))
		b.WriteString("\n</current_call>\n")
	}
	if bundle.CallType != "" {
		b.WriteString(fmt.Sprintf("Call type: %s\n", bundle.CallType))
	}

	writeCompanyProfile(b, bundle.Company)

	if bundle.CompanyContext != "" {
		b.WriteString("<company_profile>\n")
		b.WriteString(strings.TrimRight(bundle.CompanyContext, "\n"))
		b.WriteString("\n</company_profile>\n")
	}

	writeRep(b, bundle.Rep)
	writeEnrichment(b, bundle.Enrichment)

	if bundle.PageContext != "" {
		b.WriteString("<page_data>\n")
		b.WriteString(strings.TrimRight(bundle.PageContext, "\n"))
		b.WriteString("\n</page_data>\n")
	}
	if bundle.SemanticContext != "" {
		b.WriteString("<workspace_search>\n")
		b.WriteString(strings.TrimRight(bundle.SemanticContext, "\n"))
		b.WriteString("\n</workspace_search>\n")
	}

	b.WriteString("</context>\n\n")
}

func writePreviousCalls(b *strings.Builder, calls []store.CallSummary) {
	if len(calls) == 0 {
		return
	}
	b.WriteString("<previous_calls>\n")
	for _, call := range calls {
		line := fmt.Sprintf("- %s (%s)", call.Title, call.CreatedAt.Format("2006-01-02"))
		if call.Score != nil {
			line += fmt.Sprintf(", score %d/100", *call.Score)
		}
		if call.DealSignal != "" {
			line += ", signal: " + call.DealSignal
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("</previous_calls>\n")
}

func writeCompanyProfile(b *strings.Builder, company *store.CompanyProfile) {
	if company == nil {
		return
	}
	b.WriteString("<company_profile>\n")
	b.WriteString("Name: " + company.Name + "\n")
	if company.Domain != "" {
		b.WriteString("Domain: " + company.Domain + "\n")
	}
	if company.Goal != "" {
		b.WriteString("Goal: " + company.Goal + "\n")
	}
	if len(company.PainPoints) > 0 {
		b.WriteString("Pain points:\n")
		for _, p := range company.PainPoints {
			b.WriteString("- " + p + "\n")
		}
	}
	if len(company.Contacts) > 0 {
		b.WriteString("Contacts:\n")
		for _, c := range company.Contacts {
			line := "- " + c.Name
			if c.Title != "" {
				line += " (" + c.Title + ")"
			}
			b.WriteString(line + "\n")
		}
	}
	b.WriteString("</company_profile>\n")
}

func writeRep(b *strings.Builder, rep *store.RepProfile) {
	if rep == nil {
		return
	}
	if rep.SalesMotion == "" && len(rep.Roles) == 0 {
		return
	}
	b.WriteString("<rep_context>\n")
	if rep.SalesMotion != "" {
		b.WriteString("Sales motion: " + rep.SalesMotion + "\n")
	}
	for _, role := range rep.Roles {
		line := "Role: " + role.Role
		if role.DepartmentRole != "" {
			line += " / " + role.DepartmentRole
		}
		b.WriteString(line + "\n")
		if role.Description != "" {
			b.WriteString("  " + role.Description + "\n")
		}
	}
	b.WriteString("</rep_context>\n")
}

func writeEnrichment(b *strings.Builder, e *store.Enrichment) {
	if e == nil {
		return
	}

	hasIcp := e.ValueProposition != "" || len(e.Products) > 0 || len(e.ICPAttributes) > 0
	if hasIcp {
		b.WriteString("<icp>\n")
		if e.ValueProposition != "" {
			b.WriteString("Value proposition: " + e.ValueProposition + "\n")
		}
		if len(e.Products) > 0 {
			b.WriteString("Products:\n")
			for _, p := range e.Products {
				b.WriteString("- " + p + "\n")
			}
		}
		if len(e.ICPAttributes) > 0 {
			b.WriteString("Ideal customer attributes:\n")
			for _, a := range e.ICPAttributes {
				b.WriteString("- " + a + "\n")
			}
		}
		b.WriteString("</icp>\n")
	}

	if len(e.Personas) > 0 {
		b.WriteString("<buyer_personas>\n")
		for _, persona := range e.Personas {
			b.WriteString("Persona: " + persona.Title + "\n")
			for _, p := range persona.PainPoints {
				b.WriteString("- pain: " + p + "\n")
			}
			for _, g := range persona.Goals {
				b.WriteString("- goal: " + g + "\n")
			}
			for _, r := range persona.Responsibilities {
				b.WriteString("- responsibility: " + r + "\n")
			}
		}
		if len(e.JobTitles) > 0 {
			b.WriteString("Target titles: " + strings.Join(e.JobTitles, ", ") + "\n")
		}
		b.WriteString("</buyer_personas>\n")
	}
}

func writeGuidelines(b *strings.Builder) {
	b.WriteString("<guidelines>\n")
	b.WriteString("1. Base your answer strictly on the context provided\n")
	b.WriteString("2. When the context lacks what the user asks for, say so instead of guessing\n")
	b.WriteString("3. Quote scores as N/100 exactly as given\n")
	b.WriteString("4. Keep recommendations tied to the specific deal stage and signals shown\n")
	b.WriteString("</guidelines>\n")
}
