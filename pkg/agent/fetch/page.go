package fetch

import (
	"context"
	"fmt"
	"strings"

	"sales-intel-be/internal/constant"
	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/repository/specification"
	"sales-intel-be/internal/repository/unitofwork"
	"sales-intel-be/pkg/store"

	"github.com/google/uuid"
)

// PageFetcher builds the page-specific aggregate: one fixed join per page
// type. Sub-queries inside a behavior are individually non-fatal; a failed
// one shortens the context instead of erroring.
type PageFetcher struct {
	factory unitofwork.RepositoryFactory
	calls   *CallFetcher
	company *CompanyFetcher
	log     logger.ILogger
}

func NewPageFetcher(factory unitofwork.RepositoryFactory, calls *CallFetcher, company *CompanyFetcher, log logger.ILogger) *PageFetcher {
	return &PageFetcher{
		factory: factory,
		calls:   calls,
		company: company,
		log:     log,
	}
}

func (f *PageFetcher) Fetch(ctx context.Context, pageType string, pc store.PageContext, userId uuid.UUID) string {
	switch pageType {
	case constant.PageDashboard:
		return f.dashboard(ctx, userId)
	case constant.PageCalls:
		return f.callList(ctx, userId)
	case constant.PageCallDetail:
		if pc.TranscriptId == nil {
			return ""
		}
		return f.calls.Fetch(ctx, *pc.TranscriptId).Text
	case constant.PageCompanies:
		return f.companyList(ctx, userId)
	case constant.PageCompanyDetail:
		if pc.CompanyId == nil {
			return ""
		}
		return f.company.FetchContext(ctx, *pc.CompanyId)
	case constant.PageTeam:
		if pc.TeamId == nil {
			return ""
		}
		return f.team(ctx, *pc.TeamId)
	default:
		return ""
	}
}

func (f *PageFetcher) dashboard(ctx context.Context, userId uuid.UUID) string {
	uow := f.factory.NewUnitOfWork(ctx)
	var b strings.Builder

	calls, err := uow.TranscriptRepository().FindAll(ctx,
		specification.UserOwnedBy{UserId: userId},
		specification.Scored{},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: constant.CompanyCallsLimit},
	)
	if err != nil {
		f.log.Warn("fetch", "dashboard calls unavailable", map[string]interface{}{"error": err.Error()})
	} else if len(calls) > 0 {
		b.WriteString("Recent scored calls:\n")
		for _, call := range calls {
			b.WriteString(fmt.Sprintf("- %s: %d/100 (%s)\n", call.Title, *call.Score, call.CreatedAt.Format("2006-01-02")))
		}
	}

	notes, err := uow.CoachingNoteRepository().FindAll(ctx,
		specification.UserOwnedBy{UserId: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: constant.PreviousCallsLimit},
	)
	if err != nil {
		f.log.Warn("fetch", "coaching notes unavailable", map[string]interface{}{"error": err.Error()})
	} else if len(notes) > 0 {
		b.WriteString("\nCoaching notes:\n")
		for _, note := range notes {
			b.WriteString("- " + note.Note + "\n")
		}
	}

	return b.String()
}

func (f *PageFetcher) callList(ctx context.Context, userId uuid.UUID) string {
	uow := f.factory.NewUnitOfWork(ctx)

	calls, err := uow.TranscriptRepository().FindAll(ctx,
		specification.UserOwnedBy{UserId: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		f.log.Warn("fetch", "call list unavailable", map[string]interface{}{"error": err.Error()})
		return ""
	}
	if len(calls) == 0 {
		return ""
	}

	var strong, moderate, weak int
	var b strings.Builder
	b.WriteString(fmt.Sprintf("All calls (%d):\n", len(calls)))
	for _, call := range calls {
		line := fmt.Sprintf("- %s (%s)", call.Title, call.CreatedAt.Format("2006-01-02"))
		if call.Score != nil {
			line += fmt.Sprintf(", score %d/100", *call.Score)
			switch {
			case *call.Score >= 80:
				strong++
			case *call.Score >= 60:
				moderate++
			default:
				weak++
			}
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(fmt.Sprintf("\nScore bands: %d strong (80+), %d moderate (60-79), %d weak (<60)\n", strong, moderate, weak))
	return b.String()
}

func (f *PageFetcher) companyList(ctx context.Context, userId uuid.UUID) string {
	uow := f.factory.NewUnitOfWork(ctx)

	companies, err := uow.CompanyRepository().FindAll(ctx,
		specification.UserOwnedBy{UserId: userId},
		specification.OrderBy{Field: "name", Desc: false},
	)
	if err != nil {
		f.log.Warn("fetch", "company list unavailable", map[string]interface{}{"error": err.Error()})
		return ""
	}
	if len(companies) == 0 {
		return ""
	}

	seen := map[string]bool{}
	var painPoints []string
	var atRisk []string

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Companies (%d):\n", len(companies)))
	for _, company := range companies {
		b.WriteString("- " + company.Name + "\n")
		if company.AtRisk {
			atRisk = append(atRisk, company.Name)
		}
		for _, p := range asStringList(company.PainPoints) {
			if !seen[p] {
				seen[p] = true
				painPoints = append(painPoints, p)
			}
		}
	}

	if len(painPoints) > 0 {
		b.WriteString("\nPain points across portfolio:\n")
		for _, p := range painPoints {
			b.WriteString("- " + p + "\n")
		}
	}
	if len(atRisk) > 0 {
		b.WriteString("\nAt risk: " + strings.Join(atRisk, ", ") + "\n")
	}
	return b.String()
}

func (f *PageFetcher) team(ctx context.Context, teamId uuid.UUID) string {
	uow := f.factory.NewUnitOfWork(ctx)

	roles, err := uow.TeamRoleRepository().FindAll(ctx,
		specification.FilterBy{Field: "team_id", Value: teamId},
	)
	if err != nil {
		f.log.Warn("fetch", "team roster unavailable", map[string]interface{}{"error": err.Error()})
		return ""
	}
	if len(roles) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Team roster (%d members):\n", len(roles)))
	for _, role := range roles {
		member, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: role.UserId})
		if err != nil || member == nil {
			// One unresolvable member must not sink the roster
			f.log.Warn("fetch", "team member unavailable", map[string]interface{}{
				"user_id": role.UserId.String(),
				"error":   errString(err),
			})
			continue
		}

		line := fmt.Sprintf("- %s (%s)", member.FullName, role.Role)

		calls, err := uow.TranscriptRepository().FindAll(ctx,
			specification.UserOwnedBy{UserId: role.UserId},
			specification.Scored{},
		)
		if err != nil {
			f.log.Warn("fetch", "member call stats unavailable", map[string]interface{}{
				"user_id": role.UserId.String(),
				"error":   err.Error(),
			})
		} else if len(calls) > 0 {
			total := 0
			for _, call := range calls {
				total += *call.Score
			}
			line += fmt.Sprintf(": %d calls, average %d/100", len(calls), total/len(calls))
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
