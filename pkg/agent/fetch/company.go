package fetch

import (
	"context"
	"fmt"
	"strings"

	"sales-intel-be/internal/constant"
	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/repository/specification"
	"sales-intel-be/internal/repository/unitofwork"
	"sales-intel-be/pkg/cache"
	"sales-intel-be/pkg/store"

	"github.com/google/uuid"
)

// CompanyFetcher serves both shapes the pipeline needs: a cached pre-rendered
// text block (company:<id>) and the typed profile used by the formatter's
// tagged sections.
type CompanyFetcher struct {
	factory unitofwork.RepositoryFactory
	cache   cache.Store
	log     logger.ILogger
}

func NewCompanyFetcher(factory unitofwork.RepositoryFactory, cacheStore cache.Store, log logger.ILogger) *CompanyFetcher {
	return &CompanyFetcher{
		factory: factory,
		cache:   cacheStore,
		log:     log,
	}
}

// FetchContext returns the rendered company block: the profile plus up to 10
// most recent associated calls with their average score.
func (f *CompanyFetcher) FetchContext(ctx context.Context, companyId uuid.UUID) string {
	key := "company:" + companyId.String()
	if cached, ok := f.cache.Get(key); ok {
		return cached
	}

	uow := f.factory.NewUnitOfWork(ctx)

	company, err := uow.CompanyRepository().FindOne(ctx, specification.ByID{ID: companyId})
	if err != nil || company == nil {
		f.log.Warn("fetch", "company context unavailable", map[string]interface{}{
			"company_id": companyId.String(),
			"error":      errString(err),
		})
		return ""
	}

	// Recent calls are best effort, a profile without them is still useful
	calls, err := uow.TranscriptRepository().FindAll(ctx,
		specification.ByCompany{CompanyId: companyId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: constant.CompanyCallsLimit},
	)
	if err != nil {
		f.log.Warn("fetch", "company calls unavailable", map[string]interface{}{
			"company_id": companyId.String(),
			"error":      err.Error(),
		})
		calls = nil
	}

	text := renderCompany(company, calls)
	f.cache.Set(key, text)
	return text
}

// FetchProfile returns the typed profile without touching the text cache.
func (f *CompanyFetcher) FetchProfile(ctx context.Context, companyId uuid.UUID) *store.CompanyProfile {
	uow := f.factory.NewUnitOfWork(ctx)
	company, err := uow.CompanyRepository().FindOne(ctx, specification.ByID{ID: companyId})
	if err != nil || company == nil {
		f.log.Warn("fetch", "company profile unavailable", map[string]interface{}{
			"company_id": companyId.String(),
			"error":      errString(err),
		})
		return nil
	}

	return &store.CompanyProfile{
		Id:         company.Id,
		Name:       company.Name,
		Domain:     company.Domain,
		PainPoints: asStringList(company.PainPoints),
		Contacts:   decodeContacts(company.Contacts),
		Goal:       company.Goal,
	}
}

func renderCompany(c *entity.Company, calls []*entity.Transcript) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Company: %s\n", c.Name))
	if c.Domain != "" {
		b.WriteString(fmt.Sprintf("Domain: %s\n", c.Domain))
	}
	if c.Goal != "" {
		b.WriteString(fmt.Sprintf("Goal: %s\n", c.Goal))
	}
	if c.AtRisk {
		b.WriteString("Status: flagged at risk\n")
	}

	if painPoints := asStringList(c.PainPoints); len(painPoints) > 0 {
		b.WriteString("\nPain points:\n")
		for _, p := range painPoints {
			b.WriteString("- " + p + "\n")
		}
	}

	if contacts := decodeContacts(c.Contacts); len(contacts) > 0 {
		b.WriteString("\nContacts:\n")
		for _, contact := range contacts {
			line := "- " + contact.Name
			if contact.Title != "" {
				line += " (" + contact.Title + ")"
			}
			b.WriteString(line + "\n")
		}
	}

	if len(calls) > 0 {
		var scored, total int
		b.WriteString(fmt.Sprintf("\nRecent calls (%d):\n", len(calls)))
		for _, call := range calls {
			line := fmt.Sprintf("- %s (%s)", call.Title, call.CreatedAt.Format("2006-01-02"))
			if call.Score != nil {
				line += fmt.Sprintf(", score %d/100", *call.Score)
				scored++
				total += *call.Score
			}
			b.WriteString(line + "\n")
		}
		if scored > 0 {
			b.WriteString(fmt.Sprintf("Average score: %d/100\n", total/scored))
		}
	}

	return b.String()
}
