package fetch

import (
	"context"

	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/repository/specification"
	"sales-intel-be/internal/repository/unitofwork"
	"sales-intel-be/pkg/store"

	"github.com/google/uuid"
)

// EnrichmentFetcher loads the ICP/persona block for a company and derives
// the cross-persona aggregates the prompt templates use.
type EnrichmentFetcher struct {
	factory unitofwork.RepositoryFactory
	log     logger.ILogger
}

func NewEnrichmentFetcher(factory unitofwork.RepositoryFactory, log logger.ILogger) *EnrichmentFetcher {
	return &EnrichmentFetcher{
		factory: factory,
		log:     log,
	}
}

func (f *EnrichmentFetcher) Fetch(ctx context.Context, companyId uuid.UUID) *store.Enrichment {
	uow := f.factory.NewUnitOfWork(ctx)

	icp, err := uow.CompanyICPRepository().FindOne(ctx, specification.FilterBy{Field: "company_id", Value: companyId})
	if err != nil || icp == nil {
		if err != nil {
			f.log.Warn("fetch", "enrichment unavailable", map[string]interface{}{
				"company_id": companyId.String(),
				"error":      err.Error(),
			})
		}
		return nil
	}

	enrichment := &store.Enrichment{
		ValueProposition: icp.ValueProposition,
		Products:         asStringList(icp.Products),
		ICPAttributes:    asStringList(icp.IcpAttributes),
		Personas:         decodePersonas(icp.Personas),
	}

	aggregate(enrichment)
	return enrichment
}

// aggregate derives the deduplicated cross-persona lists.
func aggregate(e *store.Enrichment) {
	seenPain := map[string]bool{}
	seenGoal := map[string]bool{}
	seenTitle := map[string]bool{}
	seenResp := map[string]bool{}

	for _, persona := range e.Personas {
		if persona.Title != "" && !seenTitle[persona.Title] {
			seenTitle[persona.Title] = true
			e.JobTitles = append(e.JobTitles, persona.Title)
		}
		for _, p := range persona.PainPoints {
			if p != "" && !seenPain[p] {
				seenPain[p] = true
				e.AllPainPoints = append(e.AllPainPoints, p)
			}
		}
		for _, g := range persona.Goals {
			if g != "" && !seenGoal[g] {
				seenGoal[g] = true
				e.AllGoals = append(e.AllGoals, g)
			}
		}
		for _, r := range persona.Responsibilities {
			if r != "" && !seenResp[r] {
				seenResp[r] = true
				e.Responsibilities = append(e.Responsibilities, r)
			}
		}
	}
}
