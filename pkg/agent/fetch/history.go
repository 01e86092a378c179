package fetch

import (
	"context"

	"sales-intel-be/internal/constant"
	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/repository/specification"
	"sales-intel-be/internal/repository/unitofwork"
	"sales-intel-be/pkg/store"

	"github.com/google/uuid"
)

// HistoryFetcher loads the most recent other calls for a company, newest
// first, capped at 5. Not cached: it feeds the enrichment path, which sees
// far less volume than single-call lookups.
type HistoryFetcher struct {
	factory unitofwork.RepositoryFactory
	log     logger.ILogger
}

func NewHistoryFetcher(factory unitofwork.RepositoryFactory, log logger.ILogger) *HistoryFetcher {
	return &HistoryFetcher{
		factory: factory,
		log:     log,
	}
}

func (f *HistoryFetcher) Fetch(ctx context.Context, companyId uuid.UUID, exclude *uuid.UUID) []store.CallSummary {
	uow := f.factory.NewUnitOfWork(ctx)

	// Fetch one extra so excluding the current call still yields a full page
	calls, err := uow.TranscriptRepository().FindAll(ctx,
		specification.ByCompany{CompanyId: companyId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: constant.PreviousCallsLimit + 1},
	)
	if err != nil {
		f.log.Warn("fetch", "previous calls unavailable", map[string]interface{}{
			"company_id": companyId.String(),
			"error":      err.Error(),
		})
		return nil
	}

	summaries := make([]store.CallSummary, 0, constant.PreviousCallsLimit)
	for _, call := range calls {
		if exclude != nil && call.Id == *exclude {
			continue
		}
		summaries = append(summaries, store.CallSummary{
			TranscriptId: call.Id,
			Title:        call.Title,
			Score:        call.Score,
			DealSignal:   call.DealSignal,
			CreatedAt:    call.CreatedAt,
		})
		if len(summaries) == constant.PreviousCallsLimit {
			break
		}
	}
	return summaries
}
