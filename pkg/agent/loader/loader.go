package loader

import (
	"context"
	"sync"

	"sales-intel-be/internal/constant"
	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/pkg/store"

	"github.com/google/uuid"
)

// Consumer-side contracts for the source fetchers. Every fetcher degrades to
// an empty result instead of failing, so Load never returns an error.

type CallContextFetcher interface {
	Fetch(ctx context.Context, callId uuid.UUID) store.CallContext
}

type CompanyFetcher interface {
	FetchContext(ctx context.Context, companyId uuid.UUID) string
	FetchProfile(ctx context.Context, companyId uuid.UUID) *store.CompanyProfile
}

type HistoryFetcher interface {
	Fetch(ctx context.Context, companyId uuid.UUID, exclude *uuid.UUID) []store.CallSummary
}

type ProfileFetcher interface {
	Fetch(ctx context.Context, userId uuid.UUID) *store.RepProfile
}

type EnrichmentFetcher interface {
	Fetch(ctx context.Context, companyId uuid.UUID) *store.Enrichment
}

type PageFetcher interface {
	Fetch(ctx context.Context, pageType string, pc store.PageContext, userId uuid.UUID) string
}

type SemanticSearcher interface {
	Search(ctx context.Context, userId uuid.UUID, query string, topK int) string
}

// Loader fans out to the fetchers a mode needs and joins their results into
// one bundle. A slow or empty fetcher only affects its own field.
type Loader struct {
	calls      CallContextFetcher
	company    CompanyFetcher
	history    HistoryFetcher
	profile    ProfileFetcher
	enrichment EnrichmentFetcher
	page       PageFetcher
	semantic   SemanticSearcher
	log        logger.ILogger
}

func New(
	calls CallContextFetcher,
	company CompanyFetcher,
	history HistoryFetcher,
	profile ProfileFetcher,
	enrichment EnrichmentFetcher,
	page PageFetcher,
	semantic SemanticSearcher,
	log logger.ILogger,
) *Loader {
	return &Loader{
		calls:      calls,
		company:    company,
		history:    history,
		profile:    profile,
		enrichment: enrichment,
		page:       page,
		semantic:   semantic,
		log:        log,
	}
}

// Load assembles the bundle for one request. The fan-out order is irrelevant;
// each goroutine owns exactly one bundle field, and the join waits for all of
// them before the bundle is read.
func (l *Loader) Load(ctx context.Context, mode store.Mode, req *store.ContextRequest) *store.ContextBundle {
	bundle := &store.ContextBundle{}

	switch mode {
	case store.ModeLegacyCall:
		l.loadCall(ctx, req, bundle)
	case store.ModeLegacyCompany:
		l.loadCompany(ctx, req, bundle)
	case store.ModeSemanticWorkspace, store.ModeFallbackWorkspace:
		l.loadWorkspace(ctx, req, bundle)
	case store.ModePageSpecific:
		l.loadPage(ctx, req, bundle)
	case store.ModeNoContext:
		// nothing to load
	}

	return bundle
}

// loadCall resolves the call first because its company id drives the rest of
// the fan-out.
func (l *Loader) loadCall(ctx context.Context, req *store.ContextRequest, bundle *store.ContextBundle) {
	if req.ContextId == nil {
		return
	}
	callId := *req.ContextId

	callCtx := l.calls.Fetch(ctx, callId)
	bundle.CallContext = callCtx.Text
	bundle.CallType = callCtx.CallType

	var wg sync.WaitGroup

	if callCtx.CompanyId != nil {
		companyId := *callCtx.CompanyId

		wg.Add(3)
		go func() {
			defer wg.Done()
			bundle.PreviousCalls = l.history.Fetch(ctx, companyId, &callId)
		}()
		go func() {
			defer wg.Done()
			bundle.Company = l.company.FetchProfile(ctx, companyId)
		}()
		go func() {
			defer wg.Done()
			bundle.Enrichment = l.enrichment.Fetch(ctx, companyId)
		}()
	}

	if req.UserId != nil {
		userId := *req.UserId
		wg.Add(1)
		go func() {
			defer wg.Done()
			bundle.Rep = l.profile.Fetch(ctx, userId)
		}()
	}

	wg.Wait()
}

func (l *Loader) loadCompany(ctx context.Context, req *store.ContextRequest, bundle *store.ContextBundle) {
	if req.ContextId == nil {
		return
	}
	companyId := *req.ContextId

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		bundle.CompanyContext = l.company.FetchContext(ctx, companyId)
	}()
	go func() {
		defer wg.Done()
		bundle.Enrichment = l.enrichment.Fetch(ctx, companyId)
	}()

	if req.UserId != nil {
		userId := *req.UserId
		wg.Add(1)
		go func() {
			defer wg.Done()
			bundle.Rep = l.profile.Fetch(ctx, userId)
		}()
	}

	wg.Wait()
}

func (l *Loader) loadWorkspace(ctx context.Context, req *store.ContextRequest, bundle *store.ContextBundle) {
	if req.UserId == nil {
		return
	}
	userId := *req.UserId

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		bundle.SemanticContext = l.semantic.Search(ctx, userId, req.Query, constant.SemanticSearchTopK)
	}()
	go func() {
		defer wg.Done()
		bundle.Rep = l.profile.Fetch(ctx, userId)
	}()
	wg.Wait()
}

// loadPage concatenates the page aggregate with a semantic pass over the
// workspace, so page questions still surface related calls.
func (l *Loader) loadPage(ctx context.Context, req *store.ContextRequest, bundle *store.ContextBundle) {
	if req.UserId == nil {
		return
	}
	userId := *req.UserId

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		bundle.PageContext = l.page.Fetch(ctx, req.PageType, req.PageContext, userId)
	}()
	go func() {
		defer wg.Done()
		bundle.SemanticContext = l.semantic.Search(ctx, userId, req.Query, constant.SemanticSearchTopK)
	}()
	go func() {
		defer wg.Done()
		bundle.Rep = l.profile.Fetch(ctx, userId)
	}()
	wg.Wait()
}
