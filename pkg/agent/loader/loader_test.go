package loader

import (
	"context"
	"sync/atomic"
	"testing"

	"sales-intel-be/internal/constant"
	"sales-intel-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeCalls struct {
	result store.CallContext
	calls  int32
}

func (f *fakeCalls) Fetch(ctx context.Context, callId uuid.UUID) store.CallContext {
	atomic.AddInt32(&f.calls, 1)
	return f.result
}

type fakeCompany struct {
	text    string
	profile *store.CompanyProfile
	gotId   uuid.UUID
}

func (f *fakeCompany) FetchContext(ctx context.Context, companyId uuid.UUID) string {
	f.gotId = companyId
	return f.text
}

func (f *fakeCompany) FetchProfile(ctx context.Context, companyId uuid.UUID) *store.CompanyProfile {
	f.gotId = companyId
	return f.profile
}

type fakeHistory struct {
	result   []store.CallSummary
	excluded *uuid.UUID
}

func (f *fakeHistory) Fetch(ctx context.Context, companyId uuid.UUID, exclude *uuid.UUID) []store.CallSummary {
	f.excluded = exclude
	return f.result
}

type fakeProfile struct {
	result *store.RepProfile
}

func (f *fakeProfile) Fetch(ctx context.Context, userId uuid.UUID) *store.RepProfile {
	return f.result
}

type fakeEnrichment struct {
	result *store.Enrichment
}

func (f *fakeEnrichment) Fetch(ctx context.Context, companyId uuid.UUID) *store.Enrichment {
	return f.result
}

type fakePage struct {
	result  string
	gotPage string
	invoked int32
}

func (f *fakePage) Fetch(ctx context.Context, pageType string, pc store.PageContext, userId uuid.UUID) string {
	atomic.AddInt32(&f.invoked, 1)
	f.gotPage = pageType
	return f.result
}

type fakeSemantic struct {
	result  string
	gotK    int
	invoked int32
}

func (f *fakeSemantic) Search(ctx context.Context, userId uuid.UUID, query string, topK int) string {
	atomic.AddInt32(&f.invoked, 1)
	f.gotK = topK
	return f.result
}

func newLoader(calls *fakeCalls, company *fakeCompany, history *fakeHistory, profile *fakeProfile, enrichment *fakeEnrichment, page *fakePage, semantic *fakeSemantic) *Loader {
	return New(calls, company, history, profile, enrichment, page, semantic, noopLogger{})
}

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

func TestLoad_LegacyCallChainsCompanyId(t *testing.T) {
	callId := uuid.New()
	companyId := uuid.New()
	userId := uuid.New()

	calls := &fakeCalls{result: store.CallContext{
		Text:      "Call: Demo Call\nScore: 72/100\n",
		CompanyId: &companyId,
		CallType:  "demo",
	}}
	company := &fakeCompany{profile: &store.CompanyProfile{Id: companyId, Name: "Acme"}}
	history := &fakeHistory{result: []store.CallSummary{{Title: "Earlier call"}}}
	profile := &fakeProfile{result: &store.RepProfile{SalesMotion: "outbound"}}
	enrichment := &fakeEnrichment{result: &store.Enrichment{ValueProposition: "vp"}}

	l := newLoader(calls, company, history, profile, enrichment, &fakePage{}, &fakeSemantic{})

	bundle := l.Load(context.Background(), store.ModeLegacyCall, &store.ContextRequest{
		ContextType: constant.ContextTypeCall,
		ContextId:   &callId,
		UserId:      &userId,
	})

	assert.Contains(t, bundle.CallContext, "Demo Call")
	assert.Equal(t, "demo", bundle.CallType)
	assert.Equal(t, companyId, company.gotId)
	assert.NotNil(t, history.excluded)
	assert.Equal(t, callId, *history.excluded)
	assert.Len(t, bundle.PreviousCalls, 1)
	assert.Equal(t, "Acme", bundle.Company.Name)
	assert.Equal(t, "outbound", bundle.Rep.SalesMotion)
	assert.Equal(t, "vp", bundle.Enrichment.ValueProposition)
}

func TestLoad_LegacyCallWithoutCompanySkipsCompanyFetches(t *testing.T) {
	callId := uuid.New()

	calls := &fakeCalls{result: store.CallContext{Text: "orphan call"}}
	history := &fakeHistory{result: []store.CallSummary{{Title: "should not appear"}}}

	l := newLoader(calls, &fakeCompany{}, history, &fakeProfile{}, &fakeEnrichment{}, &fakePage{}, &fakeSemantic{})

	bundle := l.Load(context.Background(), store.ModeLegacyCall, &store.ContextRequest{
		ContextId: &callId,
	})

	assert.Equal(t, "orphan call", bundle.CallContext)
	assert.Nil(t, history.excluded)
	assert.Empty(t, bundle.PreviousCalls)
	assert.Nil(t, bundle.Company)
}

func TestLoad_EmptyFetchersNeverFail(t *testing.T) {
	callId := uuid.New()

	l := newLoader(&fakeCalls{}, &fakeCompany{}, &fakeHistory{}, &fakeProfile{}, &fakeEnrichment{}, &fakePage{}, &fakeSemantic{})

	bundle := l.Load(context.Background(), store.ModeLegacyCall, &store.ContextRequest{
		ContextId: &callId,
	})

	assert.True(t, bundle.Empty())
}

func TestLoad_PageSpecificRunsPageAndSemantic(t *testing.T) {
	userId := uuid.New()

	page := &fakePage{result: "dashboard aggregate"}
	semantic := &fakeSemantic{result: "related excerpts"}

	l := newLoader(&fakeCalls{}, &fakeCompany{}, &fakeHistory{}, &fakeProfile{}, &fakeEnrichment{}, page, semantic)

	bundle := l.Load(context.Background(), store.ModePageSpecific, &store.ContextRequest{
		PageType: constant.PageDashboard,
		UserId:   &userId,
		Query:    "how are my deals",
	})

	assert.Equal(t, int32(1), page.invoked)
	assert.Equal(t, int32(1), semantic.invoked)
	assert.Equal(t, constant.PageDashboard, page.gotPage)
	assert.Equal(t, constant.SemanticSearchTopK, semantic.gotK)
	assert.Equal(t, "dashboard aggregate", bundle.PageContext)
	assert.Equal(t, "related excerpts", bundle.SemanticContext)
}

func TestLoad_NoContextLoadsNothing(t *testing.T) {
	calls := &fakeCalls{}
	page := &fakePage{}
	semantic := &fakeSemantic{}

	l := newLoader(calls, &fakeCompany{}, &fakeHistory{}, &fakeProfile{}, &fakeEnrichment{}, page, semantic)

	bundle := l.Load(context.Background(), store.ModeNoContext, &store.ContextRequest{})

	assert.True(t, bundle.Empty())
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls.calls))
	assert.Equal(t, int32(0), page.invoked)
	assert.Equal(t, int32(0), semantic.invoked)
}
