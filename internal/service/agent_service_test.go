package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"sales-intel-be/internal/constant"
	"sales-intel-be/internal/dto"
	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/repository/contract"
	"sales-intel-be/internal/repository/memory"
	"sales-intel-be/internal/repository/specification"
	"sales-intel-be/internal/repository/unitofwork"
	"sales-intel-be/pkg/agent/invoke"
	"sales-intel-be/pkg/agent/mode"
	"sales-intel-be/pkg/llm"
	"sales-intel-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

type fakeLoader struct {
	bundle *store.ContextBundle
}

func (f *fakeLoader) Load(ctx context.Context, m store.Mode, req *store.ContextRequest) *store.ContextBundle {
	if f.bundle != nil {
		return f.bundle
	}
	return &store.ContextBundle{}
}

type fakeInvoker struct {
	deltas []string
	usage  *llm.Usage
	err    error

	gotSystemPrompt string
	gotMessages     []llm.Message
}

func (f *fakeInvoker) Stream(ctx context.Context, systemPrompt string, history []llm.Message, model string, onDelta llm.DeltaFunc) invoke.Result {
	f.gotSystemPrompt = systemPrompt
	f.gotMessages = history

	var output string
	for _, d := range f.deltas {
		if err := onDelta(d); err != nil {
			break
		}
		output += d
	}
	return invoke.Result{
		Output:   output,
		Usage:    f.usage,
		Duration: 40 * time.Millisecond,
		Err:      f.err,
	}
}

type fakeRecorder struct {
	records []*entity.AgentRun
}

func (f *fakeRecorder) Log(record *entity.AgentRun) {
	f.records = append(f.records, record)
}

type fakeMeter struct {
	calls  int
	userId uuid.UUID
	tokens int
}

func (f *fakeMeter) Track(ctx context.Context, userId uuid.UUID, promptTokens int, completionTokens int, model string) {
	f.calls++
	f.userId = userId
	f.tokens = promptTokens + completionTokens
}

type fakeRunRepo struct {
	contract.AgentRunRepository
	runs    map[uuid.UUID]*entity.AgentRun
	unset   []uuid.UUID
	updated []*entity.AgentRun
}

func (f *fakeRunRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AgentRun, error) {
	var run *entity.AgentRun
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			run = f.runs[byID.ID]
		}
	}
	if run == nil {
		return nil, nil
	}
	for _, spec := range specs {
		if owned, ok := spec.(specification.UserOwnedBy); ok {
			if run.UserId == nil || *run.UserId != owned.UserId {
				return nil, nil
			}
		}
	}
	return run, nil
}

func (f *fakeRunRepo) Update(ctx context.Context, run *entity.AgentRun) error {
	f.updated = append(f.updated, run)
	return nil
}

func (f *fakeRunRepo) UnsetBestForTranscript(ctx context.Context, transcriptId uuid.UUID) error {
	f.unset = append(f.unset, transcriptId)
	return nil
}

type fakeUow struct {
	unitofwork.UnitOfWork
	runs      contract.AgentRunRepository
	committed bool
}

func (f *fakeUow) Begin(ctx context.Context) error { return nil }
func (f *fakeUow) Commit() error {
	f.committed = true
	return nil
}
func (f *fakeUow) Rollback() error                                 { return nil }
func (f *fakeUow) AgentRunRepository() contract.AgentRunRepository { return f.runs }

type fakeFactory struct {
	uow unitofwork.UnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

func newService(inv *fakeInvoker, rec *fakeRecorder, meter *fakeMeter, factory unitofwork.RepositoryFactory) IAgentService {
	if factory == nil {
		factory = &fakeFactory{uow: &fakeUow{}}
	}
	return NewAgentService(
		mode.NewDispatcher(),
		&fakeLoader{},
		inv,
		rec,
		meter,
		memory.NewSessionRepository(),
		factory,
		"llama3",
		noopLogger{},
	)
}

func TestStreamChat_LegacyCallRecordsRun(t *testing.T) {
	callId := uuid.New()
	userId := uuid.New()
	inv := &fakeInvoker{
		deltas: []string{"The ", "deal ", "is on track."},
		usage:  &llm.Usage{PromptTokens: 120, CompletionTokens: 30},
	}
	rec := &fakeRecorder{}
	meter := &fakeMeter{}
	svc := newService(inv, rec, meter, nil)

	req := &dto.ChatRequest{
		Messages:    []dto.ChatMessage{{Role: "user", Content: "How is this deal going?"}},
		ContextType: constant.ContextTypeCall,
		ContextId:   &callId,
		UserId:      &userId,
	}

	m, ctxReq, err := svc.ResolveMode(req)
	require.NoError(t, err)
	assert.Equal(t, store.ModeLegacyCall, m)

	var events []dto.StreamEvent
	err = svc.StreamChat(context.Background(), m, ctxReq, req.Messages, req.Model, func(ev dto.StreamEvent) error {
		events = append(events, ev)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, rec.records, 1)
	record := rec.records[0]
	assert.Equal(t, constant.ContextTypeCall, record.ContextType)
	require.NotNil(t, record.TranscriptId)
	assert.Equal(t, callId, *record.TranscriptId)
	assert.Equal(t, "How is this deal going?", record.UserMessage)
	assert.Equal(t, "The deal is on track.", record.Output)
	assert.Equal(t, 150, record.TotalTokens)
	assert.Equal(t, constant.RunStatusCompleted, record.Status)
	assert.Equal(t, "llama3", record.Model)

	// The full prompt column holds everything the model saw, system prompt
	// and conversation both.
	require.NotEmpty(t, record.Prompt)
	assert.Contains(t, record.Prompt, record.SystemPrompt)
	assert.Contains(t, record.Prompt, "user: How is this deal going?")

	assert.Equal(t, 1, meter.calls)
	assert.Equal(t, userId, meter.userId)
	assert.Equal(t, 150, meter.tokens)

	require.NotEmpty(t, events)
	assert.Equal(t, "sources", events[0].Type)
	assert.Equal(t, "legacy_call", events[0].Mode)
	done := events[len(events)-1]
	assert.Equal(t, "done", done.Type)
	require.NotNil(t, done.Usage)
	assert.Equal(t, 150, done.Usage.TotalTokens)
}

func TestStreamChat_FailureRecordsPartialOutput(t *testing.T) {
	inv := &fakeInvoker{
		deltas: []string{"Partial "},
		err:    errors.New("model went away"),
	}
	rec := &fakeRecorder{}
	meter := &fakeMeter{}
	svc := newService(inv, rec, meter, nil)

	req := &dto.ChatRequest{
		Messages: []dto.ChatMessage{{Role: "user", Content: "hi"}},
	}
	m, ctxReq, err := svc.ResolveMode(req)
	require.NoError(t, err)
	assert.Equal(t, store.ModeNoContext, m)

	var events []dto.StreamEvent
	err = svc.StreamChat(context.Background(), m, ctxReq, req.Messages, "", func(ev dto.StreamEvent) error {
		events = append(events, ev)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, rec.records, 1)
	record := rec.records[0]
	assert.Equal(t, constant.RunStatusError, record.Status)
	assert.Equal(t, "Partial ", record.Output)
	require.NotNil(t, record.ErrorMessage)
	assert.Equal(t, "model went away", *record.ErrorMessage)
	assert.Zero(t, record.Cost)

	// No usage came back, so nothing is metered.
	assert.Equal(t, 0, meter.calls)

	assert.Equal(t, "error", events[len(events)-1].Type)
}

func TestStreamChat_TrimmedHistoryReplaysSession(t *testing.T) {
	userId := uuid.New()
	inv := &fakeInvoker{
		deltas: []string{"Focus on the champion."},
		usage:  &llm.Usage{PromptTokens: 10, CompletionTokens: 5},
	}
	svc := newService(inv, &fakeRecorder{}, &fakeMeter{}, nil)

	noop := func(dto.StreamEvent) error { return nil }

	first := &dto.ChatRequest{
		Messages: []dto.ChatMessage{{Role: "user", Content: "Who is the champion here?"}},
		UserId:   &userId,
		PageType: constant.PageDashboard,
	}
	m, ctxReq, err := svc.ResolveMode(first)
	require.NoError(t, err)
	require.NoError(t, svc.StreamChat(context.Background(), m, ctxReq, first.Messages, "", noop))

	second := &dto.ChatRequest{
		Messages: []dto.ChatMessage{{Role: "user", Content: "And what should I do next?"}},
		UserId:   &userId,
		PageType: constant.PageDashboard,
	}
	m, ctxReq, err = svc.ResolveMode(second)
	require.NoError(t, err)
	require.NoError(t, svc.StreamChat(context.Background(), m, ctxReq, second.Messages, "", noop))

	// The second call sent only the new question, so the stored exchange is
	// replayed ahead of it.
	require.Len(t, inv.gotMessages, 3)
	assert.Equal(t, "Who is the champion here?", inv.gotMessages[0].Content)
	assert.Equal(t, constant.ChatRoleAssistant, inv.gotMessages[1].Role)
	assert.Equal(t, "Focus on the champion.", inv.gotMessages[1].Content)
	assert.Equal(t, "And what should I do next?", inv.gotMessages[2].Content)
}

func TestResolveMode_WorkspaceSearchWithoutUserIsRejected(t *testing.T) {
	svc := newService(&fakeInvoker{}, &fakeRecorder{}, &fakeMeter{}, nil)

	_, _, err := svc.ResolveMode(&dto.ChatRequest{
		Messages:          []dto.ChatMessage{{Role: "user", Content: "find pricing objections"}},
		UseSemanticSearch: true,
	})
	assert.ErrorIs(t, err, mode.ErrUserRequired)
}

func TestMarkBestRun_ClearsPreviousHolder(t *testing.T) {
	runId := uuid.New()
	userId := uuid.New()
	transcriptId := uuid.New()
	repo := &fakeRunRepo{
		runs: map[uuid.UUID]*entity.AgentRun{
			runId: {Id: runId, UserId: &userId, TranscriptId: &transcriptId},
		},
	}
	uow := &fakeUow{runs: repo}
	svc := newService(&fakeInvoker{}, &fakeRecorder{}, &fakeMeter{}, &fakeFactory{uow: uow})

	require.NoError(t, svc.MarkBestRun(context.Background(), userId, runId))

	assert.Equal(t, []uuid.UUID{transcriptId}, repo.unset)
	require.Len(t, repo.updated, 1)
	assert.True(t, repo.updated[0].IsBest)
	assert.True(t, uow.committed)
}

func TestMarkBestRun_UnknownRun(t *testing.T) {
	repo := &fakeRunRepo{runs: map[uuid.UUID]*entity.AgentRun{}}
	uow := &fakeUow{runs: repo}
	svc := newService(&fakeInvoker{}, &fakeRecorder{}, &fakeMeter{}, &fakeFactory{uow: uow})

	err := svc.MarkBestRun(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.Empty(t, repo.updated)
	assert.False(t, uow.committed)
}

func TestMarkBestRun_ForeignRunReadsAsNotFound(t *testing.T) {
	runId := uuid.New()
	ownerId := uuid.New()
	repo := &fakeRunRepo{
		runs: map[uuid.UUID]*entity.AgentRun{
			runId: {Id: runId, UserId: &ownerId},
		},
	}
	uow := &fakeUow{runs: repo}
	svc := newService(&fakeInvoker{}, &fakeRecorder{}, &fakeMeter{}, &fakeFactory{uow: uow})

	err := svc.MarkBestRun(context.Background(), uuid.New(), runId)
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.Empty(t, repo.unset)
	assert.Empty(t, repo.updated)
	assert.False(t, uow.committed)
}
