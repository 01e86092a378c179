package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"sales-intel-be/internal/constant"
	"sales-intel-be/internal/dto"
	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/repository/specification"
	"sales-intel-be/internal/repository/unitofwork"
	"sales-intel-be/pkg/agent/invoke"
	"sales-intel-be/pkg/agent/prompt"
	"sales-intel-be/pkg/llm"
	"sales-intel-be/pkg/store"

	"github.com/google/uuid"
)

var ErrRunNotFound = errors.New("agent run not found")

type IAgentService interface {
	ResolveMode(req *dto.ChatRequest) (store.Mode, *store.ContextRequest, error)
	StreamChat(ctx context.Context, mode store.Mode, req *store.ContextRequest, history []dto.ChatMessage, model string, onEvent func(dto.StreamEvent) error) error
	GetRuns(ctx context.Context, userId uuid.UUID, limit int, offset int) ([]*dto.RunResponse, error)
	MarkBestRun(ctx context.Context, userId uuid.UUID, runId uuid.UUID) error
}

type modeResolver interface {
	Resolve(req *store.ContextRequest) (store.Mode, error)
}

type contextLoader interface {
	Load(ctx context.Context, mode store.Mode, req *store.ContextRequest) *store.ContextBundle
}

type modelInvoker interface {
	Stream(ctx context.Context, systemPrompt string, history []llm.Message, model string, onDelta llm.DeltaFunc) invoke.Result
}

type runRecorder interface {
	Log(record *entity.AgentRun)
}

type usageMeter interface {
	Track(ctx context.Context, userId uuid.UUID, promptTokens int, completionTokens int, model string)
}

type sessionStore interface {
	Save(session *store.ChatSession)
	Get(sessionID string) (*store.ChatSession, bool)
}

type agentService struct {
	dispatcher   modeResolver
	loader       contextLoader
	invoker      modelInvoker
	runLogger    runRecorder
	meter        usageMeter
	sessions     sessionStore
	uowFactory   unitofwork.RepositoryFactory
	defaultModel string
	log          logger.ILogger
}

func NewAgentService(
	dispatcher modeResolver,
	loader contextLoader,
	invoker modelInvoker,
	runLogger runRecorder,
	meter usageMeter,
	sessions sessionStore,
	uowFactory unitofwork.RepositoryFactory,
	defaultModel string,
	log logger.ILogger,
) IAgentService {
	return &agentService{
		dispatcher:   dispatcher,
		loader:       loader,
		invoker:      invoker,
		runLogger:    runLogger,
		meter:        meter,
		sessions:     sessions,
		uowFactory:   uowFactory,
		defaultModel: defaultModel,
		log:          log,
	}
}

// ResolveMode normalizes the wire request and resolves its retrieval mode up
// front, so the controller can reject bad requests before the stream starts.
func (s *agentService) ResolveMode(req *dto.ChatRequest) (store.Mode, *store.ContextRequest, error) {
	ctxReq := &store.ContextRequest{
		PageType:          req.PageType,
		PageContext:       req.PageContext,
		ContextType:       req.ContextType,
		ContextId:         req.ContextId,
		UserId:            req.UserId,
		UseSemanticSearch: req.UseSemanticSearch,
		Query:             lastUserMessage(req.Messages),
	}

	mode, err := s.dispatcher.Resolve(ctxReq)
	if err != nil {
		return "", nil, err
	}
	return mode, ctxReq, nil
}

func (s *agentService) StreamChat(ctx context.Context, mode store.Mode, req *store.ContextRequest, history []dto.ChatMessage, model string, onEvent func(dto.StreamEvent) error) error {
	if model == "" {
		model = s.defaultModel
	}

	if err := onEvent(dto.StreamEvent{Type: "sources", Mode: string(mode)}); err != nil {
		return err
	}

	bundle := s.loader.Load(ctx, mode, req)
	systemPrompt := prompt.Format(mode, bundle)

	messages := make([]llm.Message, 0, len(history))
	for _, m := range history {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	// A client that sends only the new question still gets its recent
	// exchange on the same page replayed from the session store.
	if req.UserId != nil && len(messages) == 1 {
		messages = append(s.sessionHistory(*req.UserId, req.PageType), messages...)
	}

	result := s.invoker.Stream(ctx, systemPrompt, messages, model, func(delta string) error {
		return onEvent(dto.StreamEvent{Type: "delta", Delta: delta})
	})

	record := s.buildRecord(mode, req, systemPrompt, messages, model, result)
	s.runLogger.Log(record)

	if req.UserId != nil && result.Usage != nil {
		s.meter.Track(ctx, *req.UserId, result.Usage.PromptTokens, result.Usage.CompletionTokens, model)
	}

	if req.UserId != nil && result.Err == nil {
		s.appendSessionTurns(*req.UserId, req.PageType, req.Query, result.Output)
	}

	if result.Err != nil {
		return onEvent(dto.StreamEvent{Type: "error", Message: result.Err.Error()})
	}

	done := dto.StreamEvent{Type: "done"}
	if result.Usage != nil {
		done.Usage = &dto.StreamUsage{
			PromptTokens:     result.Usage.PromptTokens,
			CompletionTokens: result.Usage.CompletionTokens,
			TotalTokens:      result.Usage.Total(),
		}
	}
	return onEvent(done)
}

// buildRecord assembles the run row from whatever the stream produced. Partial
// output from a failed stream is recorded as-is with an error status.
func (s *agentService) buildRecord(mode store.Mode, req *store.ContextRequest, systemPrompt string, messages []llm.Message, model string, result invoke.Result) *entity.AgentRun {
	record := &entity.AgentRun{
		AgentType:    constant.AgentTypeSalesCopilot,
		Prompt:       renderFullPrompt(systemPrompt, messages),
		SystemPrompt: systemPrompt,
		UserMessage:  req.Query,
		Output:       result.Output,
		Model:        model,
		UserId:       req.UserId,
		ContextType:  recordContextType(mode, req),
		DurationMs:   result.Duration.Milliseconds(),
		Status:       constant.RunStatusCompleted,
	}

	if result.Usage != nil {
		record.PromptTokens = result.Usage.PromptTokens
		record.CompletionTokens = result.Usage.CompletionTokens
		record.TotalTokens = result.Usage.Total()
		record.Cost = constant.CostFor(model, result.Usage.PromptTokens, result.Usage.CompletionTokens)
	}

	switch mode {
	case store.ModeLegacyCall:
		record.TranscriptId = req.ContextId
	case store.ModeLegacyCompany:
		record.CompanyId = req.ContextId
	case store.ModePageSpecific:
		record.TranscriptId = req.PageContext.TranscriptId
		record.CompanyId = req.PageContext.CompanyId
	}

	if result.Err != nil {
		record.Status = constant.RunStatusError
		msg := result.Err.Error()
		record.ErrorMessage = &msg
	}
	return record
}

func (s *agentService) GetRuns(ctx context.Context, userId uuid.UUID, limit int, offset int) ([]*dto.RunResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	runs, err := uow.AgentRunRepository().FindAll(ctx,
		specification.UserOwnedBy{UserId: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.RunResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, toRunResponse(run))
	}
	return out, nil
}

// MarkBestRun flags one run as the best answer for its transcript. Only one
// run per transcript can hold the flag, so the previous holder is cleared in
// the same transaction. Runs are owner-scoped: a run id belonging to another
// user reads as not found.
func (s *agentService) MarkBestRun(ctx context.Context, userId uuid.UUID, runId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	repo := uow.AgentRunRepository()
	run, err := repo.FindOne(ctx, specification.ByID{ID: runId}, specification.UserOwnedBy{UserId: userId})
	if err != nil {
		return err
	}
	if run == nil {
		return ErrRunNotFound
	}

	if run.TranscriptId != nil {
		if err := repo.UnsetBestForTranscript(ctx, *run.TranscriptId); err != nil {
			return err
		}
	}

	run.IsBest = true
	if err := repo.Update(ctx, run); err != nil {
		return err
	}

	return uow.Commit()
}

// sessionReplayTurns caps how much stored conversation is replayed in front
// of a trimmed client history.
const sessionReplayTurns = 10

// sessionHistory returns the stored recent exchange for this user and page,
// oldest first, ready to prepend to the outgoing messages.
func (s *agentService) sessionHistory(userId uuid.UUID, pageType string) []llm.Message {
	if s.sessions == nil {
		return nil
	}

	session, ok := s.sessions.Get(userId.String() + ":" + pageType)
	if !ok {
		return nil
	}

	turns := session.Turns
	if len(turns) > sessionReplayTurns {
		turns = turns[len(turns)-sessionReplayTurns:]
	}

	replay := make([]llm.Message, 0, len(turns))
	for _, turn := range turns {
		replay = append(replay, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	return replay
}

// appendSessionTurns keeps a short lived per-user conversation in process
// memory, so a follow-up question on the same page can be answered with the
// prior exchange even if the client sends a trimmed history.
func (s *agentService) appendSessionTurns(userId uuid.UUID, pageType string, query string, answer string) {
	if s.sessions == nil {
		return
	}

	key := userId.String() + ":" + pageType
	session, ok := s.sessions.Get(key)
	if !ok {
		session = &store.ChatSession{
			ID:        key,
			UserId:    userId,
			PageType:  pageType,
			CreatedAt: time.Now(),
		}
	}
	session.Turns = append(session.Turns,
		store.ChatTurn{Role: constant.ChatRoleUser, Content: query},
		store.ChatTurn{Role: constant.ChatRoleAssistant, Content: answer},
	)
	s.sessions.Save(session)
}

// renderFullPrompt flattens everything sent to the model, system prompt
// included, into the single text column the reporting UI reads.
func renderFullPrompt(systemPrompt string, messages []llm.Message) string {
	var b strings.Builder
	b.WriteString(constant.ChatRoleSystem)
	b.WriteString(": ")
	b.WriteString(systemPrompt)
	for _, m := range messages {
		b.WriteString("\n")
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
	}
	return b.String()
}

func lastUserMessage(messages []dto.ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == constant.ChatRoleUser {
			return messages[i].Content
		}
	}
	return ""
}

func recordContextType(mode store.Mode, req *store.ContextRequest) string {
	switch mode {
	case store.ModeLegacyCall:
		return constant.ContextTypeCall
	case store.ModeLegacyCompany:
		return constant.ContextTypeCompany
	case store.ModePageSpecific:
		return req.PageType
	case store.ModeSemanticWorkspace, store.ModeFallbackWorkspace:
		return constant.ContextTypeWorkspace
	default:
		return "none"
	}
}

func toRunResponse(run *entity.AgentRun) *dto.RunResponse {
	return &dto.RunResponse{
		Id:               run.Id,
		AgentType:        run.AgentType,
		Model:            run.Model,
		UserMessage:      run.UserMessage,
		Output:           run.Output,
		PromptTokens:     run.PromptTokens,
		CompletionTokens: run.CompletionTokens,
		TotalTokens:      run.TotalTokens,
		Cost:             run.Cost,
		ContextType:      run.ContextType,
		TranscriptId:     run.TranscriptId,
		CompanyId:        run.CompanyId,
		DurationMs:       run.DurationMs,
		Status:           run.Status,
		ErrorMessage:     run.ErrorMessage,
		IsBest:           run.IsBest,
		CreatedAt:        run.CreatedAt,
	}
}
