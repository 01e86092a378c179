package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"

	"sales-intel-be/internal/dto"
	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/pkg/serverutils"
	"sales-intel-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IAgentController interface {
	RegisterRoutes(r fiber.Router)
}

type agentController struct {
	service service.IAgentService
	log     logger.ILogger
}

func NewAgentController(svc service.IAgentService, log logger.ILogger) IAgentController {
	return &agentController{
		service: svc,
		log:     log,
	}
}

func (c *agentController) RegisterRoutes(r fiber.Router) {
	g := r.Group("/agent/v1", serverutils.JwtMiddleware)
	g.Post("/chat", c.Chat)
	g.Get("/runs", c.ListRuns)
	g.Patch("/runs/:id/best", c.MarkBest)
}

// Chat resolves the retrieval mode, then streams the model answer as
// server-sent events. Mode resolution failures are the only errors reported
// over HTTP status codes; once the stream starts, errors travel in-band.
func (c *agentController) Chat(ctx *fiber.Ctx) error {
	req := new(dto.ChatRequest)
	if err := ctx.BodyParser(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	if req.UserId == nil {
		if id, err := authenticatedUserId(ctx); err == nil {
			req.UserId = &id
		}
	}

	mode, ctxReq, err := c.service.ResolveMode(req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")

	messages := req.Messages
	model := req.Model

	// The stream writer runs after this handler returns, so it gets its own
	// context. The invoker applies the request wall-clock budget.
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		streamCtx := context.Background()
		err := c.service.StreamChat(streamCtx, mode, ctxReq, messages, model, func(ev dto.StreamEvent) error {
			return writeEvent(w, ev)
		})
		if err != nil {
			c.log.Warn("agent_controller", "chat stream aborted", map[string]interface{}{
				"mode":  string(mode),
				"error": err.Error(),
			})
		}
	}))

	return nil
}

func (c *agentController) ListRuns(ctx *fiber.Ctx) error {
	userId, err := authenticatedUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "invalid user id in token"))
	}

	req := new(dto.ListRunsRequest)
	if err := ctx.QueryParser(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid query parameters"))
	}

	runs, err := c.service.GetRuns(ctx.Context(), userId, req.Limit, req.Offset)
	if err != nil {
		c.log.Error("agent_controller", "failed to list runs", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, "failed to list runs"))
	}

	return ctx.JSON(serverutils.SuccessResponse("runs retrieved", runs))
}

func (c *agentController) MarkBest(ctx *fiber.Ctx) error {
	userId, err := authenticatedUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "invalid user id in token"))
	}

	runId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid run id"))
	}

	if err := c.service.MarkBestRun(ctx.Context(), userId, runId); err != nil {
		if errors.Is(err, service.ErrRunNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, err.Error()))
		}
		c.log.Error("agent_controller", "failed to mark best run", map[string]interface{}{
			"run_id": runId.String(),
			"error":  err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, "failed to mark best run"))
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("run marked as best", nil))
}

func authenticatedUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, errors.New("missing user id claim")
	}
	return uuid.Parse(raw)
}

func writeEvent(w *bufio.Writer, ev dto.StreamEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := w.WriteString("data: "); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	if _, err := w.WriteString("\n\n"); err != nil {
		return err
	}
	return w.Flush()
}
