package invoke

import (
	"context"
	"time"

	"sales-intel-be/internal/constant"
	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/pkg/llm"
)

// Result is everything the run logger needs about one model invocation.
// Output carries whatever text was produced before a failure, so partial
// streams still get recorded.
type Result struct {
	Output   string
	Usage    *llm.Usage
	Duration time.Duration
	Err      error
}

// Invoker wraps the model provider with the request wall-clock budget and
// prepends the system prompt to the conversation.
type Invoker struct {
	provider llm.LLMProvider
	budget   time.Duration
	log      logger.ILogger
}

func New(provider llm.LLMProvider, budget time.Duration, log logger.ILogger) *Invoker {
	return &Invoker{
		provider: provider,
		budget:   budget,
		log:      log,
	}
}

// Stream runs one model call. Deltas are forwarded as they arrive; the caller
// sees output before the full answer exists. The budget covers the whole
// stream, and hitting it surfaces as an error result with partial output.
func (i *Invoker) Stream(ctx context.Context, systemPrompt string, history []llm.Message, model string, onDelta llm.DeltaFunc) Result {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, i.budget)
	defer cancel()

	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{Role: constant.ChatRoleSystem, Content: systemPrompt})
	messages = append(messages, history...)

	var opts []llm.Option
	if model != "" {
		opts = append(opts, llm.WithModel(model))
	}

	output, usage, err := i.provider.ChatStream(ctx, messages, onDelta, opts...)
	if err != nil {
		i.log.Error("invoke", "model stream failed", map[string]interface{}{
			"model":       model,
			"partial_len": len(output),
			"error":       err.Error(),
		})
	}

	return Result{
		Output:   output,
		Usage:    usage,
		Duration: time.Since(start),
		Err:      err,
	}
}
