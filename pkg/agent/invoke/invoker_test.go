package invoke

import (
	"context"
	"errors"
	"testing"
	"time"

	"sales-intel-be/internal/constant"
	"sales-intel-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

// scriptedProvider emits fixed deltas, then optionally fails.
type scriptedProvider struct {
	deltas      []string
	failAfter   bool
	gotMessages []llm.Message
	sawDeadline bool
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, *llm.Usage, error) {
	return "", nil, errors.New("not used")
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

func (p *scriptedProvider) ChatStream(ctx context.Context, history []llm.Message, onDelta llm.DeltaFunc, opts ...llm.Option) (string, *llm.Usage, error) {
	p.gotMessages = history
	_, p.sawDeadline = ctx.Deadline()

	var full string
	for _, d := range p.deltas {
		full += d
		if err := onDelta(d); err != nil {
			return full, nil, err
		}
	}
	if p.failAfter {
		return full, nil, errors.New("stream interrupted")
	}
	return full, &llm.Usage{PromptTokens: 10, CompletionTokens: 5}, nil
}

func TestStream_PrependsSystemPromptAndAppliesBudget(t *testing.T) {
	provider := &scriptedProvider{deltas: []string{"hi"}}
	inv := New(provider, 60*time.Second, noopLogger{})

	var seen string
	result := inv.Stream(context.Background(), "system prompt", []llm.Message{
		{Role: constant.ChatRoleUser, Content: "question"},
	}, "", func(delta string) error {
		seen += delta
		return nil
	})

	require.NoError(t, result.Err)
	assert.Equal(t, "hi", seen)
	assert.Equal(t, "hi", result.Output)
	assert.Equal(t, 15, result.Usage.Total())
	assert.True(t, provider.sawDeadline)

	require.Len(t, provider.gotMessages, 2)
	assert.Equal(t, constant.ChatRoleSystem, provider.gotMessages[0].Role)
	assert.Equal(t, "system prompt", provider.gotMessages[0].Content)
}

func TestStream_PartialOutputSurvivesFailure(t *testing.T) {
	provider := &scriptedProvider{deltas: []string{"Hello"}, failAfter: true}
	inv := New(provider, 60*time.Second, noopLogger{})

	result := inv.Stream(context.Background(), "sys", nil, "llama3", func(string) error { return nil })

	require.Error(t, result.Err)
	assert.Equal(t, "Hello", result.Output)
	assert.Nil(t, result.Usage)
	assert.Greater(t, result.Duration, time.Duration(0))
}

func TestStream_DeltaErrorStopsConsumption(t *testing.T) {
	provider := &scriptedProvider{deltas: []string{"a", "b", "c"}}
	inv := New(provider, 60*time.Second, noopLogger{})

	calls := 0
	result := inv.Stream(context.Background(), "sys", nil, "", func(string) error {
		calls++
		if calls == 2 {
			return errors.New("client gone")
		}
		return nil
	})

	require.Error(t, result.Err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "ab", result.Output)
}
