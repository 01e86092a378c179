package runlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"sales-intel-be/internal/constant"
	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/repository/contract"
	"sales-intel-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
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

type capturingRunRepo struct {
	contract.AgentRunRepository
	created chan *entity.AgentRun
	fail    bool
}

func (r *capturingRunRepo) Create(ctx context.Context, run *entity.AgentRun) error {
	if r.fail {
		r.created <- nil
		return errors.New("db down")
	}
	r.created <- run
	return nil
}

type fakeUow struct {
	unitofwork.UnitOfWork
	runs contract.AgentRunRepository
}

func (f *fakeUow) AgentRunRepository() contract.AgentRunRepository {
	return f.runs
}

type fakeFactory struct {
	uow unitofwork.UnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func TestRecorder_PersistsExactlyOneRecord(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	repo := &capturingRunRepo{created: make(chan *entity.AgentRun, 1)}
	factory := &fakeFactory{uow: &fakeUow{runs: repo}}

	recorder := NewRecorder(pubSub, "runs", factory, nil, noopLogger{})
	require.NoError(t, recorder.Consume(context.Background()))

	runLogger := NewLogger(pubSub, "runs", noopLogger{})
	runLogger.Log(&entity.AgentRun{
		AgentType:   constant.AgentTypeSalesCopilot,
		Status:      constant.RunStatusCompleted,
		Output:      "answer",
		TotalTokens: 15,
	})

	select {
	case record := <-repo.created:
		require.NotNil(t, record)
		assert.NotEqual(t, uuid.Nil, record.Id)
		assert.Equal(t, constant.RunStatusCompleted, record.Status)
		assert.Equal(t, "answer", record.Output)
		assert.False(t, record.CreatedAt.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("run record was never persisted")
	}

	select {
	case record := <-repo.created:
		t.Fatalf("unexpected second persist: %+v", record)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRecorder_PersistFailureIsSwallowed(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	repo := &capturingRunRepo{created: make(chan *entity.AgentRun, 2), fail: true}
	factory := &fakeFactory{uow: &fakeUow{runs: repo}}

	recorder := NewRecorder(pubSub, "runs", factory, nil, noopLogger{})
	require.NoError(t, recorder.Consume(context.Background()))

	runLogger := NewLogger(pubSub, "runs", noopLogger{})
	runLogger.Log(&entity.AgentRun{Status: constant.RunStatusError})

	select {
	case <-repo.created:
	case <-time.After(2 * time.Second):
		t.Fatal("create was never attempted")
	}

	// No retry: the failed record is not re-delivered
	select {
	case <-repo.created:
		t.Fatal("record was retried after failure")
	case <-time.After(200 * time.Millisecond):
	}
}
