package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/repository/contract"
	"sales-intel-be/internal/repository/specification"
	"sales-intel-be/internal/repository/unitofwork"
	"sales-intel-be/pkg/cache"

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

type stubTranscripts struct {
	contract.TranscriptRepository
	findOne  func(ctx context.Context, specs ...specification.Specification) (*entity.Transcript, error)
	findAll  func(ctx context.Context, specs ...specification.Specification) ([]*entity.Transcript, error)
	findOnes int32
}

func (s *stubTranscripts) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transcript, error) {
	atomic.AddInt32(&s.findOnes, 1)
	return s.findOne(ctx, specs...)
}

func (s *stubTranscripts) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transcript, error) {
	if s.findAll == nil {
		return nil, nil
	}
	return s.findAll(ctx, specs...)
}

type stubCompanies struct {
	contract.CompanyRepository
	findOne  func(ctx context.Context, specs ...specification.Specification) (*entity.Company, error)
	findOnes int32
}

func (s *stubCompanies) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Company, error) {
	atomic.AddInt32(&s.findOnes, 1)
	return s.findOne(ctx, specs...)
}

type stubUsers struct {
	contract.UserRepository
	findOne func(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
}

func (s *stubUsers) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	return s.findOne(ctx, specs...)
}

type stubTeamRoles struct {
	contract.TeamRoleRepository
	findAll func(ctx context.Context, specs ...specification.Specification) ([]*entity.TeamRole, error)
}

func (s *stubTeamRoles) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TeamRole, error) {
	return s.findAll(ctx, specs...)
}

type stubUow struct {
	unitofwork.UnitOfWork
	transcripts contract.TranscriptRepository
	companies   contract.CompanyRepository
	users       contract.UserRepository
	teamRoles   contract.TeamRoleRepository
}

func (s *stubUow) TranscriptRepository() contract.TranscriptRepository { return s.transcripts }
func (s *stubUow) CompanyRepository() contract.CompanyRepository       { return s.companies }
func (s *stubUow) UserRepository() contract.UserRepository             { return s.users }
func (s *stubUow) TeamRoleRepository() contract.TeamRoleRepository     { return s.teamRoles }

type stubFactory struct {
	uow unitofwork.UnitOfWork
}

func (s *stubFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return s.uow }

func intPtr(n int) *int { return &n }

func TestCallFetcher_RendersScoreAndTitle(t *testing.T) {
	callId := uuid.New()
	companyId := uuid.New()

	transcripts := &stubTranscripts{
		findOne: func(ctx context.Context, specs ...specification.Specification) (*entity.Transcript, error) {
			return &entity.Transcript{
				Id:           callId,
				Title:        "Demo Call",
				CompanyId:    &companyId,
				Score:        intPtr(72),
				DealSignal:   "positive",
				Summary:      "Walked through the demo environment.",
				Participants: json.RawMessage(`["Ana","Bo"]`),
				RiskAlerts:   json.RawMessage(`["no champion identified"]`),
				Lines:        json.RawMessage(`[{"speaker":"Ana","text":"Thanks for joining"}]`),
				CreatedAt:    time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	factory := &stubFactory{uow: &stubUow{transcripts: transcripts}}

	f := NewCallFetcher(factory, cache.NewMemory(5*time.Minute, 100), noopLogger{})
	cc := f.Fetch(context.Background(), callId)

	assert.Contains(t, cc.Text, "Demo Call")
	assert.Contains(t, cc.Text, "72/100")
	assert.Contains(t, cc.Text, "Ana, Bo")
	assert.Contains(t, cc.Text, "no champion identified")
	assert.Equal(t, "demo", cc.CallType)
	require.NotNil(t, cc.CompanyId)
	assert.Equal(t, companyId, *cc.CompanyId)
}

func TestCallFetcher_MissingCallDegradesToEmpty(t *testing.T) {
	transcripts := &stubTranscripts{
		findOne: func(ctx context.Context, specs ...specification.Specification) (*entity.Transcript, error) {
			return nil, nil
		},
	}
	factory := &stubFactory{uow: &stubUow{transcripts: transcripts}}

	f := NewCallFetcher(factory, cache.NewMemory(5*time.Minute, 100), noopLogger{})
	cc := f.Fetch(context.Background(), uuid.New())

	assert.Empty(t, cc.Text)
	assert.Nil(t, cc.CompanyId)
}

func TestCompanyFetcher_SecondFetchServedFromCache(t *testing.T) {
	companyId := uuid.New()

	companies := &stubCompanies{
		findOne: func(ctx context.Context, specs ...specification.Specification) (*entity.Company, error) {
			return &entity.Company{Id: companyId, Name: "Globex"}, nil
		},
	}
	transcripts := &stubTranscripts{
		findOne: func(ctx context.Context, specs ...specification.Specification) (*entity.Transcript, error) {
			return nil, nil
		},
	}
	factory := &stubFactory{uow: &stubUow{companies: companies, transcripts: transcripts}}

	f := NewCompanyFetcher(factory, cache.NewMemory(5*time.Minute, 100), noopLogger{})

	first := f.FetchContext(context.Background(), companyId)
	second := f.FetchContext(context.Background(), companyId)

	assert.Equal(t, first, second)

	assert.Contains(t, second, "Globex")
	assert.Equal(t, int32(1), atomic.LoadInt32(&companies.findOnes))
}

func TestPageFetcher_TeamTolerantOfMemberStatFailure(t *testing.T) {
	teamId := uuid.New()
	okMember := uuid.New()
	brokenMember := uuid.New()

	teamRoles := &stubTeamRoles{
		findAll: func(ctx context.Context, specs ...specification.Specification) ([]*entity.TeamRole, error) {
			return []*entity.TeamRole{
				{TeamId: teamId, UserId: brokenMember, Role: "SDR"},
				{TeamId: teamId, UserId: okMember, Role: "AE"},
			}, nil
		},
	}
	users := &stubUsers{
		findOne: func(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
			id := specs[0].(specification.ByID).ID
			if id == okMember {
				return &entity.User{Id: okMember, FullName: "Sam Closer"}, nil
			}
			return &entity.User{Id: brokenMember, FullName: "Pat Dialer"}, nil
		},
	}
	transcripts := &stubTranscripts{
		findAll: func(ctx context.Context, specs ...specification.Specification) ([]*entity.Transcript, error) {
			owner := specs[0].(specification.UserOwnedBy).UserId
			if owner == brokenMember {
				return nil, errors.New("stats query failed")
			}
			return []*entity.Transcript{
				{Title: "Win", Score: intPtr(90)},
				{Title: "Push", Score: intPtr(70)},
			}, nil
		},
	}
	factory := &stubFactory{uow: &stubUow{teamRoles: teamRoles, users: users, transcripts: transcripts}}

	f := NewPageFetcher(factory, nil, nil, noopLogger{})
	out := f.team(context.Background(), teamId)

	assert.Contains(t, out, "Sam Closer")
	assert.Contains(t, out, "2 calls, average 80/100")
	assert.Contains(t, out, "Pat Dialer")
}

func TestInferCallType(t *testing.T) {
	tests := []struct {
		title   string
		summary string
		want    string
	}{
		{"Acme product demo", "", "demo"},
		{"Intro with Globex", "", "discovery"},
		{"Q3 pricing discussion", "", "negotiation"},
		{"Weekly sync", "quick follow up on open items", "follow_up"},
		{"Untitled", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, inferCallType(tt.title, tt.summary), tt.title)
	}
}

func TestAsStringList_TolerantShapes(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, asStringList(json.RawMessage(`["a","b"]`)))
	assert.Equal(t, []string{"Ana"}, asStringList(json.RawMessage(`[{"name":"Ana"}]`)))
	assert.Equal(t, []string{"solo"}, asStringList(json.RawMessage(`"solo"`)))
	assert.Nil(t, asStringList(json.RawMessage(`{"not":"a list"}`)))
	assert.Nil(t, asStringList(nil))
}
