package mode

import (
	"testing"

	"sales-intel-be/internal/constant"
	"sales-intel-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(id uuid.UUID) *uuid.UUID {
	return &id
}

func TestResolve_Precedence(t *testing.T) {
	userId := ptr(uuid.New())
	contextId := ptr(uuid.New())

	tests := []struct {
		name string
		req  store.ContextRequest
		want store.Mode
	}{
		{
			name: "page type plus user wins over everything",
			req: store.ContextRequest{
				PageType:          constant.PageDashboard,
				UserId:            userId,
				ContextType:       constant.ContextTypeCall,
				ContextId:         contextId,
				UseSemanticSearch: true,
			},
			want: store.ModePageSpecific,
		},
		{
			name: "semantic flag beats legacy context",
			req: store.ContextRequest{
				UserId:            userId,
				ContextType:       constant.ContextTypeCall,
				ContextId:         contextId,
				UseSemanticSearch: true,
			},
			want: store.ModeSemanticWorkspace,
		},
		{
			name: "workspace context type routes to semantic",
			req: store.ContextRequest{
				UserId:      userId,
				ContextType: constant.ContextTypeWorkspace,
			},
			want: store.ModeSemanticWorkspace,
		},
		{
			name: "legacy call",
			req: store.ContextRequest{
				UserId:      userId,
				ContextType: constant.ContextTypeCall,
				ContextId:   contextId,
			},
			want: store.ModeLegacyCall,
		},
		{
			name: "legacy company",
			req: store.ContextRequest{
				UserId:      userId,
				ContextType: constant.ContextTypeCompany,
				ContextId:   contextId,
			},
			want: store.ModeLegacyCompany,
		},
		{
			name: "legacy context without id falls through to workspace",
			req: store.ContextRequest{
				UserId:      userId,
				ContextType: constant.ContextTypeCall,
			},
			want: store.ModeFallbackWorkspace,
		},
		{
			name: "user only",
			req: store.ContextRequest{
				UserId: userId,
			},
			want: store.ModeFallbackWorkspace,
		},
		{
			name: "nothing set",
			req:  store.ContextRequest{},
			want: store.ModeNoContext,
		},
		{
			name: "page type without user does not trigger page mode",
			req: store.ContextRequest{
				PageType:    constant.PageCalls,
				ContextType: constant.ContextTypeCompany,
				ContextId:   contextId,
			},
			want: store.ModeLegacyCompany,
		},
	}

	d := NewDispatcher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Resolve(&tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_SemanticWithoutUserIsFatal(t *testing.T) {
	d := NewDispatcher()

	_, err := d.Resolve(&store.ContextRequest{UseSemanticSearch: true})
	assert.ErrorIs(t, err, ErrUserRequired)

	_, err = d.Resolve(&store.ContextRequest{ContextType: constant.ContextTypeWorkspace})
	assert.ErrorIs(t, err, ErrUserRequired)
}

func TestResolve_UnknownPageType(t *testing.T) {
	d := NewDispatcher()
	userId := ptr(uuid.New())

	_, err := d.Resolve(&store.ContextRequest{PageType: "settings", UserId: userId})
	assert.Error(t, err)
}
