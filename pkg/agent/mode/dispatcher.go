package mode

import (
	"errors"
	"fmt"

	"sales-intel-be/internal/constant"
	"sales-intel-be/pkg/store"
)

// ErrUserRequired is returned when a workspace search branch matches but the
// request carries no user id. This is the only branch where a missing id is
// fatal instead of degrading.
var ErrUserRequired = errors.New("workspace search requires a user id")

var knownPageTypes = map[string]bool{
	constant.PageDashboard:     true,
	constant.PageCalls:         true,
	constant.PageCallDetail:    true,
	constant.PageCompanies:     true,
	constant.PageCompanyDetail: true,
	constant.PageTeam:          true,
}

// Dispatcher resolves exactly one retrieval mode per request. The branch
// order is load bearing: ambiguous inputs (say both pageType and a legacy
// contextType) are resolved here and nowhere else.
type Dispatcher struct{}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Resolve walks the branches in fixed precedence order and returns the first
// match.
func (d *Dispatcher) Resolve(req *store.ContextRequest) (store.Mode, error) {
	if req.PageType != "" && !knownPageTypes[req.PageType] {
		return "", fmt.Errorf("unknown page type %q", req.PageType)
	}

	switch {
	case req.PageType != "" && req.UserId != nil:
		return store.ModePageSpecific, nil

	case req.UseSemanticSearch || req.ContextType == constant.ContextTypeWorkspace:
		if req.UserId == nil {
			return "", ErrUserRequired
		}
		return store.ModeSemanticWorkspace, nil

	case req.ContextType == constant.ContextTypeCall && req.ContextId != nil:
		return store.ModeLegacyCall, nil

	case req.ContextType == constant.ContextTypeCompany && req.ContextId != nil:
		return store.ModeLegacyCompany, nil

	case req.UserId != nil:
		return store.ModeFallbackWorkspace, nil

	default:
		return store.ModeNoContext, nil
	}
}
