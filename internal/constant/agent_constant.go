package constant

// Page types the dashboard can report in page-aware chat requests.
const (
	PageDashboard     = "dashboard"
	PageCalls         = "calls"
	PageCallDetail    = "call_detail"
	PageCompanies     = "companies"
	PageCompanyDetail = "company_detail"
	PageTeam          = "team"
)

// Legacy context types from the pre-page-aware client.
const (
	ContextTypeCall      = "call"
	ContextTypeCompany   = "company"
	ContextTypeWorkspace = "workspace"
)

// Agent run lifecycle.
const (
	AgentTypeSalesCopilot = "sales_copilot"

	RunStatusCompleted = "completed"
	RunStatusError     = "error"
)

// Chat message roles shared between the wire format and the LLM providers.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
	ChatRoleSystem    = "system"
)

// Limits baked into the context pipeline.
const (
	PreviousCallsLimit  = 5
	CompanyCallsLimit   = 10
	TranscriptLineLimit = 100
	SemanticSearchTopK  = 5
)

// ModelPrice is USD per 1M tokens.
type ModelPrice struct {
	Input  float64
	Output float64
}

// ModelPrices maps model ids to their token prices. Unknown models cost 0.
var ModelPrices = map[string]ModelPrice{
	"llama3":            {Input: 0, Output: 0},
	"qwen2.5":           {Input: 0, Output: 0},
	"gpt-4o":            {Input: 2.50, Output: 10.00},
	"gpt-4o-mini":       {Input: 0.15, Output: 0.60},
	"claude-sonnet-4-5": {Input: 3.00, Output: 15.00},
}

// CostFor computes the dollar cost for one run.
func CostFor(model string, promptTokens, completionTokens int) float64 {
	price, ok := ModelPrices[model]
	if !ok {
		return 0
	}
	return (float64(promptTokens)*price.Input + float64(completionTokens)*price.Output) / 1_000_000
}
