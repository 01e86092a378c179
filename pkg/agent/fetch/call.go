package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"sales-intel-be/internal/constant"
	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/repository/specification"
	"sales-intel-be/internal/repository/unitofwork"
	"sales-intel-be/pkg/cache"
	"sales-intel-be/pkg/store"

	"github.com/google/uuid"
)

// CallFetcher denormalizes one transcript into a text block for the prompt.
// Results are cached under call:<id> so repeated questions about the same
// call inside the TTL window hit the database once.
type CallFetcher struct {
	factory unitofwork.RepositoryFactory
	cache   cache.Store
	log     logger.ILogger
}

func NewCallFetcher(factory unitofwork.RepositoryFactory, cacheStore cache.Store, log logger.ILogger) *CallFetcher {
	return &CallFetcher{
		factory: factory,
		cache:   cacheStore,
		log:     log,
	}
}

func (f *CallFetcher) Fetch(ctx context.Context, callId uuid.UUID) store.CallContext {
	key := "call:" + callId.String()
	if cached, ok := f.cache.Get(key); ok {
		var cc store.CallContext
		if err := json.Unmarshal([]byte(cached), &cc); err == nil {
			return cc
		}
	}

	uow := f.factory.NewUnitOfWork(ctx)
	transcript, err := uow.TranscriptRepository().FindOne(ctx, specification.ByID{ID: callId})
	if err != nil || transcript == nil {
		f.log.Warn("fetch", "call context unavailable", map[string]interface{}{
			"call_id": callId.String(),
			"error":   errString(err),
		})
		return store.CallContext{}
	}

	cc := store.CallContext{
		Text:      renderCall(transcript),
		CompanyId: transcript.CompanyId,
		CallType:  inferCallType(transcript.Title, transcript.Summary),
	}

	if encoded, err := json.Marshal(cc); err == nil {
		f.cache.Set(key, string(encoded))
	}
	return cc
}

func renderCall(t *entity.Transcript) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Call: %s\n", t.Title))
	b.WriteString(fmt.Sprintf("Date: %s\n", t.CreatedAt.Format("2006-01-02")))
	if t.Score != nil {
		b.WriteString(fmt.Sprintf("Score: %d/100\n", *t.Score))
	}
	if t.DealSignal != "" {
		b.WriteString(fmt.Sprintf("Deal signal: %s\n", t.DealSignal))
	}

	if participants := asStringList(t.Participants); len(participants) > 0 {
		b.WriteString("Participants: " + strings.Join(participants, ", ") + "\n")
	}

	if t.Summary != "" {
		b.WriteString("\nSummary:\n" + t.Summary + "\n")
	}

	if analysis := decodeStringMap(t.Analysis); len(analysis) > 0 {
		b.WriteString("\nAnalysis:\n")
		keys := make([]string, 0, len(analysis))
		for k := range analysis {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(fmt.Sprintf("- %s: %s\n", k, analysis[k]))
		}
	}

	if risks := asStringList(t.RiskAlerts); len(risks) > 0 {
		b.WriteString("\nRisk alerts:\n")
		for _, r := range risks {
			b.WriteString("- " + r + "\n")
		}
	}

	if gaps := asStringList(t.QualificationGaps); len(gaps) > 0 {
		b.WriteString("\nQualification gaps:\n")
		for _, g := range gaps {
			b.WriteString("- " + g + "\n")
		}
	}

	if lines := decodeLines(t.Lines, constant.TranscriptLineLimit); len(lines) > 0 {
		b.WriteString("\nTranscript excerpt:\n")
		for _, line := range lines {
			if line.Speaker != "" {
				b.WriteString(fmt.Sprintf("%s: %s\n", line.Speaker, line.Text))
			} else {
				b.WriteString(line.Text + "\n")
			}
		}
	}

	return b.String()
}

var callTypeKeywords = []struct {
	callType string
	keywords []string
}{
	{"demo", []string{"demo", "demonstration", "walkthrough"}},
	{"discovery", []string{"discovery", "intro", "initial", "qualification"}},
	{"negotiation", []string{"negotiation", "pricing", "contract", "proposal"}},
	{"follow_up", []string{"follow up", "follow-up", "followup", "check in", "check-in"}},
}

// inferCallType classifies a call from its title and summary. Unknown stays
// empty rather than guessing.
func inferCallType(title, summary string) string {
	haystack := strings.ToLower(title + " " + summary)
	for _, entry := range callTypeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(haystack, kw) {
				return entry.callType
			}
		}
	}
	return ""
}

func errString(err error) string {
	if err == nil {
		return "record not found"
	}
	return err.Error()
}
