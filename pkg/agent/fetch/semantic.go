package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/repository/unitofwork"
	"sales-intel-be/pkg/embedding"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// SemanticFetcher answers free-text workspace questions with the top-K most
// similar transcript chunks owned by the user. Query embeddings are memoized
// so retries of the same question skip the embedding round trip.
type SemanticFetcher struct {
	factory  unitofwork.RepositoryFactory
	embedder embedding.EmbeddingProvider
	queries  *gocache.Cache
	log      logger.ILogger
}

func NewSemanticFetcher(factory unitofwork.RepositoryFactory, embedder embedding.EmbeddingProvider, log logger.ILogger) *SemanticFetcher {
	return &SemanticFetcher{
		factory:  factory,
		embedder: embedder,
		queries:  gocache.New(10*time.Minute, 15*time.Minute),
		log:      log,
	}
}

func (f *SemanticFetcher) Search(ctx context.Context, userId uuid.UUID, query string, topK int) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}

	vector := f.embedQuery(query)
	if vector == nil {
		return ""
	}

	uow := f.factory.NewUnitOfWork(ctx)
	chunks, err := uow.TranscriptEmbeddingRepository().SearchSimilar(ctx, vector, topK, userId)
	if err != nil {
		f.log.Warn("fetch", "semantic search unavailable", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return ""
	}
	if len(chunks) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Relevant excerpts from your workspace:\n")
	for _, chunk := range chunks {
		b.WriteString(fmt.Sprintf("\n[%s]\n%s\n", chunk.TranscriptTitle, chunk.Embedding.Document))
	}
	return b.String()
}

func (f *SemanticFetcher) embedQuery(query string) []float32 {
	if cached, found := f.queries.Get(query); found {
		return cached.([]float32)
	}

	resp, err := f.embedder.Generate(query, embedding.TaskTypeQuery)
	if err != nil || resp == nil || len(resp.Embedding.Values) == 0 {
		f.log.Warn("fetch", "query embedding failed", map[string]interface{}{
			"error": errString(err),
		})
		return nil
	}

	f.queries.Set(query, resp.Embedding.Values, gocache.DefaultExpiration)
	return resp.Embedding.Values
}
