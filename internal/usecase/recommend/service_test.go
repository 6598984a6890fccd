package recommend

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/furnidex/internal/domain"
	"github.com/kailas-cloud/furnidex/internal/domain/catalog"
	"github.com/kailas-cloud/furnidex/internal/domain/product"
	"github.com/kailas-cloud/furnidex/internal/domain/recommend/filters"
	"github.com/kailas-cloud/furnidex/internal/domain/recommend/request"
)

// --- Mocks ---

type stubEmbedder struct {
	vec      []float32
	err      error
	called   bool
	lastText string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	s.called = true
	s.lastText = text
	if s.err != nil {
		return domain.EmbeddingResult{}, s.err
	}
	return domain.EmbeddingResult{Embedding: s.vec, PromptTokens: 7, TotalTokens: 7}, nil
}

type item struct {
	id          string
	title       string
	description string
	categories  []string
	material    string
	color       string
	price       float64
	cos         float64 // desired cosine similarity against the unit query vector
}

// mkCatalog builds a 2-dimensional catalog where each item's vector has
// the requested cosine similarity against the query vector (1, 0).
func mkCatalog(t *testing.T, items []item) *catalog.Catalog {
	t.Helper()
	products := make([]product.Product, 0, len(items))
	vectors := make([][]float32, 0, len(items))
	for _, it := range items {
		cats := it.categories
		if cats == nil {
			cats = []string{"Furniture"}
		}
		price := it.price
		if price == 0 {
			price = 100
		}
		p, err := product.New(product.Params{
			ID:          it.id,
			Title:       it.title,
			Description: it.description,
			Categories:  cats,
			Material:    it.material,
			Color:       it.color,
			Price:       price,
		})
		if err != nil {
			t.Fatalf("product.New(%s): %v", it.id, err)
		}
		products = append(products, p)
		vectors = append(vectors, []float32{
			float32(it.cos),
			float32(math.Sqrt(1 - it.cos*it.cos)),
		})
	}
	cat, err := catalog.New(products, vectors)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return cat
}

func queryVec() []float32 { return []float32{1, 0} }

func mkService(t *testing.T, cat *catalog.Catalog, emb Embedder) *Service {
	t.Helper()
	svc, err := New(cat, emb, DefaultOptions(), zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return svc
}

func mkRequest(t *testing.T, query string, topK int, f filters.Filters) request.Request {
	t.Helper()
	req, err := request.New(query, topK, f)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return req
}

func resultIDs(res Result) []string {
	ids := make([]string, 0, len(res.Candidates))
	for i := range res.Candidates {
		ids = append(ids, res.Candidates[i].Product().ID())
	}
	return ids
}

func almostEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// --- Tests ---

func TestNew_InvalidWeights(t *testing.T) {
	opts := DefaultOptions()
	opts.Weights.Text = 0.5 // sum now 0.75

	_, err := New(catalog.Empty(), &stubEmbedder{}, opts, zap.NewNop())
	if err == nil {
		t.Fatal("expected error for weights not summing to 1.0")
	}
	if !strings.Contains(err.Error(), "sum to 1.0") {
		t.Errorf("err = %v, want weight sum message", err)
	}
}

func TestNew_InvalidFactors(t *testing.T) {
	opts := DefaultOptions()
	opts.ScanFactor = 1 // below FallbackFactor 2

	if _, err := New(catalog.Empty(), &stubEmbedder{}, opts, zap.NewNop()); err == nil {
		t.Fatal("expected error for scan factor below fallback factor")
	}
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	emb := &stubEmbedder{vec: queryVec()}
	svc := mkService(t, catalog.Empty(), emb)

	res, err := svc.Recommend(context.Background(), mkRequest(t, "oak table", 5, filters.Filters{}))
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(res.Candidates) != 0 {
		t.Errorf("got %d candidates, want 0", len(res.Candidates))
	}
	if emb.called {
		t.Error("embedder should not be called for an empty catalog")
	}
}

func TestRecommend_EmbedderError(t *testing.T) {
	cat := mkCatalog(t, []item{{id: "a", title: "Alder Bookcase", cos: 0.9}})
	svc := mkService(t, cat, &stubEmbedder{err: errors.New("provider down")})

	_, err := svc.Recommend(context.Background(), mkRequest(t, "zzxqnonsense", 5, filters.Filters{}))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "vectorize query") {
		t.Errorf("err = %v, want vectorize query wrap", err)
	}
}

func TestRecommend_DimensionMismatch(t *testing.T) {
	cat := mkCatalog(t, []item{{id: "a", title: "Alder Bookcase", cos: 0.9}})
	svc := mkService(t, cat, &stubEmbedder{vec: []float32{1, 0, 0}})

	_, err := svc.Recommend(context.Background(), mkRequest(t, "zzxqnonsense", 5, filters.Filters{}))
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Fatalf("err = %v, want ErrDimensionMismatch", err)
	}
	var dim *domain.DimensionMismatchError
	if !errors.As(err, &dim) {
		t.Fatal("want typed DimensionMismatchError")
	}
	if dim.Got != 3 || dim.Want != 2 {
		t.Errorf("got=%d want=%d, expected 3 and 2", dim.Got, dim.Want)
	}
}

func TestRecommend_RanksBySimilarityDesc(t *testing.T) {
	cat := mkCatalog(t, []item{
		{id: "a", title: "Alder Bookcase", cos: 0.9},
		{id: "b", title: "Birch Dresser", cos: 0.5},
		{id: "c", title: "Cedar Wardrobe Unit", cos: 0.7},
	})
	svc := mkService(t, cat, &stubEmbedder{vec: queryVec()})

	// A query with no taxonomy keywords keeps combined == text similarity.
	res, err := svc.Recommend(context.Background(), mkRequest(t, "zzxqnonsense", 5, filters.Filters{}))
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	ids := resultIDs(res)
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "c" || ids[2] != "b" {
		t.Fatalf("ids = %v, want [a c b]", ids)
	}
	if res.LowConfidence {
		t.Error("LowConfidence should be false above the threshold")
	}
	for i := range res.Candidates {
		c := &res.Candidates[i]
		if !almostEq(c.Score(), c.Similarity()) {
			t.Errorf("%s: score %v != similarity %v for keyword-free query",
				c.Product().ID(), c.Score(), c.Similarity())
		}
	}
}

func TestRecommend_KeywordBoostOutranksRawSimilarity(t *testing.T) {
	cat := mkCatalog(t, []item{
		{
			id: "dining-table", title: "Rustic Wooden Dining Table",
			description: "Solid wood dining table",
			categories:  []string{"Furniture", "Kitchen & Dining", "Tables"},
			material:    "wood", color: "brown", cos: 0.70,
		},
		{
			id: "sofa", title: "Leather Sectional Sofa",
			description: "Plush leather sofa",
			categories:  []string{"Furniture", "Living Room", "Sofas"},
			material:    "leather", color: "black", cos: 0.80,
		},
	})
	svc := mkService(t, cat, &stubEmbedder{vec: queryVec()})

	res, err := svc.Recommend(context.Background(), mkRequest(t, "wooden dining table", 5, filters.Filters{}))
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	ids := resultIDs(res)
	if len(ids) != 2 || ids[0] != "dining-table" || ids[1] != "sofa" {
		t.Fatalf("ids = %v, want keyword boost to put dining-table first", ids)
	}

	// dining-table: 0.75*0.70 text + 0.15*0.75 category + 0.05*1.0 material.
	top := &res.Candidates[0]
	if want := 0.75*0.70 + 0.15*0.75 + 0.05*1.0; !almostEq(top.Score(), want) {
		t.Errorf("top score = %v, want %v", top.Score(), want)
	}
	if !almostEq(top.Similarity(), 0.70) {
		t.Errorf("top similarity = %v, want 0.70", top.Similarity())
	}
	// sofa matches no keyword, so its combined score is weighted text only.
	if want := 0.75 * 0.80; !almostEq(res.Candidates[1].Score(), want) {
		t.Errorf("second score = %v, want %v", res.Candidates[1].Score(), want)
	}
}

func TestRecommend_RelaxedThreshold(t *testing.T) {
	cat := mkCatalog(t, []item{
		{id: "a", title: "Alder Bookcase", cos: 0.40},
		{id: "b", title: "Birch Dresser", cos: 0.30},
	})
	svc := mkService(t, cat, &stubEmbedder{vec: queryVec()})

	// 0.40 fails the 0.45 cut but passes the relaxed 0.3825; 0.30 fails both.
	res, err := svc.Recommend(context.Background(), mkRequest(t, "zzxqnonsense", 5, filters.Filters{}))
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	ids := resultIDs(res)
	if len(ids) != 1 || ids[0] != "a" {
		t.Fatalf("ids = %v, want [a] via relaxed threshold", ids)
	}
	if res.LowConfidence {
		t.Error("relaxed threshold hits are not low confidence")
	}
}

func TestRecommend_FallbackNeverEmpty(t *testing.T) {
	cat := mkCatalog(t, []item{
		{id: "a", title: "Alder Bookcase", cos: 0.20},
		{id: "b", title: "Birch Dresser", cos: 0.10},
		{id: "c", title: "Cedar Wardrobe Unit", cos: 0.05},
	})
	svc := mkService(t, cat, &stubEmbedder{vec: queryVec()})

	res, err := svc.Recommend(context.Background(), mkRequest(t, "zzxqnonsense", 1, filters.Filters{}))
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if !res.LowConfidence {
		t.Fatal("LowConfidence should be set when nothing clears the thresholds")
	}
	ids := resultIDs(res)
	if len(ids) != 1 || ids[0] != "a" {
		t.Fatalf("ids = %v, want the best raw match [a]", ids)
	}
}

func TestRecommend_StableOrderOnTies(t *testing.T) {
	cat := mkCatalog(t, []item{
		{id: "a", title: "Alder Bookcase", cos: 0.60},
		{id: "b", title: "Birch Dresser", cos: 0.60},
		{id: "c", title: "Cedar Wardrobe Unit", cos: 0.60},
	})
	svc := mkService(t, cat, &stubEmbedder{vec: queryVec()})

	res, err := svc.Recommend(context.Background(), mkRequest(t, "zzxqnonsense", 3, filters.Filters{}))
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	ids := resultIDs(res)
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Fatalf("ids = %v, want catalog order [a b c] on equal scores", ids)
	}
}

func TestRecommend_TruncatesToTopK(t *testing.T) {
	cat := mkCatalog(t, []item{
		{id: "a", title: "Alder Bookcase", cos: 0.95},
		{id: "b", title: "Birch Dresser", cos: 0.90},
		{id: "c", title: "Cedar Wardrobe Unit", cos: 0.85},
		{id: "d", title: "Douglas Fir Bench Seat", cos: 0.80},
	})
	svc := mkService(t, cat, &stubEmbedder{vec: queryVec()})

	res, err := svc.Recommend(context.Background(), mkRequest(t, "zzxqnonsense", 2, filters.Filters{}))
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	ids := resultIDs(res)
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("ids = %v, want top two [a b]", ids)
	}
}

func TestRecommend_MaxPriceFilter(t *testing.T) {
	cat := mkCatalog(t, []item{
		{id: "pricey", title: "Estate Dining Set", price: 300, cos: 0.90},
		{id: "cheap", title: "Starter Side Piece", price: 50, cos: 0.50},
	})
	svc := mkService(t, cat, &stubEmbedder{vec: queryVec()})

	maxPrice := 100.0
	req := mkRequest(t, "zzxqnonsense", 5, filters.Filters{MaxPrice: &maxPrice})
	res, err := svc.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	ids := resultIDs(res)
	if len(ids) != 1 || ids[0] != "cheap" {
		t.Fatalf("ids = %v, want only the item under the price cap", ids)
	}
}

func TestRecommend_FilterCanEmptyResults(t *testing.T) {
	cat := mkCatalog(t, []item{
		{id: "a", title: "Alder Bookcase", price: 500, cos: 0.90},
	})
	svc := mkService(t, cat, &stubEmbedder{vec: queryVec()})

	maxPrice := 10.0
	req := mkRequest(t, "zzxqnonsense", 5, filters.Filters{MaxPrice: &maxPrice})
	res, err := svc.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(res.Candidates) != 0 {
		t.Errorf("got %d candidates, want 0 after filtering", len(res.Candidates))
	}
}

func TestRecommend_PropagatesTokenUsage(t *testing.T) {
	cat := mkCatalog(t, []item{{id: "a", title: "Alder Bookcase", cos: 0.9}})
	svc := mkService(t, cat, &stubEmbedder{vec: queryVec()})

	res, err := svc.Recommend(context.Background(), mkRequest(t, "zzxqnonsense", 5, filters.Filters{}))
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if res.PromptTokens != 7 || res.TotalTokens != 7 {
		t.Errorf("tokens = %d/%d, want 7/7", res.PromptTokens, res.TotalTokens)
	}
}

func TestRecommend_PassesQueryTextToEmbedder(t *testing.T) {
	cat := mkCatalog(t, []item{{id: "a", title: "Alder Bookcase", cos: 0.9}})
	emb := &stubEmbedder{vec: queryVec()}
	svc := mkService(t, cat, emb)

	if _, err := svc.Recommend(context.Background(), mkRequest(t, "  walnut desk  ", 5, filters.Filters{})); err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if emb.lastText != "walnut desk" {
		t.Errorf("embedder received %q, want trimmed query", emb.lastText)
	}
}
