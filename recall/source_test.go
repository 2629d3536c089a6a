package recall

import (
	"context"
	"reflect"
	"testing"

	"github.com/zliveze/Project-Final-sub005/catalog"
	"github.com/zliveze/Project-Final-sub005/core"
)

func sourceCatalog() *catalog.Memory {
	return catalog.NewMemory(
		&core.Product{ID: "p1", Name: "Foam Cleanser", Description: "gentle foam",
			Tags: []string{"foam"}, Status: core.ProductActive, AverageRating: 4.2, IsBestSeller: true},
		&core.Product{ID: "p2", Name: "Hydra Serum", Description: "hydrating serum",
			Status: core.ProductActive, AverageRating: 4.8, IsBestSeller: true},
		&core.Product{ID: "p3", Name: "Clay Mask", Description: "deep clean",
			Status: core.ProductActive, AverageRating: 4.9},
		&core.Product{ID: "p4", Name: "Retired Foam", Tags: []string{"foam"},
			Status: core.ProductInactive, IsBestSeller: true},
	)
}

func TestBestSellerRecall(t *testing.T) {
	r := &BestSeller{Catalog: sourceCatalog()}

	items, err := r.Recall(context.Background(), &core.RecommendContext{Limit: 10})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	// 只含 active 热销商品，按评分降序
	want := []string{"p2", "p1"}
	if got := core.IDs(items); !reflect.DeepEqual(got, want) {
		t.Fatalf("Recall() = %v, want %v", got, want)
	}
	if items[0].Labels["recall_source"].Value != "bestseller" {
		t.Errorf("recall_source = %q", items[0].Labels["recall_source"].Value)
	}

	// nil rctx 取默认 limit，不崩溃
	if _, err := r.Recall(context.Background(), nil); err != nil {
		t.Errorf("Recall(nil rctx) error = %v", err)
	}
}

func TestSearchRecall(t *testing.T) {
	r := &Search{Catalog: sourceCatalog()}
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"single keyword", "serum", []string{"p2"}},
		{"case insensitive", "FOAM", []string{"p1"}},
		{"tokenized multi-word", "clay serum", []string{"p3", "p2"}},
		{"description match", "deep clean", []string{"p3"}},
		{"no match", "shampoo", nil},
		{"blank query", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := r.Recall(ctx, &core.RecommendContext{Query: tt.query, Limit: 10})
			if err != nil {
				t.Fatalf("Recall(%q) error = %v", tt.query, err)
			}
			got := core.IDs(items)
			if len(got) == 0 {
				got = nil
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Recall(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
