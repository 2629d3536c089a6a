package profile

import (
	"context"
	"testing"

	"github.com/zliveze/Project-Final-sub005/catalog"
	"github.com/zliveze/Project-Final-sub005/core"
	"github.com/zliveze/Project-Final-sub005/ledger"
)

func mustAppend(t *testing.T, l core.Ledger, rec *core.ActivityRecord) {
	t.Helper()
	if _, err := l.Append(context.Background(), rec); err != nil {
		t.Fatalf("Append(%+v) error = %v", rec, err)
	}
}

func testCatalog() *catalog.Memory {
	return catalog.NewMemory(
		&core.Product{
			ID: "p1", Name: "Cleanser",
			CategoryIDs: []string{"c1"}, BrandID: "b1", Tags: []string{"gentle"},
			Status: core.ProductActive,
		},
		&core.Product{
			ID: "p2", Name: "Serum",
			CategoryIDs: []string{"c2"}, BrandID: "b2", Tags: []string{"hydration"},
			Status: core.ProductActive,
		},
	)
}

// 权重累加：同一商品上 purchase(10) + view(1) => 该商品类目得 11 分。
func TestPreferredCategoriesWeighting(t *testing.T) {
	l := ledger.NewMemory()
	c := testCatalog()
	a := NewAggregator(l, c)
	ctx := context.Background()

	mustAppend(t, l, &core.ActivityRecord{UserID: "u1", ProductID: "p1", Type: core.ActivityPurchase})
	mustAppend(t, l, &core.ActivityRecord{UserID: "u1", ProductID: "p1", Type: core.ActivityView})

	scores, err := a.PreferredCategories(ctx, "u1")
	if err != nil {
		t.Fatalf("PreferredCategories() error = %v", err)
	}
	if scores["c1"] != 11 {
		t.Errorf("scores[c1] = %v, want 11", scores["c1"])
	}
	if len(scores) != 1 {
		t.Errorf("scores = %v, want only c1", scores)
	}
}

// 全部六种行为各一次落在同一商品上，累计权重应为 23。
func TestPreferenceScoresAllTypes(t *testing.T) {
	l := ledger.NewMemory()
	c := testCatalog()
	a := NewAggregator(l, c)
	ctx := context.Background()

	for _, typ := range []core.ActivityType{
		core.ActivitySearch, core.ActivityView, core.ActivityClick,
		core.ActivityAddToCart, core.ActivityPurchase, core.ActivityFilterUse,
	} {
		mustAppend(t, l, &core.ActivityRecord{UserID: "u1", ProductID: "p1", Type: typ})
	}

	scores, err := a.PreferredBrands(ctx, "u1")
	if err != nil {
		t.Fatalf("PreferredBrands() error = %v", err)
	}
	if scores["b1"] != 23 {
		t.Errorf("scores[b1] = %v, want 23", scores["b1"])
	}
}

// 幂等：同一账本状态下重复聚合结果一致。
func TestPreferenceScoresIdempotent(t *testing.T) {
	l := ledger.NewMemory()
	c := testCatalog()
	a := NewAggregator(l, c)
	ctx := context.Background()

	mustAppend(t, l, &core.ActivityRecord{UserID: "u1", ProductID: "p1", Type: core.ActivityClick})
	mustAppend(t, l, &core.ActivityRecord{UserID: "u1", ProductID: "p2", Type: core.ActivityView})

	first, err := a.PreferredTags(ctx, "u1")
	if err != nil {
		t.Fatalf("PreferredTags() error = %v", err)
	}
	second, _ := a.PreferredTags(ctx, "u1")
	if len(first) != len(second) {
		t.Fatalf("repeat aggregation diverged: %v vs %v", first, second)
	}
	for k, v := range first {
		if second[k] != v {
			t.Errorf("second[%s] = %v, want %v", k, second[k], v)
		}
	}
	if first["gentle"] != 2 || first["hydration"] != 1 {
		t.Errorf("tag scores = %v, want gentle=2 hydration=1", first)
	}
}

// 目录中已不存在的商品被静默跳过，不中断聚合。
func TestPreferenceScoresSkipsMissingProducts(t *testing.T) {
	l := ledger.NewMemory()
	c := testCatalog()
	a := NewAggregator(l, c)
	ctx := context.Background()

	mustAppend(t, l, &core.ActivityRecord{UserID: "u1", ProductID: "ghost", Type: core.ActivityPurchase})
	mustAppend(t, l, &core.ActivityRecord{UserID: "u1", ProductID: "p2", Type: core.ActivityView})

	scores, err := a.PreferredCategories(ctx, "u1")
	if err != nil {
		t.Fatalf("PreferredCategories() error = %v", err)
	}
	if scores["c2"] != 1 {
		t.Errorf("scores[c2] = %v, want 1", scores["c2"])
	}
	if len(scores) != 1 {
		t.Errorf("scores = %v, missing product should contribute nothing", scores)
	}
}

// 从新到旧、保留最近一次出现的去重。
func TestRecentlyViewedDedup(t *testing.T) {
	l := ledger.NewMemory()
	a := NewAggregator(l, testCatalog())
	ctx := context.Background()

	mustAppend(t, l, &core.ActivityRecord{UserID: "u1", ProductID: "p1", Type: core.ActivityView})
	mustAppend(t, l, &core.ActivityRecord{UserID: "u1", ProductID: "p2", Type: core.ActivityView})
	mustAppend(t, l, &core.ActivityRecord{UserID: "u1", ProductID: "p1", Type: core.ActivityView})
	// 其他类型不计入 view 维度
	mustAppend(t, l, &core.ActivityRecord{UserID: "u1", ProductID: "p2", Type: core.ActivityClick})

	got, err := a.RecentlyViewed(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("RecentlyViewed() error = %v", err)
	}
	want := []string{"p1", "p2"}
	if len(got) != len(want) {
		t.Fatalf("RecentlyViewed() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("RecentlyViewed() = %v, want %v", got, want)
		}
	}

	// limit 截断发生在去重之后
	got, _ = a.RecentlyViewed(ctx, "u1", 1)
	if len(got) != 1 || got[0] != "p1" {
		t.Errorf("RecentlyViewed(limit=1) = %v, want [p1]", got)
	}
}

func TestFilterUsagePatterns(t *testing.T) {
	l := ledger.NewMemory()
	a := NewAggregator(l, testCatalog())
	ctx := context.Background()

	mustAppend(t, l, &core.ActivityRecord{
		UserID: "u1", Type: core.ActivityFilterUse,
		Metadata: core.ActivityMetadata{Filters: &core.FilterSnapshot{
			CategoryIDs: []string{"c1", "c2"},
			BrandIDs:    []string{"b1"},
			SkinTypes:   []string{"oily"},
			Price:       &core.PriceRange{Min: 10, Max: 50},
		}},
	})
	mustAppend(t, l, &core.ActivityRecord{
		UserID: "u1", Type: core.ActivityFilterUse,
		Metadata: core.ActivityMetadata{Filters: &core.FilterSnapshot{
			CategoryIDs: []string{"c1"},
			Tags:        []string{"vegan"},
			Concerns:    []string{"acne"},
		}},
	})
	// 快照为空的记录被跳过
	mustAppend(t, l, &core.ActivityRecord{UserID: "u1", Type: core.ActivityFilterUse})

	got, err := a.FilterUsagePatterns(ctx, "u1")
	if err != nil {
		t.Fatalf("FilterUsagePatterns() error = %v", err)
	}
	// 计数按出现次数 +1，与行为权重表无关
	if got.Categories["c1"] != 2 || got.Categories["c2"] != 1 {
		t.Errorf("Categories = %v, want c1=2 c2=1", got.Categories)
	}
	if got.Brands["b1"] != 1 {
		t.Errorf("Brands = %v, want b1=1", got.Brands)
	}
	if got.Tags["vegan"] != 1 || got.SkinTypes["oily"] != 1 || got.Concerns["acne"] != 1 {
		t.Errorf("Tags/SkinTypes/Concerns = %v / %v / %v", got.Tags, got.SkinTypes, got.Concerns)
	}
	if len(got.PriceRanges) != 1 || got.PriceRanges[0].Max != 50 {
		t.Errorf("PriceRanges = %v, want one range with max 50", got.PriceRanges)
	}
}

func TestSearchHistory(t *testing.T) {
	l := ledger.NewMemory()
	a := NewAggregator(l, testCatalog())
	ctx := context.Background()

	mustAppend(t, l, &core.ActivityRecord{
		UserID: "u1", Type: core.ActivitySearch,
		Metadata: core.ActivityMetadata{SearchQuery: "cleanser"},
	})
	mustAppend(t, l, &core.ActivityRecord{
		UserID: "u1", Type: core.ActivitySearch,
		Metadata: core.ActivityMetadata{SearchQuery: "serum"},
	})
	// 重复搜索词保留：历史不做去重
	mustAppend(t, l, &core.ActivityRecord{
		UserID: "u1", Type: core.ActivitySearch,
		Metadata: core.ActivityMetadata{SearchQuery: "cleanser"},
	})

	got, err := a.SearchHistory(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("SearchHistory() error = %v", err)
	}
	want := []string{"cleanser", "serum", "cleanser"}
	if len(got) != len(want) {
		t.Fatalf("SearchHistory() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SearchHistory() = %v, want %v", got, want)
		}
	}
}
