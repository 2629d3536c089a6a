// Package profile 实现偏好画像聚合：从行为账本推导用户在各属性维度上的
// 加权偏好分布。所有操作只读、无状态，同一账本状态下结果幂等。
package profile

import (
	"context"

	"github.com/zliveze/Project-Final-sub005/core"
)

// ScoreMap 是单个维度的偏好分布：属性 ID -> 累计权重（恒 >= 0）。
// 每次请求从账本重新计算，不持久化。
type ScoreMap map[string]float64

func (m ScoreMap) add(id string, weight float64) {
	if id == "" {
		return
	}
	m[id] += weight
}

// FilterPatterns 是筛选器使用模式的聚合结果。
// 计数按出现次数累加（+1），不使用行为权重表。
type FilterPatterns struct {
	Categories  ScoreMap
	Brands      ScoreMap
	Tags        ScoreMap
	SkinTypes   ScoreMap
	Concerns    ScoreMap
	PriceRanges []core.PriceRange
}

// DefaultFilterSampleSize 是筛选器模式聚合的默认采样量。
const DefaultFilterSampleSize = 50

// Aggregator 是偏好聚合器：读取用户的账本切片，产出各维度的偏好分布。
// Ledger / Catalog 通过构造注入，不依赖任何全局状态。
type Aggregator struct {
	Ledger  core.Ledger
	Catalog core.Catalog

	// FilterSampleSize 是 FilterUsagePatterns 的采样量，<= 0 时取默认值 50
	FilterSampleSize int
}

func NewAggregator(ledger core.Ledger, catalog core.Catalog) *Aggregator {
	return &Aggregator{Ledger: ledger, Catalog: catalog}
}

// RecentlyViewed 返回最近浏览过的商品 ID，从新到旧，按"保留最近一次出现"去重。
func (a *Aggregator) RecentlyViewed(ctx context.Context, userID string, limit int) ([]string, error) {
	return a.distinctProducts(ctx, userID, core.ActivityView, limit)
}

// MostAddedToCart 返回最近加购的商品 ID，从新到旧，去重规则同上。
func (a *Aggregator) MostAddedToCart(ctx context.Context, userID string, limit int) ([]string, error) {
	return a.distinctProducts(ctx, userID, core.ActivityAddToCart, limit)
}

// Purchased 返回购买过的商品 ID，从新到旧，去重规则同上。
func (a *Aggregator) Purchased(ctx context.Context, userID string, limit int) ([]string, error) {
	return a.distinctProducts(ctx, userID, core.ActivityPurchase, limit)
}

// distinctProducts 从新到旧扫描某类型的记录，跳过已输出的商品 ID，
// 即同一商品只保留最近一次出现的位置。
func (a *Aggregator) distinctProducts(ctx context.Context, userID string, typ core.ActivityType, limit int) ([]string, error) {
	records, err := a.Ledger.QueryByUser(ctx, userID, core.LedgerQuery{Type: typ})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(records))
	out := make([]string, 0, limit)
	for _, rec := range records {
		if rec.ProductID == "" || seen[rec.ProductID] {
			continue
		}
		seen[rec.ProductID] = true
		out = append(out, rec.ProductID)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// PreferredCategories 返回类目维度的偏好分布。
func (a *Aggregator) PreferredCategories(ctx context.Context, userID string) (ScoreMap, error) {
	return a.preferenceScores(ctx, userID, func(p *core.Product) []string {
		return p.CategoryIDs
	})
}

// PreferredBrands 返回品牌维度的偏好分布。
func (a *Aggregator) PreferredBrands(ctx context.Context, userID string) (ScoreMap, error) {
	return a.preferenceScores(ctx, userID, func(p *core.Product) []string {
		if p.BrandID == "" {
			return nil
		}
		return []string{p.BrandID}
	})
}

// PreferredTags 返回标签维度的偏好分布。
func (a *Aggregator) PreferredTags(ctx context.Context, userID string) (ScoreMap, error) {
	return a.preferenceScores(ctx, userID, func(p *core.Product) []string {
		return p.Tags
	})
}

// preferenceScores 遍历用户所有关联商品的行为记录，把行为权重累加到
// extract 取出的每个属性 ID 上。
//
// 商品解析失败（已删除/目录不可用）时该记录被跳过，不贡献任何分数，
// 也绝不中断整次聚合——部分信号好过整个请求失败。
func (a *Aggregator) preferenceScores(ctx context.Context, userID string, extract func(*core.Product) []string) (ScoreMap, error) {
	records, err := a.Ledger.QueryByUser(ctx, userID, core.LedgerQuery{})
	if err != nil {
		return nil, err
	}

	scores := make(ScoreMap)
	resolved := make(map[string]*core.Product) // 一次聚合内同一商品只查一次目录
	for _, rec := range records {
		if rec.ProductID == "" {
			continue
		}

		p, ok := resolved[rec.ProductID]
		if !ok {
			var err error
			p, err = a.Catalog.GetProduct(ctx, rec.ProductID)
			if err != nil {
				p = nil
			}
			resolved[rec.ProductID] = p
		}
		if p == nil {
			continue
		}

		weight := rec.Type.Weight()
		for _, id := range extract(p) {
			scores.add(id, weight)
		}
	}
	return scores, nil
}

// FilterUsagePatterns 聚合最近 N 条筛选行为（N = FilterSampleSize，默认 50）。
// 快照中的每个值给对应维度的计数 +1；价格区间原样收集。
func (a *Aggregator) FilterUsagePatterns(ctx context.Context, userID string) (*FilterPatterns, error) {
	sample := a.FilterSampleSize
	if sample <= 0 {
		sample = DefaultFilterSampleSize
	}

	records, err := a.Ledger.QueryByUser(ctx, userID, core.LedgerQuery{
		Type:  core.ActivityFilterUse,
		Limit: sample,
	})
	if err != nil {
		return nil, err
	}

	patterns := &FilterPatterns{
		Categories: make(ScoreMap),
		Brands:     make(ScoreMap),
		Tags:       make(ScoreMap),
		SkinTypes:  make(ScoreMap),
		Concerns:   make(ScoreMap),
	}
	for _, rec := range records {
		snap := rec.Metadata.Filters
		if snap == nil {
			continue
		}
		for _, id := range snap.CategoryIDs {
			patterns.Categories.add(id, 1)
		}
		for _, id := range snap.BrandIDs {
			patterns.Brands.add(id, 1)
		}
		for _, tag := range snap.Tags {
			patterns.Tags.add(tag, 1)
		}
		for _, st := range snap.SkinTypes {
			patterns.SkinTypes.add(st, 1)
		}
		for _, cn := range snap.Concerns {
			patterns.Concerns.add(cn, 1)
		}
		if snap.Price != nil {
			patterns.PriceRanges = append(patterns.PriceRanges, *snap.Price)
		}
	}
	return patterns, nil
}

// SearchHistory 返回最近的搜索词，从新到旧，允许重复。
func (a *Aggregator) SearchHistory(ctx context.Context, userID string, limit int) ([]string, error) {
	records, err := a.Ledger.QueryByUser(ctx, userID, core.LedgerQuery{
		Type:  core.ActivitySearch,
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.Metadata.SearchQuery != "" {
			out = append(out, rec.Metadata.SearchQuery)
		}
	}
	return out, nil
}
