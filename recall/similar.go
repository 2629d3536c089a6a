package recall

import (
	"context"
	"strings"

	"github.com/zliveze/Project-Final-sub005/core"
	"github.com/zliveze/Project-Final-sub005/pipeline"
	"github.com/zliveze/Project-Final-sub005/pkg/utils"
)

// Similar 是相似商品召回源：不依赖行为历史，用参照商品的属性重叠度
// 构建 OR 查询，配合级联兜底。
//
// 层次（严格顺序）：
//  1. overlap       属性/关键词重叠查询
//  2. same_category 同类目兜底
//  3. same_brand    同品牌兜底
//  4. global        全局兜底（任意 active 商品）
//
// 失败语义：参照商品不存在、ID 非法、目录出错，一律吞掉并返回空结果。
// "没有相似商品"是正常结果，绝不向调用方抛错。
type Similar struct {
	Catalog core.Catalog
}

var _ Source = (*Similar)(nil)

func (r *Similar) Name() string        { return "recall.similar" }
func (r *Similar) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口：参照商品取自 rctx.ProductID。
func (r *Similar) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Similar) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil {
		return nil, nil
	}
	return r.SimilarTo(ctx, rctx.ProductID, rctx.Limit), nil
}

// SimilarTo 返回与参照商品相似的候选，至多 limit 个、无重复、不含参照商品。
func (r *Similar) SimilarTo(ctx context.Context, productID string, limit int) []*core.Item {
	if productID == "" {
		return nil
	}
	if limit <= 0 {
		limit = 10
	}

	ref, err := r.Catalog.GetProduct(ctx, productID)
	if err != nil || ref == nil {
		return nil
	}

	ratingBestSeller := []core.Ordering{
		{Field: core.SortByRating, Desc: true},
		{Field: core.SortByBestSeller, Desc: true},
	}
	ratingBestSellerCreated := []core.Ordering{
		{Field: core.SortByRating, Desc: true},
		{Field: core.SortByBestSeller, Desc: true},
		{Field: core.SortByCreatedAt, Desc: true},
	}
	globalOrder := []core.Ordering{
		{Field: core.SortByBestSeller, Desc: true},
		{Field: core.SortByRating, Desc: true},
		{Field: core.SortByCreatedAt, Desc: true},
	}

	tiers := make([]Tier, 0, 4)

	if clauses := overlapClauses(ref); len(clauses) > 0 {
		tiers = append(tiers, Tier{
			Name: "overlap",
			Fetch: func(ctx context.Context, exclude []string, need int) ([]*core.Product, error) {
				return r.Catalog.QueryActive(ctx, &core.ActiveQuery{
					Clauses: clauses,
					Exclude: exclude,
					OrderBy: ratingBestSeller,
					Limit:   need,
				})
			},
		})
	}
	if len(ref.CategoryIDs) > 0 {
		categories := ref.CategoryIDs
		tiers = append(tiers, Tier{
			Name: "same_category",
			Fetch: func(ctx context.Context, exclude []string, need int) ([]*core.Product, error) {
				return r.Catalog.QueryActive(ctx, &core.ActiveQuery{
					Clauses: []core.Clause{{Field: core.ClauseCategory, Values: categories}},
					Exclude: exclude,
					OrderBy: ratingBestSellerCreated,
					Limit:   need,
				})
			},
		})
	}
	if ref.BrandID != "" {
		brand := ref.BrandID
		tiers = append(tiers, Tier{
			Name: "same_brand",
			Fetch: func(ctx context.Context, exclude []string, need int) ([]*core.Product, error) {
				return r.Catalog.QueryActive(ctx, &core.ActiveQuery{
					Clauses: []core.Clause{{Field: core.ClauseBrand, Values: []string{brand}}},
					Exclude: exclude,
					OrderBy: ratingBestSellerCreated,
					Limit:   need,
				})
			},
		})
	}
	tiers = append(tiers, Tier{
		Name: "global",
		Fetch: func(ctx context.Context, exclude []string, need int) ([]*core.Product, error) {
			return r.Catalog.QueryActive(ctx, &core.ActiveQuery{
				Exclude: exclude,
				OrderBy: globalOrder,
				Limit:   need,
			})
		},
	})

	cascade := &Cascade{Tiers: tiers}
	items := cascade.Collect(ctx, []string{ref.ID}, limit)
	for _, it := range items {
		it.PutLabel("recall_source", utils.Label{Value: "similar", Source: "recall"})
	}
	return items
}

// overlapClauses 按优先级构建属性重叠子句：
// 名称关键词 > 类目 > 品牌 > 标签 > 肤质 > 肌肤问题。
func overlapClauses(ref *core.Product) []core.Clause {
	clauses := make([]core.Clause, 0, 6)
	if tokens := nameTokens(ref.Name); len(tokens) > 0 {
		clauses = append(clauses, core.Clause{Field: core.ClauseKeyword, Values: tokens})
	}
	if len(ref.CategoryIDs) > 0 {
		clauses = append(clauses, core.Clause{Field: core.ClauseCategory, Values: ref.CategoryIDs})
	}
	if ref.BrandID != "" {
		clauses = append(clauses, core.Clause{Field: core.ClauseBrand, Values: []string{ref.BrandID}})
	}
	if len(ref.Tags) > 0 {
		clauses = append(clauses, core.Clause{Field: core.ClauseTag, Values: ref.Tags})
	}
	if len(ref.SkinTypes) > 0 {
		clauses = append(clauses, core.Clause{Field: core.ClauseSkinType, Values: ref.SkinTypes})
	}
	if len(ref.Concerns) > 0 {
		clauses = append(clauses, core.Clause{Field: core.ClauseConcern, Values: ref.Concerns})
	}
	return clauses
}

// nameTokens 切分商品名称为小写关键词，丢弃长度 <= 2 的弱区分度词。
func nameTokens(name string) []string {
	fields := strings.Fields(strings.ToLower(name))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) <= 2 {
			continue
		}
		out = append(out, f)
	}
	return out
}
