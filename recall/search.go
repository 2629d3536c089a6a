package recall

import (
	"context"
	"strings"

	"github.com/zliveze/Project-Final-sub005/core"
	"github.com/zliveze/Project-Final-sub005/pipeline"
	"github.com/zliveze/Project-Final-sub005/pkg/utils"
)

// Search 是搜索词召回源：关键词命中商品名称/描述/标签，按评分降序。
type Search struct {
	Catalog core.Catalog
}

var _ Source = (*Search)(nil)

func (r *Search) Name() string        { return "recall.search" }
func (r *Search) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口：搜索词取自 rctx.Query。
func (r *Search) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *Search) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil || strings.TrimSpace(rctx.Query) == "" {
		return nil, nil
	}
	limit := rctx.Limit
	if limit <= 0 {
		limit = 10
	}

	// 整句 + 分词同时作为关键词，命中任一即可
	keywords := append([]string{strings.TrimSpace(rctx.Query)}, strings.Fields(rctx.Query)...)

	products, err := r.Catalog.QueryActive(ctx, &core.ActiveQuery{
		Clauses: []core.Clause{{Field: core.ClauseKeyword, Values: keywords}},
		OrderBy: []core.Ordering{{Field: core.SortByRating, Desc: true}},
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(products))
	for _, p := range products {
		it := core.NewItemFromProduct(p)
		it.PutLabel("recall_source", utils.Label{Value: "search", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
