package recall

import (
	"context"

	"github.com/zliveze/Project-Final-sub005/core"
	"github.com/zliveze/Project-Final-sub005/pipeline"
	"github.com/zliveze/Project-Final-sub005/pkg/utils"
)

// BestSeller 是热销召回源：active 且带热销标记的商品，按评分降序。
// 既是冷启动场景的信号替代，也直接服务"热门商品"入口。
// BestSeller 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type BestSeller struct {
	Catalog core.Catalog
}

var _ Source = (*BestSeller)(nil)

func (r *BestSeller) Name() string        { return "recall.bestseller" }
func (r *BestSeller) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *BestSeller) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *BestSeller) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	limit := 10
	if rctx != nil && rctx.Limit > 0 {
		limit = rctx.Limit
	}

	products, err := r.Catalog.QueryActive(ctx, &core.ActiveQuery{
		Clauses: []core.Clause{{Field: core.ClauseBestSeller}},
		OrderBy: []core.Ordering{{Field: core.SortByRating, Desc: true}},
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(products))
	for _, p := range products {
		it := core.NewItemFromProduct(p)
		it.PutLabel("recall_source", utils.Label{Value: "bestseller", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
