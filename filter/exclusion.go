package filter

import (
	"context"

	"github.com/zliveze/Project-Final-sub005/core"
)

// ExclusionFilter 过滤掉排除集中的商品，
// 例如用户已交互（浏览/加购/购买）的商品不应出现在个性化结果中。
type ExclusionFilter struct {
	// ProductIDs 是内存中的排除商品 ID 列表
	ProductIDs []string

	// Lookup 动态提供排除集（可选），例如从偏好聚合器取已交互商品
	Lookup func(ctx context.Context, userID string) ([]string, error)
}

func (f *ExclusionFilter) Name() string {
	return "filter.exclusion"
}

func (f *ExclusionFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	for _, id := range f.ProductIDs {
		if item.ID == id {
			return true, nil
		}
	}

	if f.Lookup != nil && rctx != nil && rctx.UserID != "" {
		excluded, err := f.Lookup(ctx, rctx.UserID)
		if err == nil {
			for _, id := range excluded {
				if item.ID == id {
					return true, nil
				}
			}
		}
	}

	return false, nil
}
