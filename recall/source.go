package recall

import (
	"context"

	"github.com/zliveze/Project-Final-sub005/core"
)

// Source 表示一个可复用的召回源（个性化/相似/热销/搜索/...）。
// 同一个 Source 通常也实现 pipeline.Node，可直接挂进 Pipeline。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
