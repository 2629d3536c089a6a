package pipeline

import (
	"context"

	"github.com/zliveze/Project-Final-sub005/core"
)

// Pipeline 是推荐核心的组合抽象：把一次请求的处理拆成可组合的 Node 链
// （Recall → Filter → ReRank）。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
