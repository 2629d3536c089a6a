package rerank

import (
	"context"

	"github.com/zliveze/Project-Final-sub005/core"
	"github.com/zliveze/Project-Final-sub005/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在链路末端限制返回结果数量。
// 召回层已保证数量上限，这里是最终的防御性截断。
//
// N <= 0 或物品数量不超过 N 时原样返回。
type TopNNode struct {
	// N 要保留的候选数量（Top N）
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := n.N
	if limit <= 0 && rctx != nil {
		limit = rctx.Limit
	}
	if limit <= 0 || len(items) <= limit {
		return items, nil
	}
	return items[:limit], nil
}
