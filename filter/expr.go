package filter

import (
	"context"

	"github.com/zliveze/Project-Final-sub005/core"
	"github.com/zliveze/Project-Final-sub005/pkg/dsl"
)

// ExprFilter 是表达式过滤器：用 CEL 表达式描述"应该被过滤"的条件，
// 业务规则可以通过配置下发而无需改代码。
//
// 示例：
//   - `item.score < 2.0`                     过滤低评分候选
//   - `label.tier == "exhausted"`            过滤最终兜底层的候选
//   - `label.recall_source.contains("fill")` 过滤补足层来源
type ExprFilter struct {
	// Expr 是 CEL 表达式，返回 true 表示过滤该候选
	Expr string
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Expr == "" {
		return false, nil
	}
	return dsl.NewEval(item, rctx).Evaluate(f.Expr)
}
