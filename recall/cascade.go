package recall

import (
	"context"

	"github.com/zliveze/Project-Final-sub005/core"
	"github.com/zliveze/Project-Final-sub005/pkg/utils"
)

// Tier 是兜底级联中的一层：一个感知排除集的查询。
// Fetch 收到的 exclude 包含基础排除集与之前各层已收集的全部 ID。
type Tier struct {
	Name  string
	Fetch func(ctx context.Context, exclude []string, need int) ([]*core.Product, error)

	// IgnoreBaseExclude 为 true 时该层只排除已收集的 ID，不排除基础排除集。
	// 仅用于信号耗尽后的最终兜底：此时重新放行已交互商品是凑满 limit 的唯一途径。
	IgnoreBaseExclude bool
}

// Cascade 按顺序执行各层，直到收集满 limit 个不重复的候选。
//
// 语义约定：
//   - 各层逻辑上串行：下一层的排除集依赖上一层的结果
//   - 单层失败只意味着该层没有产出，不中断级联（兜底逻辑宁缺毋错）
//   - 全局去重：一个 ID 一旦收集，后续任何层都不会再次加入
type Cascade struct {
	Tiers []Tier
}

// Collect 执行级联，返回至多 limit 个去重候选。
// baseExclude 是所有层共同的基础排除集（已交互商品 / 参照商品）。
func (c *Cascade) Collect(ctx context.Context, baseExclude []string, limit int) []*core.Item {
	if limit <= 0 {
		return nil
	}

	chosen := make(map[string]bool, limit)
	out := make([]*core.Item, 0, limit)

	for _, tier := range c.Tiers {
		if len(out) >= limit {
			break
		}

		exclude := make([]string, 0, len(baseExclude)+len(out))
		if !tier.IgnoreBaseExclude {
			exclude = append(exclude, baseExclude...)
		}
		for _, it := range out {
			exclude = append(exclude, it.ID)
		}

		products, err := tier.Fetch(ctx, exclude, limit-len(out))
		if err != nil {
			continue
		}

		for _, p := range products {
			if p == nil || chosen[p.ID] {
				continue
			}
			chosen[p.ID] = true

			it := core.NewItemFromProduct(p)
			it.PutLabel("tier", utils.Label{Value: tier.Name, Source: "recall"})
			out = append(out, it)
			if len(out) >= limit {
				break
			}
		}
	}

	// 防御性截断：正常路径在上面已经截断过
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
