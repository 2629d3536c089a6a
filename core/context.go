package core

import "github.com/zliveze/Project-Final-sub005/pkg/utils"

// RecommendContext 承载一次推荐请求的用户/场景信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID string

	// ProductID 是相似推荐的参照商品（仅 similar 场景使用）
	ProductID string

	// Query 是搜索词（仅 search 场景使用）
	Query string

	// Limit 是期望返回的候选数量
	Limit int

	// Labels 是用户级标签，可驱动整个 Pipeline 行为
	// 例如：冷启动用户、价格敏感等
	Labels map[string]utils.Label

	// Params 请求级上下文参数（device_type、scene 等）
	Params map[string]any
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
