package core

import "github.com/zliveze/Project-Final-sub005/pkg/utils"

// Item 是召回链路中的统一承载结构：商品 ID、分数、元信息、标签。
// Labels 用于解释与策略驱动；Score 用于排序决策。
type Item struct {
	ID     string
	Score  float64
	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// NewItemFromProduct 基于商品属性构建 Item，分数取平均评分。
func NewItemFromProduct(p *Product) *Item {
	it := NewItem(p.ID)
	it.Score = p.AverageRating
	it.Meta["name"] = p.Name
	it.Meta["brand_id"] = p.BrandID
	it.Meta["is_best_seller"] = p.IsBestSeller
	return it
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// IDs 提取 Item 序列的商品 ID，保持顺序。
func IDs(items []*Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, it.ID)
		}
	}
	return out
}
