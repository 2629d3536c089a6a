package config

import (
	"fmt"

	"github.com/zliveze/Project-Final-sub005/core"
	"github.com/zliveze/Project-Final-sub005/filter"
	"github.com/zliveze/Project-Final-sub005/pipeline"
	"github.com/zliveze/Project-Final-sub005/pkg/conv"
	"github.com/zliveze/Project-Final-sub005/profile"
	"github.com/zliveze/Project-Final-sub005/recall"
	"github.com/zliveze/Project-Final-sub005/rerank"
)

// Deps 是配置驱动构建 Node 时注入的协作方。
// 账本/目录通过显式注入传递，不使用包级单例。
type Deps struct {
	Ledger  core.Ledger
	Catalog core.Catalog

	// Aggregator 可选；为空时用 Ledger + Catalog 构建
	Aggregator *profile.Aggregator
}

func (d *Deps) aggregator() *profile.Aggregator {
	if d.Aggregator != nil {
		return d.Aggregator
	}
	return profile.NewAggregator(d.Ledger, d.Catalog)
}

// DefaultFactory 返回一个包含所有内置 Node 的工厂。
func DefaultFactory(deps Deps) *pipeline.NodeFactory {
	factory := pipeline.NewNodeFactory()

	// 召回 Nodes
	factory.Register("recall.personalized", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return &recall.Personalized{
			Aggregator:    deps.aggregator(),
			Catalog:       deps.Catalog,
			TopCategories: conv.ConfigGetInt(cfg, "top_categories", 0),
			TopBrands:     conv.ConfigGetInt(cfg, "top_brands", 0),
			TopTags:       conv.ConfigGetInt(cfg, "top_tags", 0),
			TopSkinTypes:  conv.ConfigGetInt(cfg, "top_skin_types", 0),
			TopConcerns:   conv.ConfigGetInt(cfg, "top_concerns", 0),
			SearchTerms:   conv.ConfigGetInt(cfg, "search_terms", 0),
		}, nil
	})
	factory.Register("recall.similar", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return &recall.Similar{Catalog: deps.Catalog}, nil
	})
	factory.Register("recall.bestseller", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return &recall.BestSeller{Catalog: deps.Catalog}, nil
	})
	factory.Register("recall.search", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return &recall.Search{Catalog: deps.Catalog}, nil
	})

	// 过滤 Node
	factory.Register("filter", buildFilterNode)

	// 重排 Nodes
	factory.Register("rerank.topn", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return &rerank.TopNNode{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
	})
	factory.Register("rerank.dedup", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return &rerank.DedupNode{}, nil
	})

	return factory
}

// buildFilterNode 组合排除列表与 CEL 规则表达式：
//
//	type: filter
//	config:
//	  exclude: [p1, p2]
//	  rules:
//	    - 'item.score < 2.0'
func buildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filters := make([]filter.Filter, 0, 2)

	if ids := conv.SliceAnyToString(cfg["exclude"]); len(ids) > 0 {
		filters = append(filters, &filter.ExclusionFilter{ProductIDs: ids})
	}
	for _, expr := range conv.SliceAnyToString(cfg["rules"]) {
		if expr == "" {
			continue
		}
		filters = append(filters, &filter.ExprFilter{Expr: expr})
	}

	return &filter.FilterNode{Filters: filters}, nil
}

// ValidatePipelineConfig 校验 pipeline 配置中所有 node 类型均已注册；
// 若有未支持类型则返回包含已支持列表的错误。
func ValidatePipelineConfig(cfg *pipeline.Config, factory *pipeline.NodeFactory) error {
	if cfg == nil {
		return nil
	}
	supported := factory.Types()
	for _, nc := range cfg.Pipeline.Nodes {
		found := false
		for _, t := range supported {
			if t == nc.Type {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("node type %q not supported (supported: %v)", nc.Type, supported)
		}
	}
	return nil
}
