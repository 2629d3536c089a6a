// Package service 把账本、目录与召回源组装成对外的推荐服务门面。
// 上游（HTTP 层等）只依赖这里的入口，不直接触碰核心组件。
package service

import (
	"context"
	"time"

	"github.com/zliveze/Project-Final-sub005/core"
	"github.com/zliveze/Project-Final-sub005/pipeline"
	"github.com/zliveze/Project-Final-sub005/profile"
	"github.com/zliveze/Project-Final-sub005/recall"
	"github.com/zliveze/Project-Final-sub005/rerank"
)

// DefaultTimeout 是读路径的请求级超时。
// 聚合超时按"信号不足"处理（落到冷启动层），不让整个请求失败。
const DefaultTimeout = 2 * time.Second

// DefaultLimit 是未指定 limit 时的返回数量。
const DefaultLimit = 10

// Recommender 是无状态的推荐服务：所有依赖构造注入，调用之间不共享可变状态。
type Recommender struct {
	ledger     core.Ledger
	catalog    core.Catalog
	aggregator *profile.Aggregator

	personalized *recall.Personalized
	similar      *recall.Similar
	bestseller   *recall.BestSeller
	search       *recall.Search

	timeout time.Duration
}

// Option 配置 Recommender。
type Option func(*Recommender)

// WithTimeout 覆盖读路径的请求级超时；d <= 0 表示不加超时。
func WithTimeout(d time.Duration) Option {
	return func(r *Recommender) { r.timeout = d }
}

func New(ledger core.Ledger, catalog core.Catalog, opts ...Option) *Recommender {
	aggregator := profile.NewAggregator(ledger, catalog)
	r := &Recommender{
		ledger:     ledger,
		catalog:    catalog,
		aggregator: aggregator,
		personalized: &recall.Personalized{
			Aggregator: aggregator,
			Catalog:    catalog,
		},
		similar:    &recall.Similar{Catalog: catalog},
		bestseller: &recall.BestSeller{Catalog: catalog},
		search:     &recall.Search{Catalog: catalog},
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Aggregator 暴露偏好聚合器，供上游直接读取画像（如用户中心页）。
func (r *Recommender) Aggregator() *profile.Aggregator {
	return r.aggregator
}

func (r *Recommender) readCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

// run 统一的读路径：召回 → 去重 → 截断。
func (r *Recommender) run(ctx context.Context, rctx *core.RecommendContext, source pipeline.Node) ([]string, error) {
	ctx, cancel := r.readCtx(ctx)
	defer cancel()

	p := &pipeline.Pipeline{Nodes: []pipeline.Node{
		source,
		&rerank.DedupNode{},
		&rerank.TopNNode{},
	}}
	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}
	return core.IDs(items), nil
}

// GetPersonalizedRecommendations 返回至多 limit 个个性化推荐商品 ID。
// 无行为信号的用户得到热销商品；结果无重复。
func (r *Recommender) GetPersonalizedRecommendations(ctx context.Context, userID string, limit int) ([]string, error) {
	rctx := &core.RecommendContext{
		UserID: userID,
		Limit:  normalizeLimit(limit),
	}
	return r.run(ctx, rctx, r.personalized)
}

// GetSimilarProducts 返回至多 limit 个与参照商品相似的商品 ID。
// 参照商品不存在或查询失败都返回空切片——"没有相似商品"是正常结果，不是错误。
func (r *Recommender) GetSimilarProducts(ctx context.Context, productID string, limit int) []string {
	ctx, cancel := r.readCtx(ctx)
	defer cancel()

	items := r.similar.SimilarTo(ctx, productID, normalizeLimit(limit))
	return core.IDs(items)
}

// GetProductsBySearchQuery 返回命中搜索词的商品 ID，按评分降序。
func (r *Recommender) GetProductsBySearchQuery(ctx context.Context, query string, limit int) ([]string, error) {
	rctx := &core.RecommendContext{
		Query: query,
		Limit: normalizeLimit(limit),
	}
	return r.run(ctx, rctx, r.search)
}

// GetPopularProducts 返回热销商品 ID，按评分降序。
func (r *Recommender) GetPopularProducts(ctx context.Context, limit int) ([]string, error) {
	rctx := &core.RecommendContext{
		Limit: normalizeLimit(limit),
	}
	return r.run(ctx, rctx, r.bestseller)
}
