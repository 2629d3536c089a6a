package recall

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zliveze/Project-Final-sub005/core"
	"github.com/zliveze/Project-Final-sub005/pipeline"
	"github.com/zliveze/Project-Final-sub005/pkg/utils"
	"github.com/zliveze/Project-Final-sub005/profile"
)

// FallbackTimeout 是降级路径的独立时限：信号聚合耗尽请求时限后，
// 兜底查询换用这个时限执行，而不是在已过期的 context 上必然失败。
const FallbackTimeout = 500 * time.Millisecond

// Personalized 是个性化推荐召回源：把用户的偏好分布拼装成 OR 查询，
// 再经兜底级联保证结果数量。
//
// 层次（严格顺序）：
//  1. signal    偏好子句查询（有行为信号时）
//  2. cold_start 热销商品（完全没有信号时替代 signal）
//  3. fill      任意 active 商品补足，仍排除已交互商品
//  4. exhausted 目录耗尽时的最终兜底，重新放行已交互商品
type Personalized struct {
	Aggregator *profile.Aggregator
	Catalog    core.Catalog

	// TopN 选取量，<= 0 时取默认值
	TopCategories int // 默认 3
	TopBrands     int // 默认 3
	TopTags       int // 默认 5
	TopSkinTypes  int // 默认 2
	TopConcerns   int // 默认 2
	SearchTerms   int // 默认 3
}

var _ Source = (*Personalized)(nil)

func (r *Personalized) Name() string        { return "recall.personalized" }
func (r *Personalized) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *Personalized) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
// 输出保证：至多 limit 个、无重复；只要信号层有产出，已交互商品不会出现。
func (r *Personalized) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil || rctx.UserID == "" {
		return nil, nil
	}
	limit := rctx.Limit
	if limit <= 0 {
		limit = 10
	}

	// 排除集失败按空处理：宁可多推荐也不让请求失败
	exclusion, _ := r.exclusionSet(ctx, rctx.UserID)

	// 超时/聚合失败视为"信号不足"，落到冷启动层
	clauses := r.buildClauses(ctx, rctx.UserID)

	ratingDesc := []core.Ordering{{Field: core.SortByRating, Desc: true}}
	tiers := make([]Tier, 0, 3)

	if len(clauses) > 0 {
		tiers = append(tiers, Tier{
			Name: "signal",
			Fetch: func(ctx context.Context, exclude []string, need int) ([]*core.Product, error) {
				return r.Catalog.QueryActive(ctx, &core.ActiveQuery{
					Clauses: clauses,
					Exclude: exclude,
					OrderBy: ratingDesc,
					Limit:   need,
				})
			},
		})
	} else {
		tiers = append(tiers, Tier{
			Name: "cold_start",
			Fetch: func(ctx context.Context, exclude []string, need int) ([]*core.Product, error) {
				return r.Catalog.QueryActive(ctx, &core.ActiveQuery{
					Clauses: []core.Clause{{Field: core.ClauseBestSeller}},
					Exclude: exclude,
					OrderBy: ratingDesc,
					Limit:   need,
				})
			},
		})
	}

	tiers = append(tiers,
		Tier{
			Name: "fill",
			Fetch: func(ctx context.Context, exclude []string, need int) ([]*core.Product, error) {
				return r.Catalog.QueryActive(ctx, &core.ActiveQuery{
					Exclude: exclude,
					OrderBy: ratingDesc,
					Limit:   need,
				})
			},
		},
		Tier{
			Name:              "exhausted",
			IgnoreBaseExclude: true,
			Fetch: func(ctx context.Context, exclude []string, need int) ([]*core.Product, error) {
				return r.Catalog.QueryActive(ctx, &core.ActiveQuery{
					Exclude: exclude,
					OrderBy: ratingDesc,
					Limit:   need,
				})
			},
		},
	)

	cascade := &Cascade{Tiers: tiers}

	// 聚合阶段把请求时限耗尽时，级联查询脱离已过期的 context，
	// 用独立短时限执行，保证"超时降级到冷启动"真的能返回商品
	cctx := ctx
	if ctx.Err() != nil {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(context.WithoutCancel(ctx), FallbackTimeout)
		defer cancel()
	}
	items := cascade.Collect(cctx, exclusion, limit)
	for _, it := range items {
		it.PutLabel("recall_source", utils.Label{Value: "personalized", Source: "recall"})
	}
	return items, nil
}

// exclusionSet 汇总用户已交互（浏览/加购/购买）的商品 ID。
func (r *Personalized) exclusionSet(ctx context.Context, userID string) ([]string, error) {
	seen := make(map[string]bool)
	out := make([]string, 0, 32)
	for _, fetch := range []func(context.Context, string, int) ([]string, error){
		r.Aggregator.RecentlyViewed,
		r.Aggregator.MostAddedToCart,
		r.Aggregator.Purchased,
	} {
		ids, err := fetch(ctx, userID, 0)
		if err != nil {
			continue
		}
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out, nil
}

// buildClauses 并发计算各偏好维度并拼装 OR 子句。
// 维度之间相互独立，纯读查询可安全并发；单维度失败只意味着少一个子句。
func (r *Personalized) buildClauses(ctx context.Context, userID string) []core.Clause {
	var (
		categories profile.ScoreMap
		brands     profile.ScoreMap
		tags       profile.ScoreMap
		patterns   *profile.FilterPatterns
		searches   []string
	)

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		categories, _ = r.Aggregator.PreferredCategories(gctx, userID)
		return nil
	})
	eg.Go(func() error {
		brands, _ = r.Aggregator.PreferredBrands(gctx, userID)
		return nil
	})
	eg.Go(func() error {
		tags, _ = r.Aggregator.PreferredTags(gctx, userID)
		return nil
	})
	eg.Go(func() error {
		patterns, _ = r.Aggregator.FilterUsagePatterns(gctx, userID)
		return nil
	})
	eg.Go(func() error {
		searches, _ = r.Aggregator.SearchHistory(gctx, userID, defaultN(r.SearchTerms, 3))
		return nil
	})
	_ = eg.Wait()

	if ctx.Err() != nil {
		// 请求级超时：按信号不足处理
		return nil
	}

	clauses := make([]core.Clause, 0, 6)
	if top := profile.TopN(categories, defaultN(r.TopCategories, 3)); len(top) > 0 {
		clauses = append(clauses, core.Clause{Field: core.ClauseCategory, Values: top})
	}
	if top := profile.TopN(brands, defaultN(r.TopBrands, 3)); len(top) > 0 {
		clauses = append(clauses, core.Clause{Field: core.ClauseBrand, Values: top})
	}
	if top := profile.TopN(tags, defaultN(r.TopTags, 5)); len(top) > 0 {
		clauses = append(clauses, core.Clause{Field: core.ClauseTag, Values: top})
	}
	if patterns != nil {
		if top := profile.TopN(patterns.SkinTypes, defaultN(r.TopSkinTypes, 2)); len(top) > 0 {
			clauses = append(clauses, core.Clause{Field: core.ClauseSkinType, Values: top})
		}
		if top := profile.TopN(patterns.Concerns, defaultN(r.TopConcerns, 2)); len(top) > 0 {
			clauses = append(clauses, core.Clause{Field: core.ClauseConcern, Values: top})
		}
	}
	if len(searches) > 0 {
		clauses = append(clauses, core.Clause{Field: core.ClauseKeyword, Values: searches})
	}
	return clauses
}

func defaultN(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}
