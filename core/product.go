package core

import (
	"context"
	"time"
)

// ProductStatus 是商品上下架状态。召回只会返回 active 商品。
type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

// Product 是目录协作方暴露的商品属性视图。
// SkinTypes / Concerns 是美妆类目的专有属性（肤质/肌肤问题）。
type Product struct {
	ID          string
	Name        string
	Description string
	CategoryIDs []string
	BrandID     string
	Tags        []string
	SkinTypes   []string
	Concerns    []string

	Status        ProductStatus
	AverageRating float64
	IsBestSeller  bool
	CreatedAt     time.Time
}

// ClauseField 是查询子句作用的属性维度。
type ClauseField string

const (
	ClauseCategory   ClauseField = "category"   // 商品类目与给定集合有交集
	ClauseBrand      ClauseField = "brand"      // 品牌在给定集合中
	ClauseTag        ClauseField = "tag"        // 标签与给定集合有交集
	ClauseSkinType   ClauseField = "skin_type"  // 适用肤质有交集
	ClauseConcern    ClauseField = "concern"    // 针对肌肤问题有交集
	ClauseKeyword    ClauseField = "keyword"    // 关键词命中名称/描述/标签（不区分大小写）
	ClauseBestSeller ClauseField = "bestseller" // 热销标记为 true（Values 忽略）
)

// Clause 是一个 OR 分支：Values 中任一值按 Field 语义命中即算命中。
type Clause struct {
	Field  ClauseField
	Values []string
}

// SortField 是排序键。
type SortField string

const (
	SortByRating     SortField = "average_rating"
	SortByBestSeller SortField = "is_best_seller"
	SortByCreatedAt  SortField = "created_at"
)

// Ordering 是单个排序条件。
type Ordering struct {
	Field SortField
	Desc  bool
}

// ActiveQuery 描述一次对 active 商品的查询：
// Clauses 之间是 OR 关系（为空表示不按属性过滤）；
// Exclude 中的商品 ID 一律不返回；OrderBy 依次比较；Limit <= 0 表示不限。
type ActiveQuery struct {
	Clauses []Clause
	Exclude []string
	OrderBy []Ordering
	Limit   int
}

// Catalog 错误
var ErrProductNotFound = NewDomainError(ModuleCatalog, ErrorCodeNotFound, "catalog: product not found")

// Catalog 是商品目录协作方的领域接口，由外部存储层实现。
// 本核心只通过这两个窄接口消费目录。
type Catalog interface {
	// GetProduct 返回商品属性；不存在时返回 NOT_FOUND 错误。
	GetProduct(ctx context.Context, id string) (*Product, error)

	// QueryActive 返回匹配的 active 商品，按 OrderBy 排序、按 Limit 截断。
	QueryActive(ctx context.Context, q *ActiveQuery) ([]*Product, error)
}
