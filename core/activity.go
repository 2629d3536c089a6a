package core

import "time"

// ActivityType 是被追踪的用户行为类型。
type ActivityType string

const (
	ActivitySearch    ActivityType = "search"      // 搜索
	ActivityView      ActivityType = "view"        // 浏览商品
	ActivityClick     ActivityType = "click"       // 点击商品
	ActivityAddToCart ActivityType = "add_to_cart" // 加入购物车
	ActivityPurchase  ActivityType = "purchase"    // 购买
	ActivityFilterUse ActivityType = "filter_use"  // 使用筛选器
)

// Valid 检查行为类型是否为已知类型。
func (t ActivityType) Valid() bool {
	switch t {
	case ActivitySearch, ActivityView, ActivityClick,
		ActivityAddToCart, ActivityPurchase, ActivityFilterUse:
		return true
	}
	return false
}

// Weight 返回该行为类型在偏好打分中的固定权重。
// 权重表是偏好画像的合约，测试会精确断言：
//
//	purchase=10, add_to_cart=5, search=3, click=2, filter_use=2, view=1
func (t ActivityType) Weight() float64 {
	switch t {
	case ActivityPurchase:
		return 10
	case ActivityAddToCart:
		return 5
	case ActivitySearch:
		return 3
	case ActivityClick:
		return 2
	case ActivityFilterUse:
		return 2
	case ActivityView:
		return 1
	}
	return 0
}

// PriceRange 是筛选器中的价格区间。
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilterSnapshot 是用户应用筛选器时的一次性快照，捕获后不再修改，
// 仅作为偏好聚合的输入。
type FilterSnapshot struct {
	Price       *PriceRange `json:"price,omitempty"`
	CategoryIDs []string    `json:"category_ids,omitempty"`
	BrandIDs    []string    `json:"brand_ids,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	SkinTypes   []string    `json:"skin_types,omitempty"`
	Concerns    []string    `json:"concerns,omitempty"`
}

// ActivityMetadata 是行为记录的附加信息，按行为类型取用：
// search 用 SearchQuery，view 用 TimeSpent，加购/购买可带 VariantID，
// filter_use 用 Filters。
type ActivityMetadata struct {
	SearchQuery string          `json:"search_query,omitempty"`
	TimeSpent   int64           `json:"time_spent,omitempty"` // 秒
	VariantID   string          `json:"variant_id,omitempty"`
	Filters     *FilterSnapshot `json:"filters,omitempty"`
}

// ActivityRecord 是一条不可变的行为记录：写入一次，不更新不删除（审计要求）。
// ProductID 对纯搜索/筛选行为可以为空。
type ActivityRecord struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	ProductID string           `json:"product_id,omitempty"`
	Type      ActivityType     `json:"type"`
	Metadata  ActivityMetadata `json:"metadata"`
	CreatedAt time.Time        `json:"created_at"` // 单调排序键
}

// Ledger 写入校验错误
var (
	ErrLedgerMissingUser = NewDomainError(ModuleLedger, ErrorCodeInvalidInput, "ledger: user id is required")
	ErrLedgerBadType     = NewDomainError(ModuleLedger, ErrorCodeInvalidInput, "ledger: unrecognized activity type")
)

// Validate 校验记录是否可写入账本。
func (r *ActivityRecord) Validate() error {
	if r.UserID == "" {
		return ErrLedgerMissingUser
	}
	if !r.Type.Valid() {
		return ErrLedgerBadType
	}
	return nil
}
