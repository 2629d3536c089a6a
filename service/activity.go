package service

import (
	"context"

	"github.com/zliveze/Project-Final-sub005/core"
)

// 行为采集入口：每个被追踪的用户动作写入账本一条记录。
// 写路径不经过读路径的超时控制，追加永远不被读阻塞。

// LogSearch 记录一次搜索。
func (r *Recommender) LogSearch(ctx context.Context, userID, query string) (string, error) {
	return r.ledger.Append(ctx, &core.ActivityRecord{
		UserID:   userID,
		Type:     core.ActivitySearch,
		Metadata: core.ActivityMetadata{SearchQuery: query},
	})
}

// LogView 记录一次商品浏览，timeSpent 为停留秒数（可为 0）。
func (r *Recommender) LogView(ctx context.Context, userID, productID string, timeSpent int64) (string, error) {
	return r.ledger.Append(ctx, &core.ActivityRecord{
		UserID:    userID,
		ProductID: productID,
		Type:      core.ActivityView,
		Metadata:  core.ActivityMetadata{TimeSpent: timeSpent},
	})
}

// LogClick 记录一次商品点击。
func (r *Recommender) LogClick(ctx context.Context, userID, productID string) (string, error) {
	return r.ledger.Append(ctx, &core.ActivityRecord{
		UserID:    userID,
		ProductID: productID,
		Type:      core.ActivityClick,
	})
}

// LogAddToCart 记录一次加购，variantID 可为空。
func (r *Recommender) LogAddToCart(ctx context.Context, userID, productID, variantID string) (string, error) {
	return r.ledger.Append(ctx, &core.ActivityRecord{
		UserID:    userID,
		ProductID: productID,
		Type:      core.ActivityAddToCart,
		Metadata:  core.ActivityMetadata{VariantID: variantID},
	})
}

// LogPurchase 记录一次购买，variantID 可为空。
func (r *Recommender) LogPurchase(ctx context.Context, userID, productID, variantID string) (string, error) {
	return r.ledger.Append(ctx, &core.ActivityRecord{
		UserID:    userID,
		ProductID: productID,
		Type:      core.ActivityPurchase,
		Metadata:  core.ActivityMetadata{VariantID: variantID},
	})
}

// LogFilterUse 记录一次筛选器使用，快照捕获后不再修改。
func (r *Recommender) LogFilterUse(ctx context.Context, userID string, filters core.FilterSnapshot) (string, error) {
	return r.ledger.Append(ctx, &core.ActivityRecord{
		UserID:   userID,
		Type:     core.ActivityFilterUse,
		Metadata: core.ActivityMetadata{Filters: &filters},
	})
}
