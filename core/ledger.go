package core

import "context"

// LedgerQuery 是按用户读取行为记录的查询参数。
// Type 为空表示不限类型；Limit <= 0 表示不限数量。
// 结果总是按 CreatedAt 从新到旧排序。
type LedgerQuery struct {
	Type  ActivityType
	Limit int
}

// Ledger 是行为账本的领域接口：仅追加、仅按时间序读取。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（ledger）实现
//   - 不暴露更新/删除操作（记录写入一次即不可变）
//   - 写路径与读路径互不阻塞，最终一致即可：
//     刚写入的记录不要求对并发中的聚合立即可见
type Ledger interface {
	// Append 校验并写入一条记录，返回记录 ID。
	// UserID 缺失或行为类型未知时返回 INVALID_INPUT 错误。
	Append(ctx context.Context, record *ActivityRecord) (string, error)

	// QueryByUser 按用户读取记录，从新到旧。
	QueryByUser(ctx context.Context, userID string, q LedgerQuery) ([]*ActivityRecord, error)
}
