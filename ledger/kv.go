package ledger

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/zliveze/Project-Final-sub005/core"
)

// KV 是基于 core.KeyValueStore 的账本实现（生产环境配合 store.RedisStore 使用）。
//
// 存储布局：
//   - {prefix}:record:{id}            记录本体（JSON）
//   - {prefix}:user:{userID}          有序集合，score = 记录时间（微秒）
//   - {prefix}:user:{userID}:{type}   按行为类型的有序集合，便于单类型读取
//
// ZRange 按 score 从高到低返回，天然满足"从新到旧"的读取顺序。
type KV struct {
	Store core.KeyValueStore

	// Prefix 是所有 key 的前缀，默认 "ledger"
	Prefix string
}

var _ core.Ledger = (*KV)(nil)

func (l *KV) prefix() string {
	if l.Prefix == "" {
		return "ledger"
	}
	return l.Prefix
}

func (l *KV) recordKey(id string) string {
	return l.prefix() + ":record:" + id
}

func (l *KV) userKey(userID string, typ core.ActivityType) string {
	key := l.prefix() + ":user:" + userID
	if typ != "" {
		key += ":" + string(typ)
	}
	return key
}

func (l *KV) Append(ctx context.Context, record *core.ActivityRecord) (string, error) {
	if err := record.Validate(); err != nil {
		return "", err
	}

	stored := *record
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}

	data, err := json.Marshal(&stored)
	if err != nil {
		return "", err
	}
	if err := l.Store.Set(ctx, l.recordKey(stored.ID), data); err != nil {
		return "", err
	}

	score := float64(stored.CreatedAt.UnixMicro())
	if err := l.Store.ZAdd(ctx, l.userKey(stored.UserID, ""), score, stored.ID); err != nil {
		return "", err
	}
	if err := l.Store.ZAdd(ctx, l.userKey(stored.UserID, stored.Type), score, stored.ID); err != nil {
		return "", err
	}

	return stored.ID, nil
}

func (l *KV) QueryByUser(ctx context.Context, userID string, q core.LedgerQuery) ([]*core.ActivityRecord, error) {
	stop := int64(-1)
	if q.Limit > 0 {
		stop = int64(q.Limit) - 1
	}

	ids, err := l.Store.ZRange(ctx, l.userKey(userID, q.Type), 0, stop)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, l.recordKey(id))
	}
	values, err := l.Store.BatchGet(ctx, keys)
	if err != nil {
		return nil, err
	}

	// 保持 ZRange 的时间序；本体缺失（例如被外部保留策略清理）的记录跳过
	out := make([]*core.ActivityRecord, 0, len(ids))
	for _, id := range ids {
		data, ok := values[l.recordKey(id)]
		if !ok {
			continue
		}
		var rec core.ActivityRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		out = append(out, &rec)
	}
	return out, nil
}
