// Package ledger 只包含实现，接口定义在 core 包（core.Ledger）。
//
// 账本是仅追加的行为记录存储：没有更新/删除操作，读取总是从新到旧。
package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zliveze/Project-Final-sub005/core"
)

// Memory 是内存实现的账本，用于测试/开发/原型。
type Memory struct {
	mu     sync.RWMutex
	byUser map[string][]*core.ActivityRecord
}

var _ core.Ledger = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		byUser: make(map[string][]*core.ActivityRecord),
	}
}

func (l *Memory) Append(ctx context.Context, record *core.ActivityRecord) (string, error) {
	if err := record.Validate(); err != nil {
		return "", err
	}

	// 存副本，保证记录写入后不可变
	stored := *record
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}

	l.mu.Lock()
	l.byUser[stored.UserID] = append(l.byUser[stored.UserID], &stored)
	l.mu.Unlock()

	return stored.ID, nil
}

func (l *Memory) QueryByUser(ctx context.Context, userID string, q core.LedgerQuery) ([]*core.ActivityRecord, error) {
	l.mu.RLock()
	records := l.byUser[userID]

	type indexed struct {
		rec *core.ActivityRecord
		seq int // 写入序号，同一时刻的记录以后写入者为新
	}
	matched := make([]indexed, 0, len(records))
	for i, rec := range records {
		if q.Type != "" && rec.Type != q.Type {
			continue
		}
		matched = append(matched, indexed{rec: rec, seq: i})
	}
	l.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.rec.CreatedAt.Equal(b.rec.CreatedAt) {
			return a.rec.CreatedAt.After(b.rec.CreatedAt)
		}
		return a.seq > b.seq
	})

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	out := make([]*core.ActivityRecord, 0, len(matched))
	for _, m := range matched {
		cp := *m.rec
		out = append(out, &cp)
	}
	return out, nil
}
