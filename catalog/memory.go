// Package catalog 只包含实现，接口定义在 core 包（core.Catalog）。
//
// 生产环境中目录由外部存储层提供；这里的内存实现完整实现了
// OR 子句匹配与多键排序语义，用于测试/开发/原型。
package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/zliveze/Project-Final-sub005/core"
)

// Memory 是内存实现的商品目录。
type Memory struct {
	mu       sync.RWMutex
	products map[string]*core.Product
	order    []string // 插入顺序，保证遍历确定性
}

var _ core.Catalog = (*Memory)(nil)

func NewMemory(products ...*core.Product) *Memory {
	c := &Memory{
		products: make(map[string]*core.Product, len(products)),
	}
	for _, p := range products {
		c.Add(p)
	}
	return c
}

// Add 写入或覆盖一个商品。
func (c *Memory) Add(p *core.Product) {
	if p == nil || p.ID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.products[p.ID]; !ok {
		c.order = append(c.order, p.ID)
	}
	cp := *p
	c.products[p.ID] = &cp
}

func (c *Memory) GetProduct(ctx context.Context, id string) (*core.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[id]
	if !ok {
		return nil, core.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (c *Memory) QueryActive(ctx context.Context, q *core.ActiveQuery) ([]*core.Product, error) {
	if q == nil {
		q = &core.ActiveQuery{}
	}

	excluded := make(map[string]bool, len(q.Exclude))
	for _, id := range q.Exclude {
		excluded[id] = true
	}

	c.mu.RLock()
	matched := make([]*core.Product, 0, len(c.order))
	for _, id := range c.order {
		p := c.products[id]
		if p.Status != core.ProductActive || excluded[p.ID] {
			continue
		}
		if !matchAny(p, q.Clauses) {
			continue
		}
		cp := *p
		matched = append(matched, &cp)
	}
	c.mu.RUnlock()

	sortProducts(matched, q.OrderBy)

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

// matchAny 检查商品是否命中任一 OR 子句；子句为空表示不按属性过滤。
func matchAny(p *core.Product, clauses []core.Clause) bool {
	if len(clauses) == 0 {
		return true
	}
	for _, cl := range clauses {
		if matchClause(p, cl) {
			return true
		}
	}
	return false
}

func matchClause(p *core.Product, cl core.Clause) bool {
	switch cl.Field {
	case core.ClauseCategory:
		return intersects(p.CategoryIDs, cl.Values)
	case core.ClauseBrand:
		return contains(cl.Values, p.BrandID)
	case core.ClauseTag:
		return intersects(p.Tags, cl.Values)
	case core.ClauseSkinType:
		return intersects(p.SkinTypes, cl.Values)
	case core.ClauseConcern:
		return intersects(p.Concerns, cl.Values)
	case core.ClauseKeyword:
		return matchKeywords(p, cl.Values)
	case core.ClauseBestSeller:
		return p.IsBestSeller
	}
	return false
}

// matchKeywords 检查任一关键词是否命中名称/描述/标签（不区分大小写）。
func matchKeywords(p *core.Product, keywords []string) bool {
	name := strings.ToLower(p.Name)
	desc := strings.ToLower(p.Description)
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(name, kw) || strings.Contains(desc, kw) {
			return true
		}
		for _, tag := range p.Tags {
			if strings.Contains(strings.ToLower(tag), kw) {
				return true
			}
		}
	}
	return false
}

func contains(values []string, v string) bool {
	if v == "" {
		return false
	}
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, v := range a {
		if contains(b, v) {
			return true
		}
	}
	return false
}

// sortProducts 按 OrderBy 依次比较；完全相等时按商品 ID 升序保证确定性。
func sortProducts(products []*core.Product, orderBy []core.Ordering) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		for _, o := range orderBy {
			cmp := compareBy(a, b, o.Field)
			if cmp == 0 {
				continue
			}
			if o.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return a.ID < b.ID
	})
}

func compareBy(a, b *core.Product, field core.SortField) int {
	switch field {
	case core.SortByRating:
		switch {
		case a.AverageRating < b.AverageRating:
			return -1
		case a.AverageRating > b.AverageRating:
			return 1
		}
	case core.SortByBestSeller:
		switch {
		case !a.IsBestSeller && b.IsBestSeller:
			return -1
		case a.IsBestSeller && !b.IsBestSeller:
			return 1
		}
	case core.SortByCreatedAt:
		switch {
		case a.CreatedAt.Before(b.CreatedAt):
			return -1
		case a.CreatedAt.After(b.CreatedAt):
			return 1
		}
	}
	return 0
}
