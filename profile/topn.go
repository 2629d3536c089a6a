package profile

import "sort"

// TopN 返回分布中权重最高的 N 个属性 ID。
//
// 平分时按属性 ID 升序决胜：map 迭代顺序不可依赖，
// 显式决胜保证同一分布下结果可复现。
func TopN(m ScoreMap, n int) []string {
	if len(m) == 0 || n <= 0 {
		return nil
	}

	type scored struct {
		id    string
		score float64
	}
	all := make([]scored, 0, len(m))
	for id, score := range m {
		all = append(all, scored{id: id, score: score})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].id < all[j].id
	})

	if len(all) > n {
		all = all[:n]
	}
	out := make([]string, 0, len(all))
	for _, s := range all {
		out = append(out, s.id)
	}
	return out
}
