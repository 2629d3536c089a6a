package rerank

import (
	"context"
	"reflect"
	"testing"

	"github.com/zliveze/Project-Final-sub005/core"
	"github.com/zliveze/Project-Final-sub005/pkg/utils"
)

func itemsOf(ids ...string) []*core.Item {
	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, core.NewItem(id))
	}
	return out
}

func TestTopNNode(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		n     int
		limit int // rctx.Limit
		in    []string
		want  []string
	}{
		{"truncates", 2, 0, []string{"a", "b", "c"}, []string{"a", "b"}},
		{"fewer than n", 5, 0, []string{"a", "b"}, []string{"a", "b"}},
		{"falls back to rctx limit", 0, 1, []string{"a", "b"}, []string{"a"}},
		{"no limit at all", 0, 0, []string{"a", "b"}, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			out, err := node.Process(ctx, &core.RecommendContext{Limit: tt.limit}, itemsOf(tt.in...))
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if got := core.IDs(out); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Process() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDedupNode(t *testing.T) {
	ctx := context.Background()
	node := &DedupNode{}

	a1 := core.NewItem("a")
	a1.PutLabel("recall_source", utils.Label{Value: "personalized", Source: "recall"})
	a2 := core.NewItem("a")
	a2.PutLabel("recall_source", utils.Label{Value: "bestseller", Source: "recall"})
	b := core.NewItem("b")

	out, err := node.Process(ctx, nil, []*core.Item{a1, b, a2, nil})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got := core.IDs(out); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("Process() = %v, want [a b]", got)
	}

	// 保留首个出现的候选，并把后续同 ID 的标签合并进去
	merged := out[0].Labels["recall_source"]
	if merged.Value != "personalized|bestseller" {
		t.Errorf("merged label value = %q, want personalized|bestseller", merged.Value)
	}
}
