package pipeline

import (
	"context"
	"reflect"
	"testing"

	"github.com/zliveze/Project-Final-sub005/core"
)

const sampleYAML = `
pipeline:
  name: homepage
  nodes:
    - type: recall.stub
      config:
        ids: [p1, p2]
    - type: rerank.take
      config:
        n: 1
`

// stubNode 是测试用 Node：追加固定 ID 或截断。
type stubNode struct {
	name string
	kind Kind
	fn   func(items []*core.Item) []*core.Item
}

func (n *stubNode) Name() string { return n.name }
func (n *stubNode) Kind() Kind   { return n.kind }
func (n *stubNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	return n.fn(items), nil
}

func testFactory() *NodeFactory {
	f := NewNodeFactory()
	f.Register("recall.stub", func(cfg map[string]interface{}) (Node, error) {
		raw, _ := cfg["ids"].([]interface{})
		return &stubNode{name: "recall.stub", kind: KindRecall, fn: func(items []*core.Item) []*core.Item {
			for _, v := range raw {
				if s, ok := v.(string); ok {
					items = append(items, core.NewItem(s))
				}
			}
			return items
		}}, nil
	})
	f.Register("rerank.take", func(cfg map[string]interface{}) (Node, error) {
		n := 0
		if v, ok := cfg["n"].(int); ok {
			n = v
		}
		return &stubNode{name: "rerank.take", kind: KindReRank, fn: func(items []*core.Item) []*core.Item {
			if n > 0 && len(items) > n {
				return items[:n]
			}
			return items
		}}, nil
	})
	return f
}

func TestParseYAMLAndBuild(t *testing.T) {
	cfg, err := ParseYAML([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if cfg.Pipeline.Name != "homepage" {
		t.Errorf("pipeline name = %q, want homepage", cfg.Pipeline.Name)
	}
	if len(cfg.Pipeline.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(cfg.Pipeline.Nodes))
	}

	p, err := cfg.BuildPipeline(testFactory())
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	out, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := core.IDs(out); !reflect.DeepEqual(got, []string{"p1"}) {
		t.Errorf("Run() = %v, want [p1]", got)
	}
}

func TestBuildPipelineUnknownType(t *testing.T) {
	cfg := &Config{}
	cfg.Pipeline.Nodes = []NodeConfig{{Type: "recall.nonexistent"}}

	if _, err := cfg.BuildPipeline(testFactory()); err == nil {
		t.Error("BuildPipeline() error = nil, want unknown node type error")
	}
}

func TestFactoryTypes(t *testing.T) {
	got := testFactory().Types()
	want := []string{"recall.stub", "rerank.take"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Types() = %v, want %v", got, want)
	}
}
