package config

import (
	"context"
	"strings"
	"testing"

	"github.com/zliveze/Project-Final-sub005/catalog"
	"github.com/zliveze/Project-Final-sub005/core"
	"github.com/zliveze/Project-Final-sub005/ledger"
	"github.com/zliveze/Project-Final-sub005/pipeline"
)

func testDeps() Deps {
	return Deps{
		Ledger: ledger.NewMemory(),
		Catalog: catalog.NewMemory(
			&core.Product{ID: "hot", Name: "Hot Serum", Status: core.ProductActive,
				AverageRating: 4.9, IsBestSeller: true},
			&core.Product{ID: "cold", Name: "Cold Cream", Status: core.ProductActive,
				AverageRating: 1.5},
		),
	}
}

const homeYAML = `
pipeline:
  name: home
  nodes:
    - type: recall.bestseller
    - type: filter
      config:
        exclude: [banned]
        rules:
          - 'item.score < 2.0'
    - type: rerank.dedup
    - type: rerank.topn
      config:
        n: 10
`

func TestDefaultFactoryBuildsConfiguredPipeline(t *testing.T) {
	cfg, err := pipeline.ParseYAML([]byte(homeYAML))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}

	factory := DefaultFactory(testDeps())
	if err := ValidatePipelineConfig(cfg, factory); err != nil {
		t.Fatalf("ValidatePipelineConfig() error = %v", err)
	}

	p, err := cfg.BuildPipeline(factory)
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}

	out, err := p.Run(context.Background(), &core.RecommendContext{Limit: 10}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	got := core.IDs(out)
	if len(got) != 1 || got[0] != "hot" {
		t.Errorf("Run() = %v, want [hot]", got)
	}
}

func TestDefaultFactoryRegistersAllNodeTypes(t *testing.T) {
	factory := DefaultFactory(testDeps())
	want := []string{
		"filter",
		"recall.bestseller", "recall.personalized", "recall.search", "recall.similar",
		"rerank.dedup", "rerank.topn",
	}
	got := factory.Types()
	if len(got) != len(want) {
		t.Fatalf("Types() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Types() = %v, want %v", got, want)
		}
	}
}

func TestValidatePipelineConfigRejectsUnknownType(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "recall.magic"}}

	err := ValidatePipelineConfig(cfg, DefaultFactory(testDeps()))
	if err == nil {
		t.Fatal("ValidatePipelineConfig() error = nil, want unsupported type error")
	}
	if !strings.Contains(err.Error(), "recall.magic") {
		t.Errorf("error %q does not name the offending type", err)
	}
}

func TestBuildPersonalizedWithTuning(t *testing.T) {
	factory := DefaultFactory(testDeps())
	node, err := factory.Build("recall.personalized", map[string]interface{}{
		"top_categories": 1,
		"top_tags":       2,
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if node.Kind() != pipeline.KindRecall {
		t.Errorf("Kind() = %v, want recall", node.Kind())
	}
	if node.Name() != "recall.personalized" {
		t.Errorf("Name() = %v", node.Name())
	}
}
