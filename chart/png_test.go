package chart

import (
	"bytes"
	"errors"
	"testing"

	"github.com/etnz/rpametrics"
)

func TestRenderPNG(t *testing.T) {
	for _, f := range Build(sampleDashboard(t, rpametrics.Filter{})) {
		t.Run(f.ID, func(t *testing.T) {
			var buf bytes.Buffer
			err := RenderPNG(&buf, f)
			if f.Kind == Treemap || f.Kind == Sunburst {
				if !errors.Is(err, ErrUnsupported) {
					t.Errorf("RenderPNG() error = %v, want ErrUnsupported", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("RenderPNG() error = %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
				t.Errorf("RenderPNG() did not write a png")
			}
		})
	}
}

func TestRenderPNG_SinglePoint(t *testing.T) {
	f := Figure{ID: "one", Kind: Line, Series: []Series{{Name: "x", Labels: []string{"2024"}, Values: []float64{0}}}}
	var buf bytes.Buffer
	if err := RenderPNG(&buf, f); err != nil {
		t.Errorf("RenderPNG() error = %v", err)
	}
}

func TestRenderPNG_NoData(t *testing.T) {
	figs := Build(sampleDashboard(t, rpametrics.Filter{Process: "Nothing"}))
	for _, id := range []string{"executions-trend", "top-processes", "savings-heatmap", "execution-funnel"} {
		if err := RenderPNG(&bytes.Buffer{}, mustFind(t, figs, id)); !errors.Is(err, ErrNoData) {
			t.Errorf("RenderPNG(%s) error = %v, want ErrNoData", id, err)
		}
	}
	pie := Figure{ID: "pie", Kind: Pie, Series: []Series{{Labels: []string{"a"}, Values: []float64{-3}}}}
	if err := RenderPNG(&bytes.Buffer{}, pie); !errors.Is(err, ErrNoData) {
		t.Errorf("RenderPNG(negative pie) error = %v, want ErrNoData", err)
	}
}
