// Package text lays out user text as a particle point cloud: normalisation,
// greedy wrapping, glyph outlines from a font provider and budgeted
// sampling of every glyph.
package text

import (
	"fmt"

	"github.com/simukka/nebula/common"
	"github.com/simukka/nebula/glyph"
)

// LayoutConfig controls line breaking, spacing and sampling.
type LayoutConfig struct {
	FontSize        float64
	MaxCharsPerLine int
	LineSpacing     float64 // multiple of FontSize between baselines
	Sampler         glyph.SamplerConfig

	// Strings with at most ShortTextChars visible characters are sampled
	// denser and drawn with larger points.
	ShortTextChars        int
	ShortTextDensityBoost float64
	ShortTextSizeBoost    float64
}

// DefaultLayoutConfig returns the layout used by the scene.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		FontSize:              64,
		MaxCharsPerLine:       14,
		LineSpacing:           1.15,
		Sampler:               glyph.DefaultSamplerConfig(),
		ShortTextChars:        2,
		ShortTextDensityBoost: 2.2,
		ShortTextSizeBoost:    1.6,
	}
}

// GlyphSpan records which points of a Cloud belong to one laid out glyph.
type GlyphSpan struct {
	Rune                   rune
	Line                   int
	FillStart, FillEnd     int
	StrokeStart, StrokeEnd int
}

// Empty reports whether the glyph produced no points.
func (s GlyphSpan) Empty() bool {
	return s.FillEnd == s.FillStart && s.StrokeEnd == s.StrokeStart
}

// Cloud is laid out text as points centred on the origin.
type Cloud struct {
	glyph.PointSet
	Width, Height, Depth float64
	Lines                []string
	Chars                int // visible characters
	Glyphs               []GlyphSpan
	SizeBoost            float64
}

// Bounds returns the bounding box of the cloud.
func (c *Cloud) Bounds() common.Box {
	half := common.Point3{X: c.Width / 2, Y: c.Height / 2, Z: c.Depth / 2}
	return common.Box{Min: half.Scale(-1), Max: half}
}

type placedGlyph struct {
	r      rune
	line   int
	shapes []int // indices into the prepared slice
}

// Layout turns text into a point cloud. Empty or whitespace-only text
// yields an empty cloud. The only errors come from the font provider.
func Layout(s string, cfg LayoutConfig, fonts FontProvider, rng *common.SeededRNG) (*Cloud, error) {
	var lines []string
	for _, p := range Normalize(s) {
		lines = append(lines, Wrap(p, cfg.MaxCharsPerLine)...)
	}
	cloud := &Cloud{Lines: lines, Chars: countVisible(lines), SizeBoost: 1}
	if len(lines) == 0 {
		return cloud, nil
	}

	sc := cfg.Sampler
	if cloud.Chars > 0 && cloud.Chars <= cfg.ShortTextChars {
		if cfg.ShortTextDensityBoost > 0 {
			sc.Density *= cfg.ShortTextDensityBoost
		}
		if cfg.ShortTextSizeBoost > 0 {
			cloud.SizeBoost = cfg.ShortTextSizeBoost
		}
	}

	size := cfg.FontSize
	lineStep := cfg.LineSpacing * size
	top := float64(len(lines)-1) / 2 * lineStep

	var prepared []glyph.Prepared
	var placed []placedGlyph
	for li, line := range lines {
		type pen struct {
			r rune
			x float64
			g Glyph
		}
		var row []pen
		x := 0.0
		prev := rune(-1)
		for _, r := range line {
			if prev >= 0 {
				x += fonts.Kern(prev, r, size)
			}
			g, err := fonts.GlyphOutline(r, size)
			if err != nil {
				return nil, fmt.Errorf("text: layout line %d: %w", li, err)
			}
			row = append(row, pen{r: r, x: x, g: g})
			x += g.Advance
			prev = r
		}

		left := -x / 2
		y := top - float64(li)*lineStep
		for _, pg := range row {
			pl := placedGlyph{r: pg.r, line: li}
			offset := common.Point2{X: left + pg.x, Y: y}
			for _, shape := range glyph.GroupShapes(pg.g.Contours) {
				pl.shapes = append(pl.shapes, len(prepared))
				prepared = append(prepared, glyph.Prepare(shape, offset))
			}
			placed = append(placed, pl)
		}
	}

	plan := glyph.PlanBudget(prepared, sc)
	sampler := glyph.NewSampler(sc, rng)
	remaining := plan.FillBudget
	for _, pl := range placed {
		span := GlyphSpan{
			Rune:        pl.r,
			Line:        pl.line,
			FillStart:   len(cloud.Fill),
			StrokeStart: len(cloud.Stroke),
		}
		for _, idx := range pl.shapes {
			res := sampler.SamplePrepared(prepared[idx], plan, idx, remaining)
			remaining -= res.Consumed
			cloud.Fill = append(cloud.Fill, res.Fill...)
			cloud.Stroke = append(cloud.Stroke, res.Stroke...)
		}
		span.FillEnd = len(cloud.Fill)
		span.StrokeEnd = len(cloud.Stroke)
		cloud.Glyphs = append(cloud.Glyphs, span)
	}

	recenter(cloud)
	return cloud, nil
}

// recenter moves every point so the bounding box centre sits at the origin
// and records the box dimensions.
func recenter(c *Cloud) {
	box := common.EmptyBox()
	for _, p := range c.Fill {
		box.Extend(p)
	}
	for _, p := range c.Stroke {
		box.Extend(p)
	}
	center := box.Center()
	for i := range c.Fill {
		c.Fill[i] = c.Fill[i].Sub(center)
	}
	for i := range c.Stroke {
		c.Stroke[i] = c.Stroke[i].Sub(center)
	}
	sz := box.Size()
	c.Width, c.Height, c.Depth = sz.X, sz.Y, sz.Z
}
