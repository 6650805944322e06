package text

import (
	"fmt"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/simukka/nebula/common"
	"github.com/simukka/nebula/glyph"
)

// Glyph is one character's outline in layout units with y pointing up and
// the origin on the baseline at the pen position.
type Glyph struct {
	Contours []glyph.Contour
	Advance  float64
}

// FontProvider supplies glyph outlines and metrics at a given font size.
type FontProvider interface {
	GlyphOutline(r rune, size float64) (Glyph, error)
	Kern(a, b rune, size float64) float64
}

type glyphKey struct {
	r    rune
	size float64
}

// SFNTProvider reads outlines from a parsed TrueType or OpenType font.
// It is not safe for concurrent use.
type SFNTProvider struct {
	// Source names where the font was loaded from.
	Source string
	// Tolerance is the curve flattening tolerance as a fraction of the
	// font size.
	Tolerance float64

	font  *sfnt.Font
	buf   sfnt.Buffer
	cache map[glyphKey]Glyph
}

// NewSFNTProvider parses font data.
func NewSFNTProvider(data []byte) (*SFNTProvider, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return &SFNTProvider{
		Tolerance: 0.004,
		font:      f,
		cache:     make(map[glyphKey]Glyph),
	}, nil
}

// Family returns the font family name, or "" if the font has none.
func (p *SFNTProvider) Family() string {
	name, err := p.font.Name(&p.buf, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// GlyphOutline implements FontProvider. Runes missing from the font return
// an empty outline with the .notdef advance so layout keeps its spacing.
func (p *SFNTProvider) GlyphOutline(r rune, size float64) (Glyph, error) {
	key := glyphKey{r: r, size: size}
	if g, ok := p.cache[key]; ok {
		return g, nil
	}

	ppem := toFixed(size)
	gid, err := p.font.GlyphIndex(&p.buf, r)
	if err != nil {
		return Glyph{}, fmt.Errorf("text: glyph index for %q: %w", r, err)
	}
	advance, err := p.font.GlyphAdvance(&p.buf, gid, ppem, font.HintingNone)
	if err != nil {
		return Glyph{}, fmt.Errorf("text: advance for %q: %w", r, err)
	}
	g := Glyph{Advance: fromFixed(advance)}
	if gid == 0 {
		p.cache[key] = g
		return g, nil
	}

	segments, err := p.font.LoadGlyph(&p.buf, gid, ppem, nil)
	if err != nil {
		return Glyph{}, fmt.Errorf("text: outline for %q: %w", r, err)
	}

	b := glyph.NewPathBuilder(math.Max(p.Tolerance*size, 1e-3))
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			b.MoveTo(flip(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			b.LineTo(flip(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			b.QuadTo(flip(seg.Args[0]), flip(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			b.CubicTo(flip(seg.Args[0]), flip(seg.Args[1]), flip(seg.Args[2]))
		}
	}
	g.Contours = b.Contours()
	p.cache[key] = g
	return g, nil
}

// Kern implements FontProvider. Fonts without a kern table return 0.
func (p *SFNTProvider) Kern(a, b rune, size float64) float64 {
	ga, err := p.font.GlyphIndex(&p.buf, a)
	if err != nil || ga == 0 {
		return 0
	}
	gb, err := p.font.GlyphIndex(&p.buf, b)
	if err != nil || gb == 0 {
		return 0
	}
	k, err := p.font.Kern(&p.buf, ga, gb, toFixed(size), font.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(k)
}

// flip converts a y-down sfnt point into y-up layout space.
func flip(pt fixed.Point26_6) common.Point2 {
	return common.Point2{X: fromFixed(pt.X), Y: -fromFixed(pt.Y)}
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
