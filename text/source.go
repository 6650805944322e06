package text

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Sentinel errors for the text package.
var (
	// ErrEmptyFontData is returned when a font source yields no bytes.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoFont is returned by LoadProvider when every source failed.
	ErrNoFont = errors.New("text: no usable font source")
)

// FontSource produces raw font file bytes.
type FontSource interface {
	Name() string
	Load(ctx context.Context) ([]byte, error)
}

// URLSource fetches a font over HTTP. In the browser the request goes
// through the Fetch API.
type URLSource struct {
	URL    string
	Client *http.Client
}

// Name implements FontSource.
func (s URLSource) Name() string { return s.URL }

// Load implements FontSource.
func (s URLSource) Load(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// BytesSource serves font data already in memory.
type BytesSource struct {
	Label string
	Data  []byte
}

// Name implements FontSource.
func (s BytesSource) Name() string { return s.Label }

// Load implements FontSource.
func (s BytesSource) Load(context.Context) ([]byte, error) {
	if len(s.Data) == 0 {
		return nil, ErrEmptyFontData
	}
	return s.Data, nil
}

// GoBold is the embedded Go Bold font, the last resort of the default
// fallback chain.
func GoBold() BytesSource { return BytesSource{Label: "Go Bold", Data: gobold.TTF} }

// GoRegular is the embedded Go Regular font.
func GoRegular() BytesSource { return BytesSource{Label: "Go Regular", Data: goregular.TTF} }

// LoadProvider tries sources in order and returns a provider for the first
// one that loads and parses. When all fail the error wraps ErrNoFont and
// every individual failure.
func LoadProvider(ctx context.Context, sources ...FontSource) (*SFNTProvider, error) {
	errs := []error{ErrNoFont}
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		data, err := src.Load(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("text: load %s: %w", src.Name(), err))
			continue
		}
		p, err := NewSFNTProvider(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("text: %s: %w", src.Name(), err))
			continue
		}
		p.Source = src.Name()
		return p, nil
	}
	return nil, errors.Join(errs...)
}
