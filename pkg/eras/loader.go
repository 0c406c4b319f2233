package eras

import (
	"fmt"
	"image"
	"net/http"
	"strings"
	"time"

	"fortio.org/log"

	"github.com/chronoglobe/globe/pkg/render"
)

// ResourcePrefix marks built-in procedural textures, e.g. "res:modern".
const ResourcePrefix = "res:"

// result is one completed fetch, delivered to the frame loop.
type result struct {
	gen     uint64
	era     string
	texture *render.Texture
	err     error
}

// Loader fetches era textures without blocking the frame loop. Load
// fires a fetch and returns immediately; Apply, called once per frame,
// installs whatever has completed since. A generation counter discards
// completions that were superseded by a later Load, so rapid era
// switching always converges on the last selection.
type Loader struct {
	client  *http.Client
	results chan result
	gen     uint64
}

// NewLoader creates a loader. timeout bounds each remote fetch.
func NewLoader(timeout time.Duration) *Loader {
	return &Loader{
		client:  &http.Client{Timeout: timeout},
		results: make(chan result, 16),
	}
}

// Load switches the material to the placeholder color and starts
// fetching the texture at locator. The outcome is observed only through
// a later Apply call.
func (l *Loader) Load(era, locator string, mat *Material) {
	mat.SetColor(PlaceholderColor)
	l.gen++
	gen := l.gen

	go func() {
		tex, err := l.fetch(locator)
		l.results <- result{gen: gen, era: era, texture: tex, err: err}
	}()
}

// Apply drains completed fetches and installs the newest one on the
// material. Fetch failures fall back to the flat fallback color and are
// logged; they are not fatal. Returns the era whose fetch resolved this
// frame ("" when nothing changed) and, when that fetch failed, its
// error, so frontends can tell a landed texture from the fallback.
func (l *Loader) Apply(mat *Material) (string, error) {
	applied := ""
	var applyErr error
	for {
		select {
		case r := <-l.results:
			if r.gen != l.gen {
				// A newer Load superseded this fetch.
				continue
			}
			if r.err != nil {
				log.Errf("texture %s: %v", r.era, r.err)
				mat.SetColor(FallbackColor)
			} else {
				mat.SetTexture(r.texture)
			}
			applied = r.era
			applyErr = r.err
		default:
			return applied, applyErr
		}
	}
}

// fetch resolves one locator. Runs off the frame loop goroutine.
func (l *Loader) fetch(locator string) (*render.Texture, error) {
	switch {
	case strings.HasPrefix(locator, ResourcePrefix):
		return proceduralTexture(strings.TrimPrefix(locator, ResourcePrefix))
	case strings.HasPrefix(locator, "http://"), strings.HasPrefix(locator, "https://"):
		return l.fetchHTTP(locator)
	default:
		return render.LoadTexture(locator)
	}
}

func (l *Loader) fetchHTTP(url string) (*render.Texture, error) {
	resp, err := l.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %s", url, resp.Status)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return render.TextureFromImage(img), nil
}
