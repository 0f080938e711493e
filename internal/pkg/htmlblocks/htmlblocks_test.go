package htmlblocks

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presentation-service-go/internal/domain/presentation"
	"presentation-service-go/internal/domain/presentation/presentationtest"
	"presentation-service-go/internal/pkg/assets"
	"presentation-service-go/internal/pkg/media"
)

const (
	mediaBase = "https://media.test"
	assetBase = "http://presentation:8080"
)

var errStub = errors.New("stub failure")

type stubImages struct {
	mu      sync.Mutex
	failing map[string]bool
	calls   int
	mapErr  error
}

func (s *stubImages) Image(_ context.Context, url string, greyscale bool) (media.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failing[url] {
		return media.Image{}, errStub
	}
	format := media.FormatPNG
	if greyscale {
		format = media.FormatJPEG
	}
	return media.Image{Data: []byte(url), Format: format, Width: 4, Height: 3}, nil
}

func (s *stubImages) StaticMap(context.Context, float64, float64, int) (media.Image, error) {
	if s.mapErr != nil {
		return media.Image{}, s.mapErr
	}
	return media.Image{Data: []byte("map"), Format: media.FormatPNG, Width: 2, Height: 2}, nil
}

func newTestBuilder(t *testing.T, req *presentation.Request) (*Builder, *stubImages) {
	t.Helper()
	images := &stubImages{failing: make(map[string]bool)}
	repo := presentation.NewRepository(req, mediaBase)
	return NewBuilder(repo, images, NewTemplates(), NewInlineIcons(assets.New("")), assetBase), images
}

func blockHTML(t *testing.T, b *Builder, req *presentation.Request, kind presentation.BlockKind) string {
	t.Helper()
	for _, d := range presentationtest.Blocks(req) {
		if d.BlockID != kind {
			continue
		}
		block, ok := b.InfoBlock(d)
		require.True(t, ok)
		assert.Equal(t, kind, block.Kind())
		return block.HTML(context.Background())
	}
	t.Fatalf("block %s not generated", kind)
	return ""
}

func TestRewriteAssetURLs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"img", `<img src="/static/icons/logo.svg">`, `<img src="http://host/static/icons/logo.svg">`},
		{"link", `<link href="/static/app.css">`, `<link href="http://host/static/app.css">`},
		{"css double quote", `background: url("/static/patterns/pattern.png")`, `background: url("http://host/static/patterns/pattern.png")`},
		{"css single quote", `background: url('/static/patterns/pattern.png')`, `background: url('http://host/static/patterns/pattern.png')`},
		{"data uri untouched", `<img src="data:image/png;base64,AAAA">`, `<img src="data:image/png;base64,AAAA">`},
		{"absolute untouched", `<img src="https://cdn.test/a.png">`, `<img src="https://cdn.test/a.png">`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteAssetURLs(tt.in, "http://host/"))
		})
	}

	assert.Equal(t, `<img src="/a.png">`, RewriteAssetURLs(`<img src="/a.png">`, ""))
}

func TestSanitizeSVG(t *testing.T) {
	raw := `<svg viewBox="0 0 24 24" onload="alert(1)"><script>alert(1)</script>` +
		`<path d="M0 0H24" fill="url(#g)"/><defs><linearGradient id="g"><stop offset="1" stop-color="#fff"/></linearGradient></defs></svg>`

	clean := SanitizeSVG(raw)
	assert.NotContains(t, clean, "script")
	assert.NotContains(t, clean, "onload")
	assert.Contains(t, clean, `d="M0 0H24"`)
	assert.Contains(t, strings.ToLower(clean), "lineargradient")
	assert.Contains(t, clean, `stop-color="#fff"`)

	assert.Empty(t, SanitizeSVG("   "))
}

func TestInlineIcons_SVG(t *testing.T) {
	icons := NewInlineIcons(assets.New(""))

	svg := icons.SVG("inf_cafe")
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Equal(t, svg, icons.SVG("inf_cafe"))
	assert.Empty(t, icons.SVG("missing"))
}

func TestDataURI(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,AQI=", DataURI(media.Image{Data: []byte{1, 2}, Format: media.FormatPNG}))
	assert.Equal(t, "data:image/jpeg;base64,AQI=", DataURI(media.Image{Data: []byte{1, 2}, Format: media.FormatJPEG}))
	assert.Empty(t, DataURI(media.Image{}))
}

func TestBuilder_InfoBlock(t *testing.T) {
	req := presentationtest.Request()
	builder, _ := newTestBuilder(t, req)

	for _, d := range presentationtest.Blocks(req) {
		t.Run(string(d.BlockID), func(t *testing.T) {
			block, ok := builder.InfoBlock(d)
			require.True(t, ok)
			html := block.HTML(context.Background())
			assert.NotEmpty(t, html)
			assert.NotContains(t, html, `src="/static`)
			assert.NotContains(t, html, `url('/static`)
		})
	}

	_, ok := builder.InfoBlock(presentation.BlockDescriptor{BlockID: "footer"})
	assert.False(t, ok)
	_, ok = builder.InfoBlock(presentation.BlockDescriptor{BlockID: presentation.BlockBuildingInfo, RealtyID: "missing"})
	assert.False(t, ok)
	_, ok = builder.InfoBlock(presentation.BlockDescriptor{
		BlockID:        presentation.BlockAreaSchema,
		RealtyID:       presentationtest.RealtyID,
		RealtyObjectID: "missing",
	})
	assert.False(t, ok)
}

func TestHeaderBlock(t *testing.T) {
	req := presentationtest.Request()
	builder, _ := newTestBuilder(t, req)

	html := blockHTML(t, builder, req, presentation.BlockHeader)
	assert.Contains(t, html, "Коммерческое предложение по коммерческой недвижимости")
	assert.Contains(t, html, assetBase+"/static/icons/logo.svg")
	assert.Contains(t, html, assetBase+"/static/patterns/pattern.png")
}

func TestBuildingHeaderBlock(t *testing.T) {
	req := presentationtest.Request()
	builder, _ := newTestBuilder(t, req)

	html := blockHTML(t, builder, req, presentation.BlockBuildingHeader)
	assert.Contains(t, html, "Белая площадь")
	assert.Contains(t, html, "data:image/jpeg;base64,")
	assert.Contains(t, html, "subway_white.svg")
	assert.Contains(t, html, "Класс здания")
}

func TestBuildingLocationBlock(t *testing.T) {
	req := presentationtest.Request()
	builder, _ := newTestBuilder(t, req)

	html := blockHTML(t, builder, req, presentation.BlockBuildingLocation)
	assert.Contains(t, html, "~250 метров")
	assert.Contains(t, html, "пешком от метро")
	assert.Contains(t, html, "data:image/png;base64,")
	assert.Contains(t, html, "<svg")
	assert.NotContains(t, html, "&lt;svg")
}

func TestBuildingLocationBlock_MapFailure(t *testing.T) {
	req := presentationtest.Request()
	builder, images := newTestBuilder(t, req)
	images.mapErr = errStub

	html := blockHTML(t, builder, req, presentation.BlockBuildingLocation)
	assert.NotEmpty(t, html)
	assert.NotContains(t, html, "data:image/png;base64,")
}

func TestBuildingInfoBlock(t *testing.T) {
	req := presentationtest.Request()
	builder, _ := newTestBuilder(t, req)

	html := blockHTML(t, builder, req, presentation.BlockBuildingInfo)
	assert.Contains(t, html, "О бизнес-центре")
	assert.Contains(t, html, "Ключевые особенности")
	assert.Contains(t, html, "/static/icons/ch_")
}

func TestPhotosBlock(t *testing.T) {
	req := presentationtest.Request()
	builder, images := newTestBuilder(t, req)
	images.failing[mediaBase+"/b-photo-2"] = true

	html := blockHTML(t, builder, req, presentation.BlockBuildingPhoto)
	assert.Equal(t, 1, strings.Count(html, `class="page photos"`))
	assert.Equal(t, 2, strings.Count(html, "<figure"))
	assert.Contains(t, html, "Фасад")
	assert.NotContains(t, html, "Холл")
}

func TestPhotosBlock_NoPhotos(t *testing.T) {
	req := presentationtest.Request()
	builder, images := newTestBuilder(t, req)
	for _, hash := range []string{"a-photo-1", "a-photo-2", "a-photo-3"} {
		images.failing[mediaBase+"/"+hash] = true
	}

	assert.Empty(t, blockHTML(t, builder, req, presentation.BlockAreaPhoto))
}

func TestAreaCommercialBlock(t *testing.T) {
	req := presentationtest.Request()
	builder, _ := newTestBuilder(t, req)

	html := blockHTML(t, builder, req, presentation.BlockAreaCommercial)
	assert.Contains(t, html, "Коммерческие")
	assert.Contains(t, html, "за месяц")
	assert.Contains(t, html, "/static/icons/rent.svg")
	assert.Contains(t, html, "/static/icons/month.svg")
	assert.Contains(t, html, presentation.TermTax)
}

func TestAreaSchemaBlock(t *testing.T) {
	req := presentationtest.Request()
	builder, _ := newTestBuilder(t, req)

	html := blockHTML(t, builder, req, presentation.BlockAreaSchema)
	assert.Contains(t, html, "5 этаж")
	assert.Contains(t, html, "Планировка")
	// планировка выводится в цвете
	assert.Contains(t, html, "data:image/png;base64,")
}

func TestBrokerBlock(t *testing.T) {
	req := presentationtest.Request()
	builder, _ := newTestBuilder(t, req)

	html := blockHTML(t, builder, req, presentation.BlockBrokerContacts)
	assert.Contains(t, html, "Иван Петров")
	assert.Contains(t, html, "broker@")
	assert.Contains(t, html, `<span class="gradient">example.com</span>`)
}

func TestBlock_Memoized(t *testing.T) {
	req := presentationtest.Request()
	builder, images := newTestBuilder(t, req)

	blocks := presentationtest.Blocks(req)
	var photo presentation.BlockDescriptor
	for _, d := range blocks {
		if d.BlockID == presentation.BlockBuildingPhoto {
			photo = d
		}
	}

	first, ok := builder.InfoBlock(photo)
	require.True(t, ok)
	html := first.HTML(context.Background())
	calls := images.calls

	second, ok := builder.InfoBlock(photo)
	require.True(t, ok)
	assert.Equal(t, html, second.HTML(context.Background()))
	assert.Equal(t, calls, images.calls)
}

func TestBlock_TemplateFailure(t *testing.T) {
	req := presentationtest.Request()
	images := &stubImages{failing: make(map[string]bool)}
	broken := NewTemplatesFS(fstest.MapFS{
		"header.html": {Data: []byte("{% for %}")},
	})
	builder := NewBuilder(presentation.NewRepository(req, mediaBase), images, broken, NewInlineIcons(assets.New("")), assetBase)

	assert.Empty(t, blockHTML(t, builder, req, presentation.BlockHeader))
	// шаблона нет
	assert.Empty(t, blockHTML(t, builder, req, presentation.BlockBrokerContacts))
}

func TestBuilder_Document(t *testing.T) {
	req := presentationtest.Request()
	builder, _ := newTestBuilder(t, req)

	doc, err := builder.Document([]string{"<section>one</section>", "<section>two</section>"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(doc), "</html>"))
	assert.Less(t, strings.Index(doc, "one"), strings.Index(doc, "two"))
	assert.Contains(t, doc, `url("`+assetBase+"/static/fonts/Regular.ttf")
}
