package pdf

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presentation-service-go/internal/domain/presentation"
	"presentation-service-go/internal/domain/presentation/presentationtest"
	"presentation-service-go/internal/pkg/assets"
	"presentation-service-go/internal/pkg/gotenberg"
	"presentation-service-go/internal/pkg/media"
	"presentation-service-go/internal/pkg/storage"
)

const (
	mediaBase = "https://media.test"
	assetBase = "http://presentation:8080"
)

type stubImages struct {
	img media.Image
}

func newStubImages(t *testing.T) *stubImages {
	t.Helper()
	src := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			src.Set(x, y, color.RGBA{R: 200, G: 120, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	return &stubImages{img: media.Image{Data: buf.Bytes(), Format: media.FormatPNG, Width: 40, Height: 30}}
}

func (s *stubImages) Image(context.Context, string, bool) (media.Image, error) {
	return s.img, nil
}

func (s *stubImages) StaticMap(context.Context, float64, float64, int) (media.Image, error) {
	return s.img, nil
}

type fakeConverter struct {
	mu    sync.Mutex
	htmls []string
	err   error
}

func (f *fakeConverter) ConvertHTML(_ context.Context, html string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.htmls = append(f.htmls, html)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.7 converted"), nil
}

type sent struct {
	presentationID string
	pdf            []byte
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sent
	err  error
}

func (f *fakeSender) Send(_ context.Context, presentationID string, pdf []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sent{presentationID: presentationID, pdf: pdf})
	return f.err
}

type generation struct {
	template string
	format   string
	hasError bool
}

type fakeTracker struct {
	mu          sync.Mutex
	generations []generation
	files       []int64
}

func (f *fakeTracker) TrackGeneration(template, format string, _ time.Duration, hasError bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generations = append(f.generations, generation{template: template, format: format, hasError: hasError})
}

func (f *fakeTracker) TrackFile(_ string, size int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files = append(f.files, size)
}

func newAssembler(t *testing.T, renderer string, converter *fakeConverter) *Assembler {
	t.Helper()
	res := Resources{
		Images:    newStubImages(t),
		Assets:    assets.New(""),
		MediaBase: mediaBase,
		AssetBase: assetBase,
	}
	var conv gotenberg.Converter
	if converter != nil {
		conv = converter
	}
	a, err := NewAssembler(NewRegistry(), res, conv, renderer)
	require.NoError(t, err)
	return a
}

func requestWithBlocks() *presentation.Request {
	req := presentationtest.Request()
	req.Blocks = presentationtest.Blocks(req)
	return req
}

func TestRegistry_Lookup(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		id           string
		lookupErr    error
		buildableErr error
	}{
		{TemplateRealEstateOffer, nil, nil},
		{TemplateTest, nil, nil},
		{TemplateOfferPerfect, nil, ErrTemplateNotSupported},
		{"unknown_template", ErrUnknownTemplate, ErrUnknownTemplate},
		{"", ErrUnknownTemplate, ErrUnknownTemplate},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			tmpl, err := registry.Lookup(tt.id)
			if tt.lookupErr != nil {
				assert.ErrorIs(t, err, tt.lookupErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.id, tmpl.ID)
			}

			_, err = registry.Buildable(tt.id)
			if tt.buildableErr != nil {
				assert.ErrorIs(t, err, tt.buildableErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegistry_ForDataType(t *testing.T) {
	registry := NewRegistry()
	offer := []TemplateInfo{{ID: TemplateRealEstateOffer, Name: "Предложение помещений"}}

	tests := []struct {
		dataType presentation.DataType
		want     []TemplateInfo
	}{
		{presentation.DataTypeSingleOffer, offer},
		{presentation.DataTypeMultipleOffers, offer},
		{presentation.DataTypeSingleRealty, []TemplateInfo{}},
		{presentation.DataTypeMultipleObjects, []TemplateInfo{}},
		{"", []TemplateInfo{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.dataType), func(t *testing.T) {
			assert.Equal(t, tt.want, registry.ForDataType(tt.dataType))
		})
	}
}

func TestNewAssembler(t *testing.T) {
	_, err := NewAssembler(NewRegistry(), Resources{}, nil, "docx")
	assert.Error(t, err)

	_, err = NewAssembler(NewRegistry(), Resources{}, nil, RendererHTML)
	assert.Error(t, err)

	a, err := NewAssembler(NewRegistry(), Resources{}, nil, RendererLayout)
	require.NoError(t, err)
	assert.NotNil(t, a.res.Assets)
	assert.NotNil(t, a.res.Templates)
}

func TestAssembler_Layout(t *testing.T) {
	req := requestWithBlocks()
	a := newAssembler(t, RendererLayout, nil)

	doc, err := a.Assemble(context.Background(), TemplateRealEstateOffer, req.Blocks, req)
	require.NoError(t, err)

	assert.Equal(t, FormatPDF, doc.Format)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF")))
	assert.Equal(t, len(presentation.BlockKinds), doc.Pages)
	_, err = uuid.Parse(doc.ID)
	assert.NoError(t, err)
	assert.Equal(t, doc.ID+".pdf", doc.FileKey())
}

func TestAssembler_UniqueIDs(t *testing.T) {
	req := requestWithBlocks()
	a := newAssembler(t, RendererLayout, nil)
	blocks := req.Blocks[:1]

	first, err := a.Assemble(context.Background(), TemplateTest, blocks, req)
	require.NoError(t, err)
	second, err := a.Assemble(context.Background(), TemplateTest, blocks, req)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAssembler_SkipsUnresolvedBlocks(t *testing.T) {
	req := requestWithBlocks()
	a := newAssembler(t, RendererLayout, nil)

	blocks := []presentation.BlockDescriptor{
		{BlockID: presentation.BlockBuildingInfo, RealtyID: "missing"},
		req.Blocks[0],
		{BlockID: "footer"},
	}
	doc, err := a.Assemble(context.Background(), TemplateRealEstateOffer, blocks, req)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Pages)

	_, err = a.Assemble(context.Background(), TemplateRealEstateOffer, blocks[:1], req)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestAssembler_UnsupportedTemplate(t *testing.T) {
	req := requestWithBlocks()
	a := newAssembler(t, RendererLayout, nil)

	_, err := a.Assemble(context.Background(), TemplateOfferPerfect, req.Blocks, req)
	assert.ErrorIs(t, err, ErrTemplateNotSupported)

	_, err = a.Preview(context.Background(), "unknown", req.Blocks, req)
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestAssembler_HTML(t *testing.T) {
	req := requestWithBlocks()
	converter := &fakeConverter{}
	a := newAssembler(t, RendererHTML, converter)

	doc, err := a.Assemble(context.Background(), TemplateRealEstateOffer, req.Blocks, req)
	require.NoError(t, err)

	assert.Equal(t, FormatPDF, doc.Format)
	assert.Equal(t, []byte("%PDF-1.7 converted"), doc.Content)
	require.Len(t, converter.htmls, 1)

	html := converter.htmls[0]
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Less(t, strings.Index(html, "Белая площадь"), strings.Index(html, "Иван Петров"))
	assert.Contains(t, html, assetBase+"/static/")
}

func TestAssembler_HTMLConversionFailure(t *testing.T) {
	req := requestWithBlocks()
	errGotenberg := errors.New("gotenberg unavailable")
	a := newAssembler(t, RendererHTML, &fakeConverter{err: errGotenberg})

	_, err := a.Assemble(context.Background(), TemplateRealEstateOffer, req.Blocks, req)
	assert.ErrorIs(t, err, errGotenberg)
}

func TestAssembler_Preview(t *testing.T) {
	req := requestWithBlocks()
	converter := &fakeConverter{}
	a := newAssembler(t, RendererHTML, converter)

	doc, err := a.Preview(context.Background(), TemplateRealEstateOffer, req.Blocks, req)
	require.NoError(t, err)

	assert.Equal(t, FormatHTML, doc.Format)
	assert.Contains(t, string(doc.Content), "Коммерческое предложение")
	assert.Empty(t, converter.htmls)
}

type serviceDeps struct {
	service *ServiceImpl
	store   *storage.Local
	sender  *fakeSender
	tracker *fakeTracker
}

func newTestService(t *testing.T, sender *fakeSender) serviceDeps {
	t.Helper()
	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	tracker := &fakeTracker{}
	var s Sender
	if sender != nil {
		s = sender
	}
	svc := NewService(NewRegistry(), newAssembler(t, RendererLayout, nil), store, s, tracker, Options{Workers: 2, Timeout: time.Minute})
	return serviceDeps{service: svc, store: store, sender: sender, tracker: tracker}
}

func shutdown(t *testing.T, svc *ServiceImpl) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, svc.Shutdown(ctx))
}

func storedFiles(t *testing.T, store *storage.Local) []string {
	t.Helper()
	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestService_Templates(t *testing.T) {
	deps := newTestService(t, nil)

	resp := deps.service.Templates(presentation.DataTypeMultipleOffers)
	assert.Equal(t, presentation.DataTypeMultipleOffers, resp.DataType)
	require.Len(t, resp.Templates, 1)
	assert.Equal(t, TemplateRealEstateOffer, resp.Templates[0].ID)

	assert.Empty(t, deps.service.Templates(presentation.DataTypeSingleRealty).Templates)
}

func TestService_Blocks(t *testing.T) {
	deps := newTestService(t, nil)

	req := presentationtest.Request()
	resp, err := deps.service.Blocks(req)
	require.NoError(t, err)
	require.Len(t, resp.Blocks, len(presentation.BlockKinds))
	for _, b := range resp.Blocks {
		assert.False(t, b.HasErrors(), b.BlockID)
	}

	req.Broker = nil
	resp, err = deps.service.Blocks(req)
	require.NoError(t, err)
	last := resp.Blocks[len(resp.Blocks)-1]
	assert.Equal(t, presentation.BlockBrokerContacts, last.BlockID)
	assert.True(t, last.HasErrors())

	req.TemplateID = TemplateOfferPerfect
	resp, err = deps.service.Blocks(req)
	require.NoError(t, err)
	assert.Empty(t, resp.Blocks)

	req.TemplateID = "unknown"
	_, err = deps.service.Blocks(req)
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestService_CreateRejected(t *testing.T) {
	deps := newTestService(t, &fakeSender{})

	tests := []struct {
		name     string
		mutate   func(*presentation.Request)
		wantErr  error
		rejected []presentation.BlockKind
	}{
		{
			name:    "unknown template",
			mutate:  func(r *presentation.Request) { r.TemplateID = "unknown" },
			wantErr: ErrUnknownTemplate,
		},
		{
			name:     "no blocks",
			mutate:   func(r *presentation.Request) { r.Blocks = nil },
			wantErr:  ErrValidationFailed,
			rejected: []presentation.BlockKind{},
		},
		{
			name:     "no broker",
			mutate:   func(r *presentation.Request) { r.Broker = nil },
			wantErr:  ErrValidationFailed,
			rejected: []presentation.BlockKind{presentation.BlockBrokerContacts},
		},
		{
			name:    "template without builders",
			mutate:  func(r *presentation.Request) { r.TemplateID = TemplateOfferPerfect },
			wantErr: ErrTemplateNotSupported,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := requestWithBlocks()
			tt.mutate(req)

			err := deps.service.Create(context.Background(), req)
			require.ErrorIs(t, err, tt.wantErr)

			if tt.rejected != nil {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				kinds := make([]presentation.BlockKind, 0, len(verr.Blocks))
				for _, b := range verr.Blocks {
					kinds = append(kinds, b.BlockID)
				}
				assert.Equal(t, tt.rejected, kinds)
			}
		})
	}

	shutdown(t, deps.service)
	assert.Empty(t, deps.sender.sent)
	assert.Empty(t, storedFiles(t, deps.store))
}

func TestService_CreateDeliversAndRemovesFile(t *testing.T) {
	deps := newTestService(t, &fakeSender{})

	req := requestWithBlocks()
	require.NoError(t, deps.service.Create(context.Background(), req))
	shutdown(t, deps.service)

	require.Len(t, deps.sender.sent, 1)
	assert.Equal(t, req.PresentationID, deps.sender.sent[0].presentationID)
	assert.True(t, bytes.HasPrefix(deps.sender.sent[0].pdf, []byte("%PDF")))
	assert.Empty(t, storedFiles(t, deps.store))

	require.Len(t, deps.tracker.generations, 1)
	assert.Equal(t, generation{template: TemplateRealEstateOffer, format: FormatPDF}, deps.tracker.generations[0])
	require.Len(t, deps.tracker.files, 1)
	assert.Equal(t, int64(len(deps.sender.sent[0].pdf)), deps.tracker.files[0])
}

func TestService_CreateKeepsUndeliveredFile(t *testing.T) {
	deps := newTestService(t, &fakeSender{err: errors.New("callback is down")})
	ctx := context.Background()

	require.NoError(t, deps.service.Create(ctx, requestWithBlocks()))
	shutdown(t, deps.service)

	files := storedFiles(t, deps.store)
	require.Len(t, files, 1)
	fileID := strings.TrimSuffix(files[0], ".pdf")

	data, err := deps.service.File(ctx, fileID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	require.NoError(t, deps.service.DeleteFile(ctx, fileID))
	_, err = deps.service.File(ctx, fileID)
	assert.ErrorIs(t, err, storage.ErrFileNotFound)
}

func TestService_CreateWithoutCallback(t *testing.T) {
	deps := newTestService(t, nil)

	require.NoError(t, deps.service.Create(context.Background(), requestWithBlocks()))
	shutdown(t, deps.service)

	assert.Len(t, storedFiles(t, deps.store), 1)
}

func TestService_FileInvalidID(t *testing.T) {
	deps := newTestService(t, nil)

	for _, id := range []string{"", "../etc/passwd", "not-a-uuid"} {
		_, err := deps.service.File(context.Background(), id)
		assert.ErrorIs(t, err, storage.ErrInvalidKey, id)
		assert.ErrorIs(t, deps.service.DeleteFile(context.Background(), id), storage.ErrInvalidKey, id)
	}

	_, err := deps.service.File(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, storage.ErrFileNotFound)
}

func TestService_Preview(t *testing.T) {
	deps := newTestService(t, nil)

	doc, err := deps.service.Preview(context.Background(), requestWithBlocks())
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, doc.Format)
	assert.True(t, strings.HasPrefix(string(doc.Content), "<!DOCTYPE html>"))

	req := requestWithBlocks()
	req.Broker = nil
	_, err = deps.service.Preview(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Blocks: []presentation.BlockDescriptor{
		{BlockID: presentation.BlockHeader},
		{BlockID: presentation.BlockBrokerContacts},
	}}
	assert.Equal(t, "presentation data is invalid: header, broker_contacts", err.Error())
	assert.ErrorIs(t, err, ErrValidationFailed)

	assert.Equal(t, "presentation data is invalid: no blocks requested", (&ValidationError{}).Error())
}
