package pdf

import (
	"fmt"
	"slices"

	"presentation-service-go/internal/domain/presentation"
)

// Идентификаторы шаблонов
const (
	TemplateRealEstateOffer = "real_estate_offer_template"
	TemplateTest            = "test_template"
	TemplateOfferPerfect    = "offer_perfect_template"
)

// Template связывает шаблон с генератором, валидатором и построителями блоков.
// Шаблон без построителей известен API, но документ по нему не собирается
type Template struct {
	ID          string
	Name        string
	Generator   presentation.Generator
	Validator   presentation.Validator
	PDFBuilder  PDFBuilderFunc
	HTMLBuilder HTMLBuilderFunc
	// DataTypes выборки, для которых шаблон предлагается пользователю. Пустой список скрывает шаблон
	DataTypes []presentation.DataType
}

// Buildable сообщает, можно ли собрать документ по шаблону
func (t Template) Buildable() bool {
	return t.PDFBuilder != nil && t.HTMLBuilder != nil
}

// Registry статический реестр шаблонов
type Registry struct {
	templates map[string]Template
	order     []string
}

// NewRegistry создает реестр со всеми известными шаблонами
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]Template)}
	r.register(Template{
		ID:          TemplateRealEstateOffer,
		Name:        "Предложение помещений",
		Generator:   presentation.OfferGenerator{},
		Validator:   presentation.NewOfferValidator(),
		PDFBuilder:  offerPDFBuilder,
		HTMLBuilder: offerHTMLBuilder,
		DataTypes:   []presentation.DataType{presentation.DataTypeSingleOffer, presentation.DataTypeMultipleOffers},
	})
	r.register(Template{
		ID:          TemplateTest,
		Name:        "Тестовый шаблон",
		Generator:   presentation.OfferGenerator{},
		Validator:   presentation.NewOfferValidator(),
		PDFBuilder:  offerPDFBuilder,
		HTMLBuilder: offerHTMLBuilder,
	})
	r.register(Template{
		ID:   TemplateOfferPerfect,
		Name: "Предложение помещений (расширенное)",
	})
	return r
}

func (r *Registry) register(t Template) {
	r.templates[t.ID] = t
	r.order = append(r.order, t.ID)
}

// Lookup возвращает шаблон по id
func (r *Registry) Lookup(id string) (Template, error) {
	t, ok := r.templates[id]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	return t, nil
}

// Buildable возвращает шаблон, по которому можно собрать документ
func (r *Registry) Buildable(id string) (Template, error) {
	t, err := r.Lookup(id)
	if err != nil {
		return Template{}, err
	}
	if !t.Buildable() {
		return Template{}, fmt.Errorf("%w: %q", ErrTemplateNotSupported, id)
	}
	return t, nil
}

// ForDataType шаблоны, доступные для выборки. Всегда не nil
func (r *Registry) ForDataType(dataType presentation.DataType) []TemplateInfo {
	out := make([]TemplateInfo, 0, 1)
	for _, id := range r.order {
		t := r.templates[id]
		if slices.Contains(t.DataTypes, dataType) {
			out = append(out, TemplateInfo{ID: t.ID, Name: t.Name})
		}
	}
	return out
}
