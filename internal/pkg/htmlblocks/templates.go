package htmlblocks

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Имена шаблонов
const (
	templateHeader           = "header.html"
	templateBuildingHeader   = "building_header.html"
	templateBuildingLocation = "building_location.html"
	templateBuildingInfo     = "building_info.html"
	templatePhotos           = "photos.html"
	templateAreaCommercial   = "area_commercial.html"
	templateAreaSchema       = "area_schema.html"
	templateBrokerContacts   = "broker_contacts.html"
	templateDocumentHeader   = "_header.html"
	templateDocumentFooter   = "_footer.html"
)

// Templates набор шаблонов инфоблоков. Разобранные шаблоны кешируются
type Templates struct {
	set   *pongo2.TemplateSet
	mu    sync.RWMutex
	cache map[string]*pongo2.Template
}

// NewTemplates создает набор поверх встроенных шаблонов
func NewTemplates() *Templates {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic(err)
	}
	return NewTemplatesFS(sub)
}

// NewTemplatesFS создает набор поверх произвольной файловой системы шаблонов
func NewTemplatesFS(files fs.FS) *Templates {
	return &Templates{
		set:   pongo2.NewSet("presentation", pongo2.NewFSLoader(files)),
		cache: make(map[string]*pongo2.Template),
	}
}

func (t *Templates) template(name string) (*pongo2.Template, error) {
	t.mu.RLock()
	tpl, ok := t.cache[name]
	t.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	tpl, err := t.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	t.mu.Lock()
	t.cache[name] = tpl
	t.mu.Unlock()
	return tpl, nil
}

// Render выполняет шаблон с данными
func (t *Templates) Render(name string, data pongo2.Context) (string, error) {
	tpl, err := t.template(name)
	if err != nil {
		return "", err
	}
	out, err := tpl.Execute(data)
	if err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return out, nil
}

// assetPrefixes места в разметке, где стоят относительные адреса статических ресурсов
var assetPrefixes = []string{`img src="`, `link href="`, `url("`, `url('`}

// RewriteAssetURLs делает абсолютными адреса ресурсов, начинающиеся с "/".
// Встроенные data:-изображения и внешние адреса не меняются
func RewriteAssetURLs(html, base string) string {
	base = strings.TrimRight(base, "/")
	if base == "" {
		return html
	}
	pairs := make([]string, 0, len(assetPrefixes)*2)
	for _, prefix := range assetPrefixes {
		pairs = append(pairs, prefix+"/", prefix+base+"/")
	}
	return strings.NewReplacer(pairs...).Replace(html)
}
