package htmlblocks

import (
	"context"
	"strings"

	"github.com/flosch/pongo2/v6"
	"go.uber.org/zap"

	"presentation-service-go/internal/domain/presentation"
	"presentation-service-go/internal/pkg/assets"
	"presentation-service-go/internal/pkg/layout"
	"presentation-service-go/internal/pkg/media"
	"presentation-service-go/internal/pkg/textutil"
)

// infrastructureMax сколько иконок инфраструктуры помещается на странице
const infrastructureMax = 14

type inlineIcon struct {
	Name string
	SVG  string
}

type characteristicView struct {
	Icon  string
	Param string
	Value string
}

type paramView struct {
	Icon  string
	Value string
	Lines []string
}

type photoView struct {
	Src  string
	Name string
}

type photoPage struct {
	Count  int
	Photos []photoView
}

func (b *Builder) headerData(context.Context) pongo2.Context {
	return pongo2.Context{
		"title": layout.HeaderTitle(b.repo.Name),
	}
}

func (b *Builder) buildingHeaderData(ctx context.Context, building *presentation.Building) pongo2.Context {
	loc := building.Location
	transport, transportIcon := loc.SubwayStations, "subway_white"
	if !loc.IsSubway {
		transport, transportIcon = loc.Roads, "location_white"
	}
	return pongo2.Context{
		"photo":         b.photo(ctx, building.PrimaryPhoto, true),
		"prefix":        building.Header.Prefix,
		"nameLines":     textutil.SplitString(building.Header.Name, 24),
		"location":      loc.Location,
		"transport":     transport,
		"transportIcon": transportIcon,
		"features":      building.Header.Features,
	}
}

func (b *Builder) buildingLocationData(ctx context.Context, loc presentation.BuildingLocation) pongo2.Context {
	mapSrc := ""
	if img, err := b.images.StaticMap(ctx, loc.Lat, loc.Lng, media.ZoomHTML); err != nil {
		b.logger.Warn("Failed to load static map", zap.Error(err))
	} else {
		mapSrc = DataURI(img)
	}

	transport, transportIcon := loc.SubwayStations, "subway_gradient"
	if !loc.IsSubway {
		transport, transportIcon = loc.Roads, "road_gradient"
	}

	infrastructure := make([]inlineIcon, 0, min(len(loc.Infrastructure), infrastructureMax))
	for _, inf := range loc.Infrastructure {
		if len(infrastructure) == infrastructureMax {
			break
		}
		if svg := b.icons.SVG(assets.InfrastructureIcon(inf.Icon)); svg != "" {
			infrastructure = append(infrastructure, inlineIcon{Name: inf.Name, SVG: svg})
		}
	}

	return pongo2.Context{
		"mapSrc":           mapSrc,
		"distance":         presentation.FormatDistance(loc.Distance).String(),
		"transferText":     layout.TransferText(loc.IsSubway),
		"location":         loc.Location,
		"transport":        transport,
		"transportIcon":    transportIcon,
		"descriptionLines": textutil.SplitString(loc.Description, 42),
		"infrastructure":   infrastructure,
	}
}

func (b *Builder) buildingInfoData(info presentation.BuildingDetails) pongo2.Context {
	columns := make([][]characteristicView, 0, 3)
	offset := 0
	for _, n := range layout.SplitColumns(len(info.Characteristics), 3) {
		column := make([]characteristicView, 0, n)
		for _, ch := range info.Characteristics[offset : offset+n] {
			column = append(column, characteristicView{
				Icon:  assets.CharacteristicIcon(ch.Icon),
				Param: ch.Param,
				Value: ch.Value,
			})
		}
		offset += n
		columns = append(columns, column)
	}
	return pongo2.Context{
		"header":      layout.InfoHeader(info.Prefix),
		"keyFeatures": info.KeyFeatures,
		"columns":     columns,
	}
}

// photosData раскладывает загруженные фотографии по страницам так же, как PDF
func (b *Builder) photosData(ctx context.Context, photos []presentation.Photo) pongo2.Context {
	loaded := make([]photoView, 0, len(photos))
	for _, p := range photos {
		if src := b.photo(ctx, p, b.repo.Greyscale); src != "" {
			loaded = append(loaded, photoView{Src: src, Name: p.Name})
		}
	}

	pages := make([]photoPage, 0, len(loaded)/4+1)
	next := 0
	for _, count := range layout.PaginatePhotos(len(loaded)) {
		pages = append(pages, photoPage{Count: count, Photos: loaded[next : next+count]})
		next += count
	}
	return pongo2.Context{"pages": pages}
}

func (b *Builder) areaCommercialData(ctx context.Context, area *presentation.Area) pongo2.Context {
	com := area.Commercial
	photoW := layout.AreaPhotoWidth(area)
	terms := layout.IsTermsLayout(photoW)
	termsW := layout.PageWidth - photoW

	pattern := assets.PatternAreaWide
	if terms {
		pattern = assets.PatternAreaNarrow
	}

	taxLine := ""
	if tax, ok := com.Term(presentation.TermTax); ok && len(tax.Params) > 0 {
		taxLine = tax.Params[0]
	}

	paramsRight := 0.0
	paramsBottom := 117.0 + 20
	if terms {
		paramsRight = termsW
	} else if taxLine != "" {
		paramsBottom += 32
	}

	operationIcon := "sell"
	if com.IsRent() {
		operationIcon = "rent"
	}

	features := make([]string, 0, len(com.Features))
	for _, f := range com.Features {
		features = append(features, strings.ToLower(f))
	}

	params := make([]paramView, 0, len(com.Params))
	for _, p := range com.Params {
		params = append(params, paramView{
			Icon:  assets.ParamIcon(p.Name),
			Value: p.Value,
			Lines: textutil.SplitString(p.Description, 14),
		})
	}

	prices := layout.PriceColumns(com)
	return pongo2.Context{
		"commercial":    com,
		"photo":         b.photo(ctx, area.PrimaryPhoto, true),
		"pattern":       pattern,
		"photoWidth":    photoW,
		"termsLayout":   terms,
		"termsWidth":    termsW,
		"paramsRight":   paramsRight,
		"paramsBottom":  paramsBottom,
		"operationIcon": operationIcon,
		"purposeLines":  textutil.SplitString(com.Purpose, 9),
		"features":      features,
		"stateLines":    textutil.SplitString(com.State, 23),
		"params":        params,
		"taxLine":       taxLine,
		"prices":        prices[:],
	}
}

func (b *Builder) areaSchemaData(ctx context.Context, area *presentation.Area) pongo2.Context {
	return pongo2.Context{
		"floor":  area.Commercial.Floor,
		"schema": b.photo(ctx, area.Schema, false),
	}
}

func (b *Builder) brokerData(context.Context) pongo2.Context {
	name, domain := layout.SplitEmail(b.repo.Broker.Email)
	return pongo2.Context{
		"broker":      b.repo.Broker,
		"fioLines":    textutil.SplitString(b.repo.Broker.FIO, 21),
		"emailName":   name,
		"emailDomain": domain,
	}
}
