package presentation

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"presentation-service-go/internal/pkg/textutil"
)

// Размеры главного фото помещения на странице коммерческого предложения
const (
	AreaPhotoNarrowWidth = 526
	AreaPhotoWideWidth   = 842
	AreaPhotoHeight      = 595.28
)

// PresentationName название презентации в заголовке
const PresentationName = "коммерческой"

// Photo изображение для вывода
type Photo struct {
	Name   string
	URL    string
	Width  float64
	Height float64
}

// Empty сообщает, что изображение не задано
func (p Photo) Empty() bool {
	return p.URL == ""
}

// Feature ключевой показатель: крупное значение и подпись под ним
type Feature struct {
	Name  string
	Desc  string
	Order int
}

// Characteristic характеристика здания с иконкой
type Characteristic struct {
	Icon  string
	Param string
	Value string
}

// Infrastructure объект инфраструктуры рядом со зданием
type Infrastructure struct {
	Key  string
	Icon string
	Name string
}

// BuildingHeader данные блока заголовка здания
type BuildingHeader struct {
	Prefix   string
	Name     string
	Features []Feature
}

// BuildingLocation данные блока расположения здания
type BuildingLocation struct {
	Location       string
	IsSubway       bool
	SubwayStations string
	Roads          string
	Distance       float64
	Description    string
	Infrastructure []Infrastructure
	Lat            float64
	Lng            float64
}

// BuildingDetails данные блока информации о здании
type BuildingDetails struct {
	Prefix          string
	KeyFeatures     []Feature
	Characteristics []Characteristic
}

// Building нормализованные данные здания
type Building struct {
	ID           string
	Header       BuildingHeader
	Location     BuildingLocation
	Info         BuildingDetails
	Photos       []Photo
	PrimaryPhoto Photo
	Areas        map[string]*Area
}

// CommercialTerm коммерческое условие: название и значения
type CommercialTerm struct {
	Name   string
	Params []string
}

// Параметры помещения
const (
	ParamSquare      = "square"
	ParamFloorHeight = "floorHeight"
	ParamPower       = "power"
)

// CommercialParam параметр помещения
type CommercialParam struct {
	Name        string
	Value       string
	Description string
	Position    int
}

// Названия коммерческих условий
const (
	TermTax          = "Тип налогообложения"
	TermIncludes     = "В стоимость включено"
	TermExcludes     = "Оплачивается отдельно"
	TermDeposit      = "Обеспечительный платеж"
	TermRentDuration = "Срок аренды"
	TermContract     = "Тип договора"
)

// Commercial данные коммерческого предложения помещения
type Commercial struct {
	IsNdsInclude   bool
	Operation      Operation
	OperationType  string
	Purpose        string
	Layout         string
	Terms          []CommercialTerm
	Params         []CommercialParam
	Features       []string
	State          string
	OccupiedState  string
	Floor          string
	PricePerMonth  string
	PriceTotal     string
	PricePerSquare string
}

// Term возвращает условие по названию
func (c Commercial) Term(name string) (CommercialTerm, bool) {
	for _, t := range c.Terms {
		if t.Name == name {
			return t, true
		}
	}
	return CommercialTerm{}, false
}

// IsRent сообщает, что предложение об аренде
func (c Commercial) IsRent() bool {
	return c.Operation == OperationRent
}

// Area нормализованные данные помещения в рамках одного предложения
type Area struct {
	ObjectID     string
	OfferID      string
	Commercial   Commercial
	Photos       []Photo
	PrimaryPhoto Photo
	Schema       Photo
}

// BrokerCard данные блока контактов брокера
type BrokerCard struct {
	AvatarURL string
	FIO       string
	Email     string
	Phone     string
	Desc      string
}

// Repository проекции входных данных, готовые к выводу. Строится один раз на запрос
type Repository struct {
	Name       string
	LogoLink   string
	Greyscale  bool
	NdsInclude bool
	Broker     BrokerCard
	Buildings  map[string]*Building
}

// NewRepository нормализует данные запроса. Адреса медиафайлов строятся от mediaBaseURL
func NewRepository(req *Request, mediaBaseURL string) *Repository {
	repo := &Repository{
		Name:      PresentationName,
		Buildings: make(map[string]*Building),
	}
	if req == nil {
		return repo
	}

	repo.Greyscale = req.IsGreyscalePhotos
	repo.NdsInclude = req.IsNdsInclude
	if req.Broker != nil {
		repo.Broker = BrokerCard{
			FIO:   req.Broker.Name,
			Email: req.Broker.Email,
			Phone: req.Broker.Phone,
			Desc:  req.Broker.Description,
		}
	}

	base := strings.TrimRight(mediaBaseURL, "/")
	for i := range req.Data {
		realty := &req.Data[i]
		repo.Buildings[realty.ID] = newBuilding(realty, req.IsNdsInclude, base)
	}
	return repo
}

// Building возвращает здание по id
func (r *Repository) Building(id string) (*Building, bool) {
	b, ok := r.Buildings[id]
	return b, ok
}

// Area возвращает помещение здания по ключу <objectId>_<offerId>
func (r *Repository) Area(buildingID, key string) (*Area, bool) {
	b, ok := r.Buildings[buildingID]
	if !ok {
		return nil, false
	}
	a, ok := b.Areas[key]
	return a, ok
}

func newBuilding(realty *Realty, ndsInclude bool, mediaBase string) *Building {
	photos := Photos(realty.Medias, mediaBase)
	b := &Building{
		ID: realty.ID,
		Header: BuildingHeader{
			Prefix:   realty.Prefix,
			Name:     realty.Name,
			Features: headerFeatures(realty),
		},
		Location: buildingLocation(realty),
		Info: BuildingDetails{
			Prefix:          realty.Prefix,
			KeyFeatures:     KeyFeatures(realty),
			Characteristics: Characteristics(realty),
		},
		Photos:       photos,
		PrimaryPhoto: primaryPhoto(realty.Medias, photos, mediaBase),
		Areas:        make(map[string]*Area),
	}

	for i := range realty.RealtyObjects {
		object := &realty.RealtyObjects[i]
		for j := range object.RealtyOffers {
			offer := &object.RealtyOffers[j]
			b.Areas[AreaKey(object.ID, offer.ID)] = newArea(object, offer, ndsInclude, mediaBase)
		}
		if len(object.RealtyOffers) == 0 {
			b.Areas[AreaKey(object.ID, "")] = newArea(object, nil, ndsInclude, mediaBase)
		}
	}
	return b
}

func newArea(object *RealtyObject, offer *RealtyOffer, ndsInclude bool, mediaBase string) *Area {
	photos := Photos(object.Medias, mediaBase)
	area := &Area{
		ObjectID:     object.ID,
		Commercial:   commercial(object, offer, ndsInclude),
		Photos:       photos,
		PrimaryPhoto: primaryPhoto(object.Medias, photos, mediaBase),
		Schema:       SchemaImage(object.Medias, mediaBase),
	}
	if offer != nil {
		area.OfferID = offer.ID
	}

	area.PrimaryPhoto.Height = AreaPhotoHeight
	area.PrimaryPhoto.Width = AreaPhotoWideWidth
	if len(area.Commercial.Terms) > 1 {
		area.PrimaryPhoto.Width = AreaPhotoNarrowWidth
	}
	return area
}

// Photos отбирает фотографии (основные и обычные изображения), упорядоченные по order
func Photos(medias []Media, mediaBase string) []Photo {
	selected := make([]Media, 0, len(medias))
	for _, m := range medias {
		if m.Hash != "" && (m.Type == MediaMainImage || m.Type == MediaCommonImage) {
			selected = append(selected, m)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool { return selected[i].Order < selected[j].Order })

	photos := make([]Photo, 0, len(selected))
	for _, m := range selected {
		photos = append(photos, toPhoto(m, mediaBase))
	}
	return photos
}

// SchemaImage возвращает первую по order планировку или пустое изображение
func SchemaImage(medias []Media, mediaBase string) Photo {
	var schema *Media
	for i := range medias {
		m := &medias[i]
		if m.Type != MediaPlanImage || m.Hash == "" {
			continue
		}
		if schema == nil || m.Order < schema.Order {
			schema = m
		}
	}
	if schema == nil {
		return Photo{}
	}
	return toPhoto(*schema, mediaBase)
}

func primaryPhoto(medias []Media, photos []Photo, mediaBase string) Photo {
	for _, m := range medias {
		if m.IsPrimary && m.Hash != "" && (m.Type == MediaMainImage || m.Type == MediaCommonImage) {
			return toPhoto(m, mediaBase)
		}
	}
	if len(photos) > 0 {
		return photos[0]
	}
	return Photo{}
}

func toPhoto(m Media, mediaBase string) Photo {
	name := m.Description
	if name == "" {
		name = m.Name
	}
	return Photo{Name: name, URL: mediaBase + "/" + m.Hash}
}

func headerFeatures(realty *Realty) []Feature {
	features := make([]Feature, 0, 3)
	if realty.BuildingClassLetter != "" {
		features = append(features, Feature{Name: realty.BuildingClassLetter, Desc: "Класс здания"})
	}
	if realty.Building.SquareTotal > 0 {
		features = append(features, Feature{Name: FormatNumber(realty.Building.SquareTotal, "м²"), Desc: "Общая площадь"})
	}
	if realty.Building.Floors > 0 {
		features = append(features, Feature{Name: strconv.Itoa(realty.Building.Floors), Desc: "Этажность"})
	}
	for i := range features {
		features[i].Order = i
	}
	return features
}

// KeyFeatures ключевые показатели здания для блока информации
func KeyFeatures(realty *Realty) []Feature {
	features := make([]Feature, 0, 4)
	if realty.BuildingClassLetter != "" {
		features = append(features, Feature{Name: realty.BuildingClassLetter, Desc: "Класс здания"})
	}
	if realty.TaxSvcNumber != 0 {
		features = append(features, Feature{Name: "№ " + strconv.Itoa(realty.TaxSvcNumber), Desc: "ИФНС"})
	}
	if realty.Building.SquareTotal > 0 {
		features = append(features, Feature{Name: FormatNumber(realty.Building.SquareTotal, "м²"), Desc: "Общая площадь"})
	}
	if realty.Building.BuildYear > 0 {
		features = append(features, Feature{Name: strconv.Itoa(realty.Building.BuildYear), Desc: "Год постройки"})
	}
	for i := range features {
		features[i].Order = i
	}
	return features
}

// Characteristics собирает характеристики здания из инженерии, участка, входной группы,
// связи, парковки и лифтов. Пустые разделы пропускаются
func Characteristics(realty *Realty) []Characteristic {
	var out []Characteristic
	add := func(icon, param, value string) {
		if value != "" {
			out = append(out, Characteristic{Icon: icon, Param: param, Value: value})
		}
	}

	inner := realty.Inner
	if inner.CeilingHeight > 0 {
		add("ceiling", "Высота потолков", FormatNumber(inner.CeilingHeight, "м"))
	}
	if inner.PowerAmount > 0 {
		value := FormatNumber(inner.PowerAmount, "кВт")
		if label, ok := powerTypeLabels[inner.PowerType]; ok {
			value += ", " + label
		}
		add("power", "Электрическая мощность", value)
	}
	add("ventilation", "Вентиляция", ventilationLabels[inner.Ventilation])
	add("conditioning", "Кондиционирование", conditioningLabels[inner.AirConditioning])
	add("heating", "Отопление", supplyLabels[inner.Heating])
	add("fire", "Пожарная безопасность", fireSafetyLabels[inner.FireSafety])

	if realty.Land.Area > 0 {
		add("land", "Земельный участок", FormatNumber(realty.Land.Area, "га"))
	}

	if entries := labelList(realty.Entry.Type, entryLabels); len(entries) > 0 {
		add("entry", "Охрана и доступ", textutil.Capitalize(strings.Join(entries, ", ")))
	}

	if c := realty.Communicate; c.PhoneProviders > 0 || c.InternetProviders > 0 {
		parts := make([]string, 0, 2)
		if c.InternetProviders > 0 {
			parts = append(parts, "интернет-провайдеров: "+strconv.Itoa(c.InternetProviders))
		}
		if c.PhoneProviders > 0 {
			parts = append(parts, "операторов связи: "+strconv.Itoa(c.PhoneProviders))
		}
		add("communicate", "Телекоммуникации", textutil.Capitalize(strings.Join(parts, ", ")))
	}

	if p := realty.Parking; p.Type != "" || p.PlacesTotal > 0 {
		value := parkingLabels[p.Type]
		if p.PlacesTotal > 0 {
			places := "на " + strconv.Itoa(p.PlacesTotal) + " м/м"
			if value == "" {
				value = textutil.Capitalize(places)
			} else {
				value += " " + places
			}
		}
		add("parking", "Парковка", value)
	}

	if l := realty.Lift; l.PassengerLifts > 0 || l.FreightLifts > 0 {
		parts := make([]string, 0, 2)
		if l.PassengerLifts > 0 {
			parts = append(parts, strconv.Itoa(l.PassengerLifts)+" пассажирских")
		}
		if l.FreightLifts > 0 {
			parts = append(parts, strconv.Itoa(l.FreightLifts)+" грузовых")
		}
		add("lift", "Лифты", strings.Join(parts, ", "))
	}

	return out
}

func buildingLocation(realty *Realty) BuildingLocation {
	addr := realty.Address
	loc := BuildingLocation{
		Location:       addr.FullAddress,
		IsSubway:       len(addr.SubwayStations) > 0,
		Description:    realty.Outer.Anons,
		Infrastructure: InfrastructureList(realty.Outer.Infrastructure),
		Lat:            addr.Lat,
		Lng:            addr.Lng,
	}

	stations := make([]string, 0, len(addr.SubwayStations))
	for _, s := range addr.SubwayStations {
		if s.Name != "" {
			stations = append(stations, "м. "+s.Name)
		}
	}
	loc.SubwayStations = strings.Join(stations, ", ")

	roads := make([]string, 0, len(addr.Highways))
	for _, h := range addr.Highways {
		if h.Name != "" {
			roads = append(roads, h.Name)
		}
	}
	loc.Roads = strings.Join(roads, ", ")

	loc.Distance = NearestDistance(addr)
	return loc
}

// NearestDistance расстояние до ближайшей станции метро, а без метро до ближайшей магистрали
func NearestDistance(addr Address) float64 {
	nearest := math.Inf(1)
	if len(addr.SubwayStations) > 0 {
		for _, s := range addr.SubwayStations {
			nearest = math.Min(nearest, s.Distance)
		}
	} else {
		for _, h := range addr.Highways {
			nearest = math.Min(nearest, h.Distance)
		}
	}
	if math.IsInf(nearest, 1) {
		return 0
	}
	return nearest
}

// InfrastructureList разбирает список инфраструктуры, неизвестные и повторные значения пропускаются
func InfrastructureList(list string) []Infrastructure {
	keys := splitList(list)
	out := make([]Infrastructure, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		group, ok := infrastructureGroups[key]
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Infrastructure{Key: key, Icon: group.Icon, Name: group.Name})
	}
	return out
}

func commercial(object *RealtyObject, offer *RealtyOffer, ndsInclude bool) Commercial {
	info := object.Info
	c := Commercial{
		IsNdsInclude:  ndsInclude,
		Purpose:       purposeLabels[info.CurrentPurpose],
		Layout:        layoutLabels[info.SpaceLayout],
		Features:      labelList(info.Features, areaFeatureLabels),
		State:         stateLabels[info.State],
		OccupiedState: OccupiedState(object.Lessee),
		Params:        commercialParams(info),
	}
	if info.Floor != nil {
		c.Floor = strconv.Itoa(*info.Floor)
	}
	if offer == nil {
		return c
	}

	c.Operation = offer.Operation
	c.OperationType = operationLabels[offer.Operation]
	c.Terms = CommercialTerms(offer, ndsInclude)

	customer := offer.ForCustomer
	square := info.SquareOffer
	switch offer.Operation {
	case OperationRent:
		c.PricePerSquare = FormatNumber(customer.PriceMeter, "")
		c.PricePerMonth = FormatNumber(customer.PriceMeter*square/12, "")
		c.PriceTotal = FormatNumber(customer.PriceMeter*square, "")
	case OperationSell:
		c.PricePerSquare = FormatNumber(customer.PriceMeter, "")
		c.PriceTotal = FormatNumber(customer.PriceMeter*square, "")
	}
	return c
}

func commercialParams(info ObjectInfo) []CommercialParam {
	params := make([]CommercialParam, 0, 3)
	if info.SquareOffer > 0 {
		params = append(params, CommercialParam{Name: ParamSquare, Value: FormatNumber(info.SquareOffer, "м²"), Description: "Площадь помещения"})
	}
	if info.FloorsHeight > 0 {
		params = append(params, CommercialParam{Name: ParamFloorHeight, Value: FormatNumber(info.FloorsHeight, "м"), Description: "Высота потолков"})
	}
	if info.Power > 0 {
		params = append(params, CommercialParam{Name: ParamPower, Value: FormatNumber(info.Power, "кВт"), Description: "Электрическая мощность"})
	}
	for i := range params {
		params[i].Position = i
	}
	return params
}

// CommercialTerms коммерческие условия предложения. Условие о налогообложении есть всегда
func CommercialTerms(offer *RealtyOffer, ndsInclude bool) []CommercialTerm {
	customer := offer.ForCustomer
	terms := []CommercialTerm{{Name: TermTax, Params: []string{taxText(customer.TaxType, ndsInclude)}}}

	if includes := labelList(customer.PriceIncludes, priceAdditionalLabels); len(includes) > 0 {
		terms = append(terms, CommercialTerm{Name: TermIncludes, Params: includes})
	}
	if excludes := labelList(customer.PriceExcludes, priceAdditionalLabels); len(excludes) > 0 {
		terms = append(terms, CommercialTerm{Name: TermExcludes, Params: excludes})
	}
	if deposit := depositText(customer); deposit != "" {
		terms = append(terms, CommercialTerm{Name: TermDeposit, Params: []string{deposit}})
	}
	if offer.Operation == OperationRent {
		if duration := rentDurationText(customer); duration != "" {
			terms = append(terms, CommercialTerm{Name: TermRentDuration, Params: []string{duration}})
		}
	}
	if contract, ok := contractTypeLabels[customer.OfferContractType]; ok {
		terms = append(terms, CommercialTerm{Name: TermContract, Params: []string{contract}})
	}
	return terms
}

func taxText(taxType string, ndsInclude bool) string {
	switch {
	case taxType == "usn":
		return "УСН, НДС не облагается"
	case ndsInclude:
		return "Ставка включает НДС 20%"
	default:
		return "Ставка не включает НДС 20%"
	}
}

func depositText(c Customer) string {
	if c.DepositeValue <= 0 {
		return ""
	}
	switch c.DepositeType {
	case "amount":
		return FormatNumber(c.DepositeValue, "₽")
	case "month":
		return FormatNumber(c.DepositeValue, "мес.")
	case "percent":
		return FormatNumber(c.DepositeValue, "%")
	}
	return ""
}

func rentDurationText(c Customer) string {
	switch c.RentDurationType {
	case "days":
		if c.RentDurationValue > 0 {
			return FormatNumber(c.RentDurationValue, "дн.")
		}
	case "months":
		if c.RentDurationValue > 0 {
			return FormatNumber(c.RentDurationValue, "мес.")
		}
	case "years":
		if c.RentDurationValue > 0 {
			return FormatNumber(c.RentDurationValue, "г.")
		}
	case "tillDate":
		if date, ok := FormatDate(c.RentDurationDate); ok {
			return "до " + date
		}
	}
	return ""
}

// OccupiedState состояние занятости помещения
func OccupiedState(l Lessee) string {
	if !l.Occupied {
		return "Свободно"
	}
	if date, ok := FormatDate(l.ReleaseAt); ok {
		return "Занято до " + date
	}
	return "Занято"
}
