package presentation

// DataType тип выборки, из которой собирается презентация
type DataType string

const (
	DataTypeSingleOffer      DataType = "singleOffer"
	DataTypeMultipleOffers   DataType = "multipleOffers"
	DataTypeSingleObject     DataType = "singleObject"
	DataTypeMultipleObjects  DataType = "multipleObjects"
	DataTypeSingleRealty     DataType = "singleRealty"
	DataTypeMultipleRealties DataType = "multipleRealties"
)

// Request входные данные презентации. После получения не изменяется
type Request struct {
	PresentationID    string            `json:"presentationId"`
	DataType          DataType          `json:"dataType"`
	TemplateID        string            `json:"templateId"`
	IsGreyscalePhotos bool              `json:"isGreyscalePhotos"`
	IsNdsInclude      bool              `json:"isNdsInclude"`
	Data              []Realty          `json:"data,omitempty"`
	Broker            *Broker           `json:"broker,omitempty"`
	Blocks            []BlockDescriptor `json:"blocks,omitempty"`
}

// Broker контакты брокера
type Broker struct {
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Realty здание
type Realty struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Prefix              string         `json:"prefix"`
	Markets             string         `json:"markets,omitempty"`
	RealtyType          string         `json:"realtyType,omitempty"`
	BuildingType        string         `json:"buildingType,omitempty"`
	TaxSvcNumber        int            `json:"taxSvcNumber"`
	BuildingClass       int            `json:"buildingClass,omitempty"`
	BuildingClassLetter string         `json:"buildingClassLetter"`
	Land                Land           `json:"land"`
	Building            BuildingInfo   `json:"building"`
	Inner               Inner          `json:"inner"`
	Outer               Outer          `json:"outer"`
	Communicate         Communicate    `json:"communicate"`
	Lift                Lift           `json:"lift"`
	Parking             Parking        `json:"parking"`
	Entry               Entry          `json:"entry"`
	Features            Features       `json:"features"`
	Address             Address        `json:"address"`
	Medias              []Media        `json:"medias"`
	RealtyObjects       []RealtyObject `json:"realtyObjects"`
}

// Land земельный участок
type Land struct {
	Area        float64 `json:"area"`
	Category    string  `json:"category,omitempty"`
	Purpose     string  `json:"purpose,omitempty"`
	Electricity string  `json:"electricity,omitempty"`
	Gas         string  `json:"gas,omitempty"`
	Sewerages   string  `json:"sewerages,omitempty"`
	WaterSupply string  `json:"watersupply,omitempty"`
	EntryWays   string  `json:"entryWays,omitempty"`
	Note        string  `json:"note,omitempty"`
}

// BuildingInfo общие сведения о здании
type BuildingInfo struct {
	Status        string  `json:"status,omitempty"`
	BuildYear     int     `json:"buildYear,omitempty"`
	ReBuildYear   int     `json:"reBuildYear,omitempty"`
	SquareTotal   float64 `json:"squareTotal,omitempty"`
	SquareUsefull float64 `json:"squareUsefull,omitempty"`
	Floors        int     `json:"floors,omitempty"`
	Material      string  `json:"material,omitempty"`
	Note          string  `json:"note,omitempty"`
}

// Inner инженерия здания
type Inner struct {
	CeilingHeight          float64 `json:"ceilingHeight,omitempty"`
	FloorLoad              float64 `json:"floorLoad,omitempty"`
	PowerType              string  `json:"powerType,omitempty"`
	PowerAmount            float64 `json:"powerAmount,omitempty"`
	PowerAmountPerMeter    float64 `json:"powerAmountPerMeter,omitempty"`
	Ventilation            string  `json:"ventilation,omitempty"`
	AirConditioning        string  `json:"airConditioning,omitempty"`
	FireSafety             string  `json:"fireSafety,omitempty"`
	AutoFireFightingSystem string  `json:"autoFireFightingSystem,omitempty"`
	Heating                string  `json:"heating,omitempty"`
	WaterSupply            string  `json:"waterSupply,omitempty"`
	HotWater               string  `json:"hotWater,omitempty"`
	Note                   string  `json:"note,omitempty"`
}

// Outer территория и окружение
type Outer struct {
	TerritoryArea  float64 `json:"territoryArea,omitempty"`
	Infrastructure string  `json:"infrastructure,omitempty"`
	Note           string  `json:"note,omitempty"`
	Anons          string  `json:"anons"`
}

// Communicate связь
type Communicate struct {
	PhoneProviders    int    `json:"phoneProviders,omitempty"`
	InternetProviders int    `json:"internetProviders,omitempty"`
	Note              string `json:"note,omitempty"`
	Anons             string `json:"anons,omitempty"`
}

// Lift лифты
type Lift struct {
	Type                 string  `json:"type,omitempty"`
	PassengerLifts       int     `json:"passengerLifts,omitempty"`
	FreightLifts         int     `json:"freightLifts,omitempty"`
	PassengerWaitingTime float64 `json:"passengerWaitingTime,omitempty"`
	FreightTonnage       float64 `json:"freightTonnage,omitempty"`
	Note                 string  `json:"note,omitempty"`
	Anons                string  `json:"anons,omitempty"`
}

// Parking парковка
type Parking struct {
	Type        string `json:"type,omitempty"`
	PlacesTotal int    `json:"placesTotal,omitempty"`
	Note        string `json:"note,omitempty"`
	Anons       string `json:"anons,omitempty"`
}

// Entry вход и охрана
type Entry struct {
	Type  string `json:"type,omitempty"`
	Note  string `json:"note,omitempty"`
	Anons string `json:"anons,omitempty"`
}

// Features дополнительные услуги здания
type Features struct {
	Type  string `json:"type,omitempty"`
	Note  string `json:"note,omitempty"`
	Anons string `json:"anons,omitempty"`
}

// Address адрес и окружение здания
type Address struct {
	ID             string          `json:"id,omitempty"`
	Lat            float64         `json:"lat"`
	Lng            float64         `json:"lng"`
	Route          string          `json:"route,omitempty"`
	FullAddress    string          `json:"fullAddress,omitempty"`
	SubwayStations []SubwayStation `json:"subwayStations"`
	Highways       []Highway       `json:"highways"`
}

// SubwayStation станция метро рядом со зданием
type SubwayStation struct {
	ID         string  `json:"id,omitempty"`
	Name       string  `json:"name"`
	LineID     string  `json:"lineId,omitempty"`
	LineName   string  `json:"lineName"`
	LineNumber string  `json:"lineNumber,omitempty"`
	Distance   float64 `json:"distance"`
}

// Highway шоссе или проспект рядом со зданием
type Highway struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name,omitempty"`
	Prefix   string  `json:"prefix,omitempty"`
	Lat      float64 `json:"lat,omitempty"`
	Lng      float64 `json:"lng,omitempty"`
	Distance float64 `json:"distance,omitempty"`
}

// MediaType тип медиафайла
type MediaType string

const (
	MediaMainImage   MediaType = "mainImage"
	MediaCommonImage MediaType = "commonImage"
	MediaPlanImage   MediaType = "planImage"
)

// Media медиафайл сущности
type Media struct {
	Hash        string    `json:"hash"`
	Type        MediaType `json:"type"`
	GroupName   string    `json:"groupName,omitempty"`
	GroupID     string    `json:"groupId,omitempty"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
	IsPrimary   bool      `json:"isPrimary"`
}

// RealtyObject помещение в здании
type RealtyObject struct {
	ID           string        `json:"id"`
	WebID        int           `json:"webId,omitempty"`
	Markets      string        `json:"markets,omitempty"`
	Info         ObjectInfo    `json:"info"`
	Lessee       Lessee        `json:"lessee"`
	Medias       []Media       `json:"medias"`
	RealtyOffers []RealtyOffer `json:"realtyOffers"`
}

// ObjectInfo характеристики помещения
type ObjectInfo struct {
	Features       string  `json:"features,omitempty"`
	SquareTotal    float64 `json:"squareTotal,omitempty"`
	SquareOffer    float64 `json:"squareOffer,omitempty"`
	SquareMin      float64 `json:"squareMin,omitempty"`
	Floor          *int    `json:"floor,omitempty"`
	FloorsCount    int     `json:"floorsCount,omitempty"`
	RoomsCount     int     `json:"roomsCount,omitempty"`
	FloorsHeight   float64 `json:"floorsHeight,omitempty"`
	State          string  `json:"state,omitempty"`
	SpaceLayout    string  `json:"spaceLayout,omitempty"`
	Purposes       string  `json:"purposes,omitempty"`
	CurrentPurpose string  `json:"currentPurpose,omitempty"`
	Power          float64 `json:"power,omitempty"`
	Note           string  `json:"note,omitempty"`
}

// Lessee арендатор помещения
type Lessee struct {
	Occupied     bool   `json:"occupied"`
	OccupiedAt   string `json:"occupiedAt,omitempty"`
	ReleaseAt    string `json:"releaseAt,omitempty"`
	LongDuration bool   `json:"longDuration,omitempty"`
	CompanyName  string `json:"companyName,omitempty"`
}

// Operation тип сделки
type Operation string

const (
	OperationNone Operation = "none"
	OperationRent Operation = "rent"
	OperationSell Operation = "sell"
)

// RealtyOffer коммерческое предложение по помещению
type RealtyOffer struct {
	ID          string    `json:"id"`
	Status      string    `json:"status,omitempty"`
	ObjectID    string    `json:"objectId"`
	Operation   Operation `json:"operation"`
	Market      string    `json:"market,omitempty"`
	ForCustomer Customer  `json:"forCustomer"`
}

// Customer условия для клиента
type Customer struct {
	TaxType           string  `json:"taxType,omitempty"`
	Boma              float64 `json:"boma,omitempty"`
	PriceMeter        float64 `json:"priceMeter,omitempty"`
	PriceIncludes     string  `json:"priceIncludes,omitempty"`
	PriceExcludes     string  `json:"priceExcludes,omitempty"`
	OfferContractType string  `json:"offerContractType,omitempty"`
	DepositeValue     float64 `json:"depositeValue,omitempty"`
	DepositeType      string  `json:"depositeType,omitempty"`
	RentDurationValue float64 `json:"rentDurationValue,omitempty"`
	RentDurationType  string  `json:"rentDurationType,omitempty"`
	RentDurationDate  string  `json:"rentDurationDate,omitempty"`
	Note              string  `json:"note,omitempty"`
}
