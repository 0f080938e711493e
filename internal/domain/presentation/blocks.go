package presentation

import "fmt"

// BlockKind вид инфоблока
type BlockKind string

const (
	BlockHeader           BlockKind = "header"
	BlockBuildingHeader   BlockKind = "building_header"
	BlockBuildingLocation BlockKind = "building_location"
	BlockBuildingInfo     BlockKind = "building_info"
	BlockBuildingPhoto    BlockKind = "building_photo"
	BlockAreaCommercial   BlockKind = "area_commercial"
	BlockAreaPhoto        BlockKind = "area_photo"
	BlockAreaSchema       BlockKind = "area_schema"
	BlockBrokerContacts   BlockKind = "broker_contacts"
)

// BlockKinds все виды инфоблоков в порядке следования в презентации
var BlockKinds = []BlockKind{
	BlockHeader,
	BlockBuildingHeader,
	BlockBuildingLocation,
	BlockBuildingInfo,
	BlockBuildingPhoto,
	BlockAreaCommercial,
	BlockAreaPhoto,
	BlockAreaSchema,
	BlockBrokerContacts,
}

// Valid сообщает, является ли вид инфоблока известным
func (k BlockKind) Valid() bool {
	for _, kind := range BlockKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// ErrorDataType сущность, к которой относится ошибка валидации
type ErrorDataType string

const (
	ErrorDataRealty    ErrorDataType = "realty"
	ErrorDataObject    ErrorDataType = "object"
	ErrorDataOffer     ErrorDataType = "offer"
	ErrorDataBroker    ErrorDataType = "broker"
	ErrorDataAgency    ErrorDataType = "agency"
	ErrorDataInputData ErrorDataType = "inputData"
)

// BlockError ошибка поля входных данных
type BlockError struct {
	DataType ErrorDataType `json:"dataType"`
	Property string        `json:"property"`
	Message  string        `json:"message,omitempty"`
}

func (e BlockError) String() string {
	if e.Message == "" {
		return fmt.Sprintf("%s.%s", e.DataType, e.Property)
	}
	return fmt.Sprintf("%s.%s: %s", e.DataType, e.Property, e.Message)
}

// BlockDescriptor описание одного запрошенного инфоблока.
// Порядок дескрипторов задает порядок страниц презентации
type BlockDescriptor struct {
	BlockID        BlockKind    `json:"blockId"`
	RealtyID       string       `json:"realtyId"`
	RealtyObjectID string       `json:"realtyObjectId"`
	RealtyOfferID  string       `json:"realtyOfferId"`
	IsOptional     bool         `json:"isOptional"`
	Name           string       `json:"name,omitempty"`
	SVG            string       `json:"svg,omitempty"`
	Errors         []BlockError `json:"errors,omitempty"`
}

// HasErrors сообщает, есть ли у блока ошибки валидации
func (b BlockDescriptor) HasErrors() bool {
	return len(b.Errors) > 0
}

// AreaKey ключ помещения в нормализованных данных здания
func (b BlockDescriptor) AreaKey() string {
	return AreaKey(b.RealtyObjectID, b.RealtyOfferID)
}

// MemoKey однозначно идентифицирует вхождение блока
func (b BlockDescriptor) MemoKey() string {
	return fmt.Sprintf("%s|%s|%s|%s", b.BlockID, b.RealtyID, b.RealtyObjectID, b.RealtyOfferID)
}

// AreaKey формирует ключ помещения из id помещения и id предложения
func AreaKey(objectID, offerID string) string {
	return objectID + "_" + offerID
}

// ValidationResult результат валидации списка блоков.
// Failure истинно, если хотя бы у одного блока есть ошибки, либо список блоков пуст
type ValidationResult struct {
	Failure          bool              `json:"failure"`
	BlocksWithErrors []BlockDescriptor `json:"blocksWithErrors"`
}

// Rejected возвращает только блоки с ошибками
func (r ValidationResult) Rejected() []BlockDescriptor {
	rejected := make([]BlockDescriptor, 0)
	for _, b := range r.BlocksWithErrors {
		if b.HasErrors() {
			rejected = append(rejected, b)
		}
	}
	return rejected
}
