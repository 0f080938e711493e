package presentation

import (
	"strconv"

	"presentation-service-go/internal/pkg/textutil"
)

const (
	anonsMinLength     = 50
	anonsMaxLength     = 255
	minPhotos          = 3
	minCharacteristics = 3
)

func notFound(message string) []BlockError {
	return []BlockError{{DataType: ErrorDataInputData, Property: "data", Message: message}}
}

func realtyError(property string) BlockError {
	return BlockError{DataType: ErrorDataRealty, Property: property}
}

func validateHeader(_ BlockDescriptor, req *Request) []BlockError {
	if len(req.Data) == 0 {
		return []BlockError{{DataType: ErrorDataRealty, Property: "data", Message: "Не задано ни одного объекта"}}
	}
	return nil
}

func validateBuildingHeader(b BlockDescriptor, req *Request) []BlockError {
	realty := findRealty(req, b.RealtyID)
	if realty == nil {
		return notFound("ID объекта задано неверно")
	}

	var errs []BlockError
	if realty.Prefix == "" {
		errs = append(errs, realtyError("prefix"))
	}
	if realty.Name == "" {
		errs = append(errs, realtyError("name"))
	}
	errs = append(errs, keyFeatureErrors(realty)...)
	return append(errs, locationErrors(realty)...)
}

func validateBuildingLocation(b BlockDescriptor, req *Request) []BlockError {
	realty := findRealty(req, b.RealtyID)
	if realty == nil {
		return notFound("ID объекта задано неверно")
	}

	var errs []BlockError
	if realty.Address.Lat == 0 {
		errs = append(errs, realtyError("address.lat"))
	}
	if realty.Address.Lng == 0 {
		errs = append(errs, realtyError("address.lng"))
	}

	switch n := textutil.RuneLen(realty.Outer.Anons); {
	case n > anonsMaxLength:
		errs = append(errs, BlockError{DataType: ErrorDataRealty, Property: "outer.anons",
			Message: "слишком длинное описание, должно быть от 50 до 255 символов"})
	case n < anonsMinLength:
		errs = append(errs, BlockError{DataType: ErrorDataRealty, Property: "outer.anons",
			Message: "слишком короткое описание, должно быть от 50 до 255 символов"})
	}

	return append(errs, locationErrors(realty)...)
}

func validateBuildingInfo(b BlockDescriptor, req *Request) []BlockError {
	realty := findRealty(req, b.RealtyID)
	if realty == nil {
		return notFound("ID объекта задано неверно")
	}

	var errs []BlockError
	if realty.Building.Floors == 0 {
		errs = append(errs, realtyError("building.floors"))
	}

	// пустой список характеристик допустим, блок тогда выводит только ключевые показатели
	if n := len(Characteristics(realty)); n > 0 && n < minCharacteristics {
		for _, property := range []string{"inner", "land", "entry", "communicate", "parking", "lift"} {
			errs = append(errs, BlockError{DataType: ErrorDataRealty, Property: property,
				Message: "слишком мало характеристик, должно быть не менее 3"})
		}
	}

	return append(errs, keyFeatureErrors(realty)...)
}

func validateBuildingPhoto(b BlockDescriptor, req *Request) []BlockError {
	realty := findRealty(req, b.RealtyID)
	if realty == nil {
		return notFound("ID объекта задано неверно")
	}
	if len(Photos(realty.Medias, "")) < minPhotos {
		return []BlockError{{DataType: ErrorDataRealty, Property: "medias",
			Message: "слишком мало фото, должно быть не менее 3-х"}}
	}
	return nil
}

func validateAreaCommercial(b BlockDescriptor, req *Request) []BlockError {
	area := findArea(req, b.RealtyID, b.RealtyObjectID)
	offer := findOffer(req, b.RealtyID, b.RealtyObjectID, b.RealtyOfferID)
	if area == nil || offer == nil {
		return notFound("ID помещения или предложения указаны неверно")
	}

	var errs []BlockError
	if offer.Operation != OperationRent && offer.Operation != OperationSell {
		errs = append(errs, BlockError{DataType: ErrorDataOffer, Property: "operation"})
	}
	switch area.Info.SpaceLayout {
	case "mixed", "open", "rooms":
	default:
		errs = append(errs, BlockError{DataType: ErrorDataObject, Property: "info.spaceLayout"})
	}
	if area.Info.Floor == nil {
		errs = append(errs, BlockError{DataType: ErrorDataObject, Property: "info.floor"})
	}
	if offer.ForCustomer.PriceMeter == 0 {
		errs = append(errs, BlockError{DataType: ErrorDataOffer, Property: "forCustomer.priceMeter"})
	}
	if area.Info.SquareOffer == 0 {
		errs = append(errs, BlockError{DataType: ErrorDataObject, Property: "info.squareOffer"})
	}
	switch area.Info.State {
	case "unknown", "clean", "cosmetic", "ready":
	default:
		errs = append(errs, BlockError{DataType: ErrorDataObject, Property: "info.state"})
	}
	return errs
}

func validateAreaPhoto(b BlockDescriptor, req *Request) []BlockError {
	area := findArea(req, b.RealtyID, b.RealtyObjectID)
	if area == nil {
		return notFound("ID помещения задано неверно")
	}
	if len(Photos(area.Medias, "")) < minPhotos {
		return []BlockError{{DataType: ErrorDataObject, Property: "medias",
			Message: "слишком мало фото, должно быть не менее 3-х"}}
	}
	return nil
}

func validateAreaSchema(b BlockDescriptor, req *Request) []BlockError {
	area := findArea(req, b.RealtyID, b.RealtyObjectID)
	if area == nil {
		return notFound("ID помещения задано неверно")
	}
	if SchemaImage(area.Medias, "").Empty() {
		return []BlockError{{DataType: ErrorDataObject, Property: "medias", Message: "схема помещения не задана"}}
	}
	return nil
}

func validateBrokerContacts(_ BlockDescriptor, req *Request) []BlockError {
	if req.Broker == nil {
		return []BlockError{{DataType: ErrorDataBroker, Property: "", Message: "Данные не переданы"}}
	}
	return nil
}

func keyFeatureErrors(realty *Realty) []BlockError {
	var errs []BlockError
	if realty.BuildingClassLetter == "" {
		errs = append(errs, realtyError("buildingClassLetter"))
	}
	if realty.TaxSvcNumber == 0 {
		errs = append(errs, realtyError("taxSvcNumber"))
	}
	if realty.Building.SquareTotal == 0 {
		errs = append(errs, realtyError("building.squareTotal"))
	}
	if realty.Building.BuildYear == 0 {
		errs = append(errs, realtyError("building.buildYear"))
	}
	return errs
}

func locationErrors(realty *Realty) []BlockError {
	addr := realty.Address
	var errs []BlockError

	if addr.FullAddress == "" {
		errs = append(errs, realtyError("address.fullAddress"))
	}
	if len(addr.SubwayStations) == 0 && len(addr.Highways) == 0 {
		errs = append(errs, BlockError{DataType: ErrorDataRealty, Property: "address.highways",
			Message: "Если не заданы станции метро, то должен быть задан хотя бы один проспект"})
	}

	for i, station := range addr.SubwayStations {
		prefix := "address.subwayStations[" + strconv.Itoa(i) + "]."
		if station.Name == "" {
			errs = append(errs, realtyError(prefix+"name"))
		}
		if station.LineName == "" {
			errs = append(errs, realtyError(prefix+"lineName"))
		}
		if station.Distance == 0 {
			errs = append(errs, realtyError(prefix+"distance"))
		}
	}

	for i, highway := range addr.Highways {
		prefix := "address.highways[" + strconv.Itoa(i) + "]."
		if highway.Name == "" {
			errs = append(errs, realtyError(prefix+"name"))
		}
		if highway.Distance == 0 {
			errs = append(errs, realtyError(prefix+"distance"))
		}
	}
	return errs
}
