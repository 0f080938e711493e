// Package presentationtest содержит заполненные запросы для тестов пакетов, строящих презентацию
package presentationtest

import "presentation-service-go/internal/domain/presentation"

// Идентификаторы сущностей в Request
const (
	RealtyID = "realty-1"
	ObjectID = "object-1"
	OfferID  = "offer-1"
)

// Anons описание длиной от 50 до 255 символов
const Anons = "Современный бизнес-центр в пяти минутах ходьбы от метро, с собственной парковкой и круглосуточной охраной."

func intPtr(v int) *int { return &v }

// Request возвращает корректный запрос с одним зданием, одним помещением и одним предложением аренды.
// Каждый вызов возвращает новый экземпляр
func Request() *presentation.Request {
	return &presentation.Request{
		PresentationID: "presentation-1",
		DataType:       presentation.DataTypeSingleOffer,
		TemplateID:     "real_estate_offer_template",
		IsNdsInclude:   true,
		Broker: &presentation.Broker{
			Phone:       "+7 (495) 123-45-67",
			Email:       "broker@example.com",
			Name:        "Иван Петров",
			Description: "Ведущий брокер отдела коммерческой недвижимости",
		},
		Data: []presentation.Realty{{
			ID:                  RealtyID,
			Name:                "Белая площадь",
			Prefix:              "Бизнес-центр",
			TaxSvcNumber:        10,
			BuildingClassLetter: "A",
			Building: presentation.BuildingInfo{
				BuildYear:   2009,
				SquareTotal: 72000,
				Floors:      18,
			},
			Land: presentation.Land{Area: 1.5},
			Inner: presentation.Inner{
				CeilingHeight:   3.6,
				PowerAmount:     1200,
				PowerType:       "central",
				Ventilation:     "supplyExhaust",
				AirConditioning: "chillerFancoil",
				Heating:         "central",
				FireSafety:      "autoFireFightingSystem",
			},
			Outer: presentation.Outer{
				Anons:          Anons,
				Infrastructure: "cafe,restaurant,bankomat,fitnes,park",
			},
			Entry:   presentation.Entry{Type: "reception,security,video"},
			Parking: presentation.Parking{Type: "underground", PlacesTotal: 500},
			Lift:    presentation.Lift{PassengerLifts: 12, FreightLifts: 2},
			Address: presentation.Address{
				Lat:         55.777,
				Lng:         37.581,
				FullAddress: "Москва, ул. Лесная, д. 7",
				SubwayStations: []presentation.SubwayStation{
					{Name: "Белорусская", LineName: "Кольцевая", Distance: 260},
					{Name: "Менделеевская", LineName: "Серпуховско-Тимирязевская", Distance: 1260},
				},
				Highways: []presentation.Highway{{Name: "Ленинградский проспект", Distance: 900}},
			},
			Medias: []presentation.Media{
				{Hash: "b-photo-2", Type: presentation.MediaCommonImage, Description: "Холл", Order: 2},
				{Hash: "b-photo-1", Type: presentation.MediaMainImage, Description: "Фасад", Order: 1, IsPrimary: true},
				{Hash: "b-photo-3", Type: presentation.MediaCommonImage, Description: "Вход", Order: 3},
			},
			RealtyObjects: []presentation.RealtyObject{{
				ID: ObjectID,
				Info: presentation.ObjectInfo{
					Features:       "ownEntrance,loggia",
					SquareOffer:    240,
					Floor:          intPtr(5),
					FloorsHeight:   3.2,
					State:          "ready",
					SpaceLayout:    "open",
					CurrentPurpose: "office",
					Power:          40,
				},
				Lessee: presentation.Lessee{Occupied: true, ReleaseAt: "2026-03-01T00:00:00Z"},
				Medias: []presentation.Media{
					{Hash: "a-photo-1", Type: presentation.MediaMainImage, Description: "Опенспейс", Order: 1},
					{Hash: "a-photo-2", Type: presentation.MediaCommonImage, Description: "Переговорная", Order: 2},
					{Hash: "a-photo-3", Type: presentation.MediaCommonImage, Order: 3},
					{Hash: "a-plan", Type: presentation.MediaPlanImage, Description: "План этажа", Order: 1},
				},
				RealtyOffers: []presentation.RealtyOffer{{
					ID:        OfferID,
					ObjectID:  ObjectID,
					Operation: presentation.OperationRent,
					ForCustomer: presentation.Customer{
						TaxType:           "nds",
						PriceMeter:        36000,
						PriceIncludes:     "operational,utilities",
						PriceExcludes:     "electricity",
						OfferContractType: "directRent",
						DepositeValue:     2,
						DepositeType:      "month",
						RentDurationValue: 11,
						RentDurationType:  "months",
					},
				}},
			}},
		}},
	}
}

// Blocks возвращает сгенерированные блоки для запроса
func Blocks(req *presentation.Request) []presentation.BlockDescriptor {
	return presentation.OfferGenerator{}.Generate(req)
}
