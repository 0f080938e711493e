package presentation

// Названия блоков в том виде, в котором их видит пользователь
const (
	NameHeader           = "Заголовок презентации"
	NameBuildingHeader   = "Заголовок объекта"
	NameBuildingLocation = "Расположение объекта"
	NameBuildingInfo     = "Информация об объекте"
	NameBuildingPhoto    = "Фотографии объекта"
	NameAreaCommercial   = "Коммерческое предложение помещения"
	NameAreaPhoto        = "Фотографии помещения"
	NameAreaSchema       = "Планировка помещения"
	NameBrokerContacts   = "Контакты брокера"
)

// Generator строит упорядоченный список инфоблоков шаблона
type Generator interface {
	Generate(req *Request) []BlockDescriptor
}

// OfferGenerator генератор шаблона предложения помещений:
// заголовок, затем для каждого здания его блоки и блоки его помещений, в конце контакты брокера
type OfferGenerator struct{}

// Generate возвращает пустой список, если в запросе нет ни одного здания
func (OfferGenerator) Generate(req *Request) []BlockDescriptor {
	if req == nil || len(req.Data) == 0 {
		return []BlockDescriptor{}
	}

	blocks := []BlockDescriptor{{BlockID: BlockHeader, Name: NameHeader}}

	for _, realty := range req.Data {
		building := func(kind BlockKind, name string, optional bool) BlockDescriptor {
			return BlockDescriptor{BlockID: kind, RealtyID: realty.ID, IsOptional: optional, Name: name}
		}
		blocks = append(blocks,
			building(BlockBuildingHeader, NameBuildingHeader, false),
			building(BlockBuildingLocation, NameBuildingLocation, true),
			building(BlockBuildingInfo, NameBuildingInfo, true),
			building(BlockBuildingPhoto, NameBuildingPhoto, true),
		)

		for _, object := range realty.RealtyObjects {
			area := func(kind BlockKind, name, offerID string, optional bool) BlockDescriptor {
				return BlockDescriptor{
					BlockID:        kind,
					RealtyID:       realty.ID,
					RealtyObjectID: object.ID,
					RealtyOfferID:  offerID,
					IsOptional:     optional,
					Name:           name,
				}
			}

			// блоки фото и планировки привязаны к последнему предложению помещения
			lastOfferID := ""
			for _, offer := range object.RealtyOffers {
				lastOfferID = offer.ID
				blocks = append(blocks, area(BlockAreaCommercial, NameAreaCommercial, offer.ID, false))
			}
			blocks = append(blocks,
				area(BlockAreaPhoto, NameAreaPhoto, lastOfferID, true),
				area(BlockAreaSchema, NameAreaSchema, lastOfferID, true),
			)
		}
	}

	return append(blocks, BlockDescriptor{BlockID: BlockBrokerContacts, Name: NameBrokerContacts})
}
