package presentation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presentation-service-go/internal/domain/presentation"
	"presentation-service-go/internal/domain/presentation/presentationtest"
)

func validate(t *testing.T, req *presentation.Request, blocks []presentation.BlockDescriptor) presentation.ValidationResult {
	t.Helper()
	return presentation.NewOfferValidator().Validate(blocks, req)
}

func blockOf(kind presentation.BlockKind, req *presentation.Request) presentation.BlockDescriptor {
	for _, b := range presentationtest.Blocks(req) {
		if b.BlockID == kind {
			return b
		}
	}
	return presentation.BlockDescriptor{BlockID: kind}
}

func TestOfferValidator_ValidRequest(t *testing.T) {
	req := presentationtest.Request()
	blocks := presentationtest.Blocks(req)

	result := validate(t, req, blocks)

	assert.False(t, result.Failure)
	require.Len(t, result.BlocksWithErrors, len(blocks))
	for _, b := range result.BlocksWithErrors {
		assert.Nil(t, b.Errors, b.BlockID)
	}
	assert.Empty(t, result.Rejected())
}

func TestOfferValidator_EmptyBlocks(t *testing.T) {
	for _, blocks := range [][]presentation.BlockDescriptor{nil, {}} {
		result := validate(t, presentationtest.Request(), blocks)
		assert.True(t, result.Failure)
		assert.NotNil(t, result.BlocksWithErrors)
		assert.Empty(t, result.BlocksWithErrors)
	}
}

func TestOfferValidator_DoesNotMutateInput(t *testing.T) {
	req := presentationtest.Request()
	req.Broker = nil
	blocks := presentationtest.Blocks(req)

	result := validate(t, req, blocks)

	assert.True(t, result.Failure)
	for _, b := range blocks {
		assert.Nil(t, b.Errors)
	}
}

func TestOfferValidator_Idempotent(t *testing.T) {
	req := presentationtest.Request()
	req.Data[0].Name = ""
	blocks := presentationtest.Blocks(req)

	first := validate(t, req, blocks)
	second := validate(t, req, first.BlocksWithErrors)

	assert.Equal(t, first, second)
}

func TestOfferValidator_UnknownKind(t *testing.T) {
	result := validate(t, presentationtest.Request(), []presentation.BlockDescriptor{{BlockID: "footer"}})

	require.True(t, result.Failure)
	assert.Equal(t, []presentation.BlockError{{
		DataType: presentation.ErrorDataInputData,
		Property: "none",
		Message:  "входные данные заданы неверно",
	}}, result.BlocksWithErrors[0].Errors)
}

func TestOfferValidator_NilRequest(t *testing.T) {
	blocks := []presentation.BlockDescriptor{{BlockID: presentation.BlockHeader}}
	result := presentation.NewOfferValidator().Validate(blocks, nil)
	assert.True(t, result.Failure)
}

func TestOfferValidator_MissingIDs(t *testing.T) {
	tests := []struct {
		name    string
		block   presentation.BlockDescriptor
		message string
	}{
		{
			name:    "building header",
			block:   presentation.BlockDescriptor{BlockID: presentation.BlockBuildingHeader, RealtyID: "missing"},
			message: "ID объекта задано неверно",
		},
		{
			name:    "building location",
			block:   presentation.BlockDescriptor{BlockID: presentation.BlockBuildingLocation, RealtyID: "missing"},
			message: "ID объекта задано неверно",
		},
		{
			name:    "building info",
			block:   presentation.BlockDescriptor{BlockID: presentation.BlockBuildingInfo, RealtyID: "missing"},
			message: "ID объекта задано неверно",
		},
		{
			name:    "building photo",
			block:   presentation.BlockDescriptor{BlockID: presentation.BlockBuildingPhoto, RealtyID: "missing"},
			message: "ID объекта задано неверно",
		},
		{
			name: "area commercial with wrong offer",
			block: presentation.BlockDescriptor{
				BlockID:        presentation.BlockAreaCommercial,
				RealtyID:       presentationtest.RealtyID,
				RealtyObjectID: presentationtest.ObjectID,
				RealtyOfferID:  "missing",
			},
			message: "ID помещения или предложения указаны неверно",
		},
		{
			name: "area photo",
			block: presentation.BlockDescriptor{
				BlockID:        presentation.BlockAreaPhoto,
				RealtyID:       presentationtest.RealtyID,
				RealtyObjectID: "missing",
			},
			message: "ID помещения задано неверно",
		},
		{
			name: "area schema",
			block: presentation.BlockDescriptor{
				BlockID:        presentation.BlockAreaSchema,
				RealtyID:       "missing",
				RealtyObjectID: presentationtest.ObjectID,
			},
			message: "ID помещения задано неверно",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validate(t, presentationtest.Request(), []presentation.BlockDescriptor{tt.block})
			require.True(t, result.Failure)
			assert.Equal(t, []presentation.BlockError{{
				DataType: presentation.ErrorDataInputData,
				Property: "data",
				Message:  tt.message,
			}}, result.BlocksWithErrors[0].Errors)
		})
	}
}

func TestOfferValidator_Rules(t *testing.T) {
	tests := []struct {
		name   string
		kind   presentation.BlockKind
		mutate func(req *presentation.Request)
		want   []presentation.BlockError
	}{
		{
			name:   "header without data",
			kind:   presentation.BlockHeader,
			mutate: func(req *presentation.Request) { req.Data = nil },
			want:   []presentation.BlockError{{DataType: "realty", Property: "data", Message: "Не задано ни одного объекта"}},
		},
		{
			name: "building header without prefix and class",
			kind: presentation.BlockBuildingHeader,
			mutate: func(req *presentation.Request) {
				req.Data[0].Prefix = ""
				req.Data[0].BuildingClassLetter = ""
			},
			want: []presentation.BlockError{
				{DataType: "realty", Property: "prefix"},
				{DataType: "realty", Property: "buildingClassLetter"},
			},
		},
		{
			name: "building header without subway and highways",
			kind: presentation.BlockBuildingHeader,
			mutate: func(req *presentation.Request) {
				req.Data[0].Address.SubwayStations = nil
				req.Data[0].Address.Highways = nil
			},
			want: []presentation.BlockError{{
				DataType: "realty",
				Property: "address.highways",
				Message:  "Если не заданы станции метро, то должен быть задан хотя бы один проспект",
			}},
		},
		{
			name: "building header with incomplete station and highway",
			kind: presentation.BlockBuildingHeader,
			mutate: func(req *presentation.Request) {
				req.Data[0].Address.SubwayStations[1].LineName = ""
				req.Data[0].Address.Highways[0].Distance = 0
			},
			want: []presentation.BlockError{
				{DataType: "realty", Property: "address.subwayStations[1].lineName"},
				{DataType: "realty", Property: "address.highways[0].distance"},
			},
		},
		{
			name:   "location with short anons",
			kind:   presentation.BlockBuildingLocation,
			mutate: func(req *presentation.Request) { req.Data[0].Outer.Anons = "Коротко" },
			want: []presentation.BlockError{{
				DataType: "realty",
				Property: "outer.anons",
				Message:  "слишком короткое описание, должно быть от 50 до 255 символов",
			}},
		},
		{
			name:   "location with long anons",
			kind:   presentation.BlockBuildingLocation,
			mutate: func(req *presentation.Request) { req.Data[0].Outer.Anons = strings.Repeat("я", 256) },
			want: []presentation.BlockError{{
				DataType: "realty",
				Property: "outer.anons",
				Message:  "слишком длинное описание, должно быть от 50 до 255 символов",
			}},
		},
		{
			name:   "location anons counted in characters",
			kind:   presentation.BlockBuildingLocation,
			mutate: func(req *presentation.Request) { req.Data[0].Outer.Anons = strings.Repeat("я", 255) },
			want:   nil,
		},
		{
			name: "location without coordinates",
			kind: presentation.BlockBuildingLocation,
			mutate: func(req *presentation.Request) {
				req.Data[0].Address.Lat = 0
				req.Data[0].Address.Lng = 0
			},
			want: []presentation.BlockError{
				{DataType: "realty", Property: "address.lat"},
				{DataType: "realty", Property: "address.lng"},
			},
		},
		{
			name:   "info without floors",
			kind:   presentation.BlockBuildingInfo,
			mutate: func(req *presentation.Request) { req.Data[0].Building.Floors = 0 },
			want:   []presentation.BlockError{{DataType: "realty", Property: "building.floors"}},
		},
		{
			name: "info with too few characteristics",
			kind: presentation.BlockBuildingInfo,
			mutate: func(req *presentation.Request) {
				r := &req.Data[0]
				r.Inner = presentation.Inner{CeilingHeight: 3}
				r.Land = presentation.Land{}
				r.Entry = presentation.Entry{}
				r.Parking = presentation.Parking{}
				r.Lift = presentation.Lift{}
			},
			want: func() []presentation.BlockError {
				var errs []presentation.BlockError
				for _, p := range []string{"inner", "land", "entry", "communicate", "parking", "lift"} {
					errs = append(errs, presentation.BlockError{DataType: "realty", Property: p,
						Message: "слишком мало характеристик, должно быть не менее 3"})
				}
				return errs
			}(),
		},
		{
			name: "info without any characteristics",
			kind: presentation.BlockBuildingInfo,
			mutate: func(req *presentation.Request) {
				r := &req.Data[0]
				r.Inner = presentation.Inner{}
				r.Land = presentation.Land{}
				r.Entry = presentation.Entry{}
				r.Parking = presentation.Parking{}
				r.Lift = presentation.Lift{}
			},
			want: nil,
		},
		{
			name:   "building photo with two photos",
			kind:   presentation.BlockBuildingPhoto,
			mutate: func(req *presentation.Request) { req.Data[0].Medias = req.Data[0].Medias[:2] },
			want: []presentation.BlockError{{
				DataType: "realty",
				Property: "medias",
				Message:  "слишком мало фото, должно быть не менее 3-х",
			}},
		},
		{
			name: "commercial with invalid fields",
			kind: presentation.BlockAreaCommercial,
			mutate: func(req *presentation.Request) {
				obj := &req.Data[0].RealtyObjects[0]
				obj.Info.SpaceLayout = "undefined"
				obj.Info.Floor = nil
				obj.Info.State = ""
				obj.Info.SquareOffer = 0
				obj.RealtyOffers[0].Operation = presentation.OperationNone
				obj.RealtyOffers[0].ForCustomer.PriceMeter = 0
			},
			want: []presentation.BlockError{
				{DataType: "offer", Property: "operation"},
				{DataType: "object", Property: "info.spaceLayout"},
				{DataType: "object", Property: "info.floor"},
				{DataType: "offer", Property: "forCustomer.priceMeter"},
				{DataType: "object", Property: "info.squareOffer"},
				{DataType: "object", Property: "info.state"},
			},
		},
		{
			name: "commercial on ground floor",
			kind: presentation.BlockAreaCommercial,
			mutate: func(req *presentation.Request) {
				zero := 0
				req.Data[0].RealtyObjects[0].Info.Floor = &zero
			},
			want: nil,
		},
		{
			name: "area photo ignores plans",
			kind: presentation.BlockAreaPhoto,
			mutate: func(req *presentation.Request) {
				obj := &req.Data[0].RealtyObjects[0]
				obj.Medias = obj.Medias[2:]
			},
			want: []presentation.BlockError{{
				DataType: "object",
				Property: "medias",
				Message:  "слишком мало фото, должно быть не менее 3-х",
			}},
		},
		{
			name: "area schema missing",
			kind: presentation.BlockAreaSchema,
			mutate: func(req *presentation.Request) {
				obj := &req.Data[0].RealtyObjects[0]
				obj.Medias = obj.Medias[:3]
			},
			want: []presentation.BlockError{{DataType: "object", Property: "medias", Message: "схема помещения не задана"}},
		},
		{
			name:   "broker missing",
			kind:   presentation.BlockBrokerContacts,
			mutate: func(req *presentation.Request) { req.Broker = nil },
			want:   []presentation.BlockError{{DataType: "broker", Property: "", Message: "Данные не переданы"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := presentationtest.Request()
			block := blockOf(tt.kind, req)
			tt.mutate(req)

			result := validate(t, req, []presentation.BlockDescriptor{block})

			assert.Equal(t, tt.want != nil, result.Failure)
			assert.Equal(t, tt.want, result.BlocksWithErrors[0].Errors)
		})
	}
}

func TestValidationResult_Rejected(t *testing.T) {
	result := presentation.ValidationResult{
		Failure: true,
		BlocksWithErrors: []presentation.BlockDescriptor{
			{BlockID: presentation.BlockHeader},
			{BlockID: presentation.BlockBrokerContacts, Errors: []presentation.BlockError{{DataType: "broker"}}},
		},
	}

	rejected := result.Rejected()
	require.Len(t, rejected, 1)
	assert.Equal(t, presentation.BlockBrokerContacts, rejected[0].BlockID)
}
