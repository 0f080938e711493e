package presentation_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presentation-service-go/internal/domain/presentation"
	"presentation-service-go/internal/domain/presentation/presentationtest"
)

func TestOfferGenerator_Generate(t *testing.T) {
	req := presentationtest.Request()
	blocks := presentation.OfferGenerator{}.Generate(req)

	kinds := make([]presentation.BlockKind, 0, len(blocks))
	for _, b := range blocks {
		kinds = append(kinds, b.BlockID)
	}
	assert.Equal(t, presentation.BlockKinds, kinds)

	assert.Equal(t, presentation.NameHeader, blocks[0].Name)
	assert.Empty(t, blocks[0].RealtyID)
	assert.False(t, blocks[0].IsOptional)

	assert.Equal(t, presentationtest.RealtyID, blocks[1].RealtyID)
	assert.False(t, blocks[1].IsOptional, "building header is required")
	for _, b := range blocks[2:5] {
		assert.True(t, b.IsOptional, b.BlockID)
		assert.Equal(t, presentationtest.RealtyID, b.RealtyID)
	}

	commercial := blocks[5]
	assert.False(t, commercial.IsOptional)
	assert.Equal(t, presentationtest.ObjectID, commercial.RealtyObjectID)
	assert.Equal(t, presentationtest.OfferID, commercial.RealtyOfferID)
	assert.Equal(t, presentationtest.ObjectID+"_"+presentationtest.OfferID, commercial.AreaKey())

	for _, b := range blocks[6:8] {
		assert.True(t, b.IsOptional)
		assert.Equal(t, presentationtest.OfferID, b.RealtyOfferID)
	}

	last := blocks[len(blocks)-1]
	assert.Equal(t, presentation.BlockBrokerContacts, last.BlockID)
	assert.Equal(t, presentation.NameBrokerContacts, last.Name)
}

func TestOfferGenerator_MultipleOffers(t *testing.T) {
	req := presentationtest.Request()
	object := &req.Data[0].RealtyObjects[0]
	second := object.RealtyOffers[0]
	second.ID = "offer-2"
	object.RealtyOffers = append(object.RealtyOffers, second)

	blocks := presentation.OfferGenerator{}.Generate(req)
	require.Len(t, blocks, 11)

	assert.Equal(t, presentation.BlockAreaCommercial, blocks[5].BlockID)
	assert.Equal(t, presentation.BlockAreaCommercial, blocks[6].BlockID)
	assert.Equal(t, "offer-2", blocks[6].RealtyOfferID)
	assert.Equal(t, "offer-2", blocks[7].RealtyOfferID, "photo block uses the last offer")
	assert.Equal(t, "offer-2", blocks[8].RealtyOfferID, "schema block uses the last offer")
}

func TestOfferGenerator_ObjectWithoutOffers(t *testing.T) {
	req := presentationtest.Request()
	req.Data[0].RealtyObjects[0].RealtyOffers = nil

	blocks := presentation.OfferGenerator{}.Generate(req)
	require.Len(t, blocks, 8)
	assert.Equal(t, presentation.BlockAreaPhoto, blocks[5].BlockID)
	assert.Equal(t, "", blocks[5].RealtyOfferID)
}

func TestOfferGenerator_EmptyData(t *testing.T) {
	tests := []struct {
		name string
		req  *presentation.Request
	}{
		{"nil request", nil},
		{"nil data", &presentation.Request{}},
		{"empty data", &presentation.Request{Data: []presentation.Realty{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := presentation.OfferGenerator{}.Generate(tt.req)
			assert.NotNil(t, blocks)
			assert.Empty(t, blocks)
		})
	}
}

func TestBlockDescriptor_JSONRoundTrip(t *testing.T) {
	blocks := presentationtest.Blocks(presentationtest.Request())

	data, err := json.Marshal(blocks)
	require.NoError(t, err)

	var decoded []presentation.BlockDescriptor
	require.NoError(t, json.Unmarshal(data, &decoded))

	if diff := cmp.Diff(blocks, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestBlockDescriptor_JSONFieldNames(t *testing.T) {
	b := presentation.BlockDescriptor{
		BlockID:        presentation.BlockAreaCommercial,
		RealtyID:       "r",
		RealtyObjectID: "o",
		RealtyOfferID:  "f",
		IsOptional:     true,
	}

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"blockId":"area_commercial","realtyId":"r","realtyObjectId":"o","realtyOfferId":"f","isOptional":true}`, string(data))
}

func TestBlockKind_Valid(t *testing.T) {
	assert.True(t, presentation.BlockAreaSchema.Valid())
	assert.False(t, presentation.BlockKind("footer").Valid())
}
