package rarity

import (
	"testing"

	"github.com/burn-exchange/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPointsFor_Dragons(t *testing.T) {
	contract := string(types.CollectionDragons)

	tests := []struct {
		name    string
		tokenID string
		want    int
	}{
		{"lower bound common", "1", TierCommon},
		{"mid common", "3", TierCommon},
		{"upper bound common", "5000", TierCommon},
		{"lower bound rare", "5001", TierRare},
		{"upper bound rare", "8000", TierRare},
		{"lower bound epic", "8001", TierEpic},
		{"upper bound epic", "9500", TierEpic},
		{"lower bound legendary", "9501", TierLegendary},
		{"upper bound legendary", "10000", TierLegendary},
		{"token zero outside all ranges", "0", TierCommon},
		{"above collection supply", "10001", TierCommon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointsFor(tt.tokenID, contract))
		})
	}
}

func TestPointsFor_Nomaimai(t *testing.T) {
	contract := string(types.CollectionNomaimai)

	tests := []struct {
		name    string
		tokenID string
		want    int
	}{
		{"lower bound common", "1", TierCommon},
		{"shared boundary stays common", "3500", TierCommon},
		{"lower bound legendary", "3501", TierLegendary},
		{"upper bound legendary", "4000", TierLegendary},
		{"above collection supply", "4001", TierCommon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointsFor(tt.tokenID, contract))
		})
	}
}

func TestPointsFor_ContractCaseInsensitive(t *testing.T) {
	// The checksummed form must match the same tiers as the lowercased form.
	checksummed := "0x521B674F91d818f7786F784dCCa2fc2b3121A6Bb"

	assert.Equal(t, TierLegendary, PointsFor("10000", checksummed))
	assert.Equal(t, PointsFor("7777", checksummed), PointsFor("7777", string(types.CollectionDragons)))
}

func TestPointsFor_UnknownContract(t *testing.T) {
	assert.Equal(t, TierCommon, PointsFor("10000", "0x0000000000000000000000000000000000000001"))
	assert.Equal(t, TierCommon, PointsFor("1", ""))
}

func TestPointsFor_NonNumericTokenID(t *testing.T) {
	contract := string(types.CollectionDragons)

	assert.Equal(t, TierCommon, PointsFor("abc", contract))
	assert.Equal(t, TierCommon, PointsFor("", contract))
	assert.Equal(t, TierCommon, PointsFor("12.5", contract))
}
