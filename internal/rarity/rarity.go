// Package rarity maps a token's position within its collection's numbering
// scheme to an integer point reward. The function is total and pure: every
// input yields a tier, identical inputs yield identical outputs.
package rarity

import (
	"strconv"
	"strings"

	"github.com/burn-exchange/internal/types"
)

// Tier values. Higher token numbers generally map to rarer tiers.
const (
	TierCommon    = 1
	TierRare      = 3
	TierEpic      = 5
	TierLegendary = 10
)

// tierRange maps an inclusive token-number range to a point value.
type tierRange struct {
	low, high int64
	points    int
}

// Partitions are non-overlapping and exhaustive within each collection's
// numbering; anything outside falls through to TierCommon.
var collectionTiers = map[types.Collection][]tierRange{
	types.CollectionDragons: {
		{1, 5000, TierCommon},
		{5001, 8000, TierRare},
		{8001, 9500, TierEpic},
		{9501, 10000, TierLegendary},
	},
	types.CollectionNomaimai: {
		{1, 3500, TierCommon},
		{3501, 4000, TierLegendary},
	},
}

// PointsFor returns the point reward for burning the given token.
//
// Contract address comparison is case-insensitive. The token ID is parsed as
// a decimal number; a non-numeric ID matches no range and earns TierCommon,
// as does any token of an unknown collection.
func PointsFor(tokenID, contractAddress string) int {
	tiers, ok := collectionTiers[types.Collection(strings.ToLower(contractAddress))]
	if !ok {
		return TierCommon
	}

	n, err := strconv.ParseInt(strings.TrimSpace(tokenID), 10, 64)
	if err != nil {
		return TierCommon
	}

	for _, r := range tiers {
		if n >= r.low && n <= r.high {
			return r.points
		}
	}
	return TierCommon
}
