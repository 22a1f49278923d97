package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTerritories(t *testing.T) {
	got := NormalizeTerritories([]string{" North ", "south", "North", "", "East"})
	assert.Equal(t, []string{"East", "North", "south"}, got)
}

func TestParseTerritoryListLegacyCommaForm(t *testing.T) {
	got := ParseTerritoryList("North, South ,North,,West")
	assert.Equal(t, []string{"North", "South", "West"}, got)
	assert.Nil(t, ParseTerritoryList("   "))
}

func TestTerritoriesEqualIgnoresOrderAndCase(t *testing.T) {
	assert.True(t, TerritoriesEqual([]string{"north", "South"}, []string{"South", "North"}))
	assert.False(t, TerritoriesEqual([]string{"North"}, []string{"North", "South"}))
}

func TestTerritoriesEqualWhenCasingWouldReorder(t *testing.T) {
	// "B" sorts before "a" byte-wise; the folded sort keeps the pairing stable.
	assert.True(t, TerritoriesEqual([]string{"alpha", "Beta"}, []string{"Alpha", "beta"}))
	assert.Equal(t, []string{"alpha", "Beta"}, NormalizeTerritories([]string{"Beta", "alpha"}))
}

func TestJoinTerritories(t *testing.T) {
	assert.Equal(t, "East, West", JoinTerritories([]string{"West", "East", "west"}))
}
