package controllers

import "github.com/promopace/promopace-backend/pkg/types"

// mergedTerritories accepts both the array form and the legacy comma-joined
// string form of a territory edit.
func mergedTerritories(list []string, legacy string) []string {
	if len(list) > 0 {
		return list
	}
	return types.ParseTerritoryList(legacy)
}
