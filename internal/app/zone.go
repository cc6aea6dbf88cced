package app

import "fmt"

// Zone IDs for mouse click detection with bubblezone.
const zoneFavoritePrefix = "favorite:"

func favoriteZoneID(index int) string {
	return fmt.Sprintf("%s%d", zoneFavoritePrefix, index)
}
