package ui

import "fmt"

// Zone ID constants for bubblezone hit detection.
// These are used both in render paths (zone.Mark) and input paths (zone.Get().InBounds).
const (
	ZoneSearch = "zone-search"
	ZoneAuth   = "zone-auth"
	ZoneTheme  = "zone-theme"
)

// TabZoneID returns the zone ID for a category tab by its index.
func TabZoneID(idx int) string {
	return fmt.Sprintf("zone-tab-%d", idx)
}

// CardZoneID returns the zone ID for a grid card by its index in the visible set.
func CardZoneID(idx int) string {
	return fmt.Sprintf("zone-card-%d", idx)
}
