package overlay

import "fmt"

// Zone IDs for clickable overlay elements.
const (
	ZoneOAuth      = "zone-auth-oauth"
	ZoneAuthToggle = "zone-auth-toggle"
	ZoneAuthSubmit = "zone-auth-submit"
	ZoneAuthClose  = "zone-auth-close"
	ZoneSearchExit = "zone-search-close"
)

// ResultZoneID returns the zone ID for a search result row.
func ResultZoneID(idx int) string {
	return fmt.Sprintf("zone-search-result-%d", idx)
}
