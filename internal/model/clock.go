package model

import "time"

var serverZone = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		return time.UTC
	}
	return loc
}()

// ServerZone is the fixed reference zone the server clock runs in. Date
// strings carried by LogEvent are rendered in this zone.
func ServerZone() *time.Location {
	return serverZone
}
