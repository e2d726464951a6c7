package output

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

type displayZone struct {
	name     string
	location *time.Location
}

var currentZone atomic.Pointer[displayZone]

func init() {
	currentZone.Store(&displayZone{name: "UTC", location: time.UTC})
}

// SetDisplayTimezone selects the IANA zone human output renders *_utc
// timestamps in. An empty name resets to UTC.
func SetDisplayTimezone(timezone string) error {
	name := strings.TrimSpace(timezone)
	if name == "" {
		name = "UTC"
	}

	location, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", name, err)
	}
	currentZone.Store(&displayZone{name: name, location: location})
	return nil
}

func CurrentDisplayTimezone() string {
	return currentZone.Load().name
}

// DisplayLocation is the location behind CurrentDisplayTimezone.
func DisplayLocation() *time.Location {
	return currentZone.Load().location
}
