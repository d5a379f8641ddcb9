package location

import (
	"time"
)

// Location is a physical work site. Timezone is the IANA zone name used
// for all day-bucketing at that site; it is required, never inferred from
// the server clock.
type Location struct {
	ID        string
	CompanyID string
	Name      string
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
