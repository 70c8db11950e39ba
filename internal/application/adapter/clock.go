package adapter

import "time"

// Clock supplies the current time to use cases that reason about due dates.
type Clock interface {
	Now() time.Time
}
