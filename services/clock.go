// services/clock.go
package services

import "time"

const dayLayout = "2006-01-02"

// Clock abstracts "now" so quest day boundaries are testable.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// NewRealClock returns the wall-clock implementation used in production.
func NewRealClock() Clock { return realClock{} }

// dayOf buckets a time into its server-local calendar day.
func dayOf(t time.Time) string {
	return t.Format(dayLayout)
}
