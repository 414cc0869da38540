package domain

import "time"

type RateQuote struct {
	Rate       float64
	ObservedAt time.Time
}
