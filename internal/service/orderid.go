package service

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderID produces a human-facing identifier of the form
// ORD-YYYYMMDD-NNNNN with a 5-digit random suffix. Uniqueness is not
// guaranteed here; the database's unique index is the backstop.
func GenerateOrderID(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%05d", now.Format("20060102"), 10000+rand.Intn(90000))
}
