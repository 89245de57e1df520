package datecard

import (
	"math/rand"
	"sync"
	"time"
)

// Suggested dates land 3 to 7 days out, starting between 17:00 and 20:00.
const (
	minDaysAhead = 3
	maxDaysAhead = 7
	firstHour    = 17
	lastHour     = 20
)

// Rand is the randomness the engine draws from. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

type lockedRand struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewRand returns a goroutine-safe Rand seeded with seed.
func NewRand(seed int64) Rand {
	return &lockedRand{src: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(n)
}

// GenerateSchedule picks an evening 3 to 7 days after now, in now's location,
// on the hour.
func GenerateSchedule(now time.Time, rng Rand) time.Time {
	days := minDaysAhead + rng.Intn(maxDaysAhead-minDaysAhead+1)
	hour := firstHour + rng.Intn(lastHour-firstHour+1)

	day := now.AddDate(0, 0, days)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, now.Location())
}
