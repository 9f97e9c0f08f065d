package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// Clock abstracts time so expiry and scheduling can be tested.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Random is the randomness the core consumes: seat fills, showtime
// selection and the upgrade lottery.
type Random interface {
	IntN(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

type lockedRandom struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandom returns a goroutine-safe PCG source.  The same seed yields the
// same sequence; seed 0 draws a seed from the clock.
func NewRandom(seed uint64) Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &lockedRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRandom) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRandom) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRandom) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}

type userIDKey struct{}

// ContextWithUserID attaches the authenticated user's ID to ctx.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the authenticated user's ID, or "".
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}

// requireUser checks that ctx is authenticated as userID.
func requireUser(ctx context.Context, userID string) error {
	caller := UserIDFromContext(ctx)
	if caller == "" || userID == "" || caller != userID {
		return ErrAuthRequired
	}
	return nil
}

// detach keeps ctx's values but drops its cancellation, bounded by timeout.
// Side effects that run after a request has been answered use it.
func detach(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}
