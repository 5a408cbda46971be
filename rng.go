package resultgen

import (
	"math/rand"
	"strings"
	"time"

	"github.com/dgryski/go-wyhash"
)

// Rng wraps a rand.Rand seeded from a string, so that a run can be made
// reproducible by naming its seed. An empty seed falls back to the clock.
type Rng struct {
	rng *rand.Rand
}

func NewRng(s string) Rng {
	if s == "" {
		return Rng{rand.New(rand.NewSource(time.Now().UnixNano()))}
	}
	return Rng{rand.New(rand.NewSource(int64(wyhash.Hash([]byte(s), 2467825690))))}
}

func (r Rng) Intn(n int) int {
	return r.rng.Intn(n)
}

// Int returns a uniform int in the half-open range [min, max).
func (r Rng) Int(min, max int) int {
	return min + r.rng.Intn(max-min)
}

// Float returns a uniform float64 in the half-open range [min, max).
func (r Rng) Float(min, max float64) float64 {
	return r.rng.Float64()*(max-min) + min
}

func (r Rng) Choice(a []string) string {
	return a[r.rng.Intn(len(a))]
}

// Roll returns true with probability p, where p is in [0, 1].
func (r Rng) Roll(p float64) bool {
	return r.rng.Float64() < p
}

func (r Rng) HexString(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte("0123456789abcdef"[r.rng.Intn(16)])
	}
	return b.String()
}

// Read fills p with random bytes.
func (r Rng) Read(p []byte) {
	r.rng.Read(p)
}

// title uppercases the first letter of every alphabetic run, matching the
// module naming used throughout the fixtures ("module_0001" -> "Module_0001").
func title(s string) string {
	b := []byte(s)
	up := true
	for i, c := range b {
		if up && c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
		up = !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z')
	}
	return string(b)
}
