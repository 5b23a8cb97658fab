// Package id mints the request identifiers the dashboard server attaches
// to every response and log line.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	// Monotonic keeps ids minted within one millisecond ordered.
	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a request id stamped with the current time.
func New() string {
	return At(time.Now())
}

// At returns a request id stamped with t.
func At(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	v, err := ulid.New(ulid.Timestamp(t.UTC()), mono)
	if err != nil {
		panic(fmt.Sprintf("id: mint request id: %v", err))
	}
	return v.String()
}

// Time reports when a request id was minted. Incoming X-Request-ID headers
// that are not ids of ours return an error.
func Time(s string) (time.Time, error) {
	v, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse request id %q: %w", s, err)
	}
	return ulid.Time(v.Time()).UTC(), nil
}
