// Package ids makes the identifiers that tag wizard sessions and API
// requests. Ids carry a kind prefix so a session id can never be mistaken
// for a request id in logs or server traces.
package ids

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	SessionPrefix = "ses_"
	RequestPrefix = "req_"
)

// Generator produces identifiers.
type Generator interface {
	Generate() string
}

// Func adapts a function to Generator.
type Func func() string

// Generate calls f.
func (f Func) Generate() string { return f() }

// Sessions returns a generator of session ids: SessionPrefix followed by a
// UUIDv7, so ids sort by creation time.
func Sessions() Generator { return timeOrdered(SessionPrefix) }

// Requests returns a generator of request ids, sent as X-Request-Id.
func Requests() Generator { return timeOrdered(RequestPrefix) }

func timeOrdered(prefix string) Generator {
	return Func(func() string {
		return prefix + uuid.Must(uuid.NewV7()).String()
	})
}

// Sequence returns prefix+"1", prefix+"2", and so on. Safe for concurrent
// use; tests use it for stable output.
func Sequence(prefix string) Generator {
	var n atomic.Int64
	return Func(func() string {
		return prefix + strconv.FormatInt(n.Add(1), 10)
	})
}
