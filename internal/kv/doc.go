// Package kv provides the local key-value storage the draft store sits on.
//
// A Store maps string keys to string values. Every write stamps the entry
// with a fresh version taken from a store-wide logical clock, so a version is
// never reused for a key, even after the key is removed and written again.
// Put commits only when the caller's expected version still matches, which
// lets read-modify-write callers detect a concurrent writer instead of
// silently overwriting it.
//
// Two implementations exist:
//   - SQLite: durable, file backed, safe across processes
//   - Memory: in-process, for tests
package kv
