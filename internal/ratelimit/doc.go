// Package ratelimit implements per-client request admission over a trailing
// time window. The limiter itself is storage-agnostic: window state lives in
// an injected Store, with an in-memory implementation bounded by a client
// capacity and a redis implementation for multi-instance deployments.
package ratelimit
