// Package store defines persistence interfaces and common store errors.
// Implementations live under internal/platform; services and handlers depend
// only on the interfaces defined here.
package store
