// Package api contains the HTTP handlers and request/response models for
// the doodle generation service. Handlers validate input, delegate to the
// generation boundary and map every outcome to the stable JSON contract
// shared with the frontend.
package api
