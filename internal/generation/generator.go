package generation

import "context"

// Generator defines the interface for producing occasion doodles.
// This interface serves as a boundary between the application core and the
// external image-generation service.
type Generator interface {
	// GenerateDoodle creates a doodle image for the given occasion.
	// styleHint may be empty, in which case no style direction is added
	// to the prompt.
	//
	// The contract is total: every fault along the generation path
	// (upstream error, timeout, unrecognizable response, transport failure)
	// is mapped to a failure Result rather than returned as an error, and
	// the Result always carries the elapsed time of the attempt.
	GenerateDoodle(ctx context.Context, occasion string, styleHint string) *Result
}
