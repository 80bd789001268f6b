package generation

import "time"

// FailureKind classifies why a generation attempt failed. The wire contract
// only carries the human-readable reason string; the kind exists so callers
// and tests can branch on failure class without parsing messages.
type FailureKind int

const (
	// FailureNone marks a successful result.
	FailureNone FailureKind = iota

	// FailureUpstream is a non-2xx response from the image API.
	FailureUpstream

	// FailureTimeout means the upstream call exceeded the configured timeout.
	FailureTimeout

	// FailureNoImage is a 2xx response whose body contained no recognizable image.
	FailureNoImage

	// FailureUnexpected is the catch-all for transport and decode faults.
	FailureUnexpected
)

// Canonical failure reasons preserved from the original service contract.
const (
	ReasonNoImage = "No image found in response"
	ReasonTimeout = "Request timeout - generation took too long"
)

// Result is the normalized outcome of one generation attempt. On success
// exactly one of ImageURL and ImageBase64 is populated. Elapsed always
// carries the wall-clock duration of the attempt, regardless of outcome.
type Result struct {
	ImageURL    string
	ImageBase64 string
	Elapsed     time.Duration
	Kind        FailureKind
	Reason      string
}

// Succeeded reports whether the attempt produced an image.
func (r *Result) Succeeded() bool {
	return r.Kind == FailureNone
}

// SuccessURL builds a successful result referencing a hosted image.
func SuccessURL(url string) *Result {
	return &Result{ImageURL: url}
}

// SuccessBase64 builds a successful result carrying inline base64 image data.
func SuccessBase64(data string) *Result {
	return &Result{ImageBase64: data}
}

// Failure builds a failed result of the given kind.
func Failure(kind FailureKind, reason string) *Result {
	return &Result{Kind: kind, Reason: reason}
}
