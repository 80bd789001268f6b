// Package generation defines the doodle-generation boundary: the Generator
// interface, the normalized Result type every generation attempt produces,
// and the prompt template. It abstracts the details of the upstream
// image-generation API, allowing the HTTP layer to request doodles without
// coupling to a specific provider.
package generation
