// Package openrouter implements the generation.Generator interface against
// OpenRouter's OpenAI-compatible chat-completions endpoint. It owns the
// upstream wire format and the normalization of the API's variant response
// shapes into a single generation.Result.
package openrouter
