package openrouter

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gowombat/doodle-api/internal/generation"
)

// The upstream returns images in several shapes depending on model and
// routing: a data URI, a hosted URL, a raw base64 string, or one of a few
// nested objects. Normalize resolves them with a fixed priority order;
// the branch order below encodes that priority and must not be reordered.

const (
	dataURIPrefix = "data:image"
	httpPrefix    = "http"

	// base64ProbeLength is how many leading characters of a bare string are
	// test-decoded before the whole string is accepted as base64 image data.
	base64ProbeLength = 100
)

// Normalize maps a decoded chat-completions payload to a generation Result.
// It is a pure function: the caller is responsible for ensuring the payload
// is valid JSON (a decode failure is a transport error, not a normalization
// failure) and for stamping the elapsed time on the result.
func Normalize(payload map[string]any) *generation.Result {
	choices, ok := payload["choices"].([]any)
	if !ok || len(choices) == 0 {
		return generation.Failure(generation.FailureNoImage, generation.ReasonNoImage)
	}

	message := map[string]any{}
	if choice, ok := choices[0].(map[string]any); ok {
		if m, ok := choice["message"].(map[string]any); ok {
			message = m
		}
	}

	if result := imageFromImages(message); result != nil {
		return result
	}
	if result := imageFromContent(message["content"]); result != nil {
		return result
	}

	return generation.Failure(generation.FailureNoImage, generation.ReasonNoImage)
}

// imageFromImages inspects message.images[0]. A nil return means no match in
// this branch and normalization falls through to the content check.
func imageFromImages(message map[string]any) *generation.Result {
	images, ok := message["images"].([]any)
	if !ok || len(images) == 0 {
		return nil
	}

	switch imageObj := images[0].(type) {
	case map[string]any:
		urlField, ok := imageObj["image_url"]
		if !ok {
			return nil
		}

		// image_url is either {"url": "..."} or the URL string itself.
		var imageURL string
		switch u := urlField.(type) {
		case map[string]any:
			imageURL, _ = u["url"].(string)
		case string:
			imageURL = u
		}

		return imageFromURLString(imageURL)

	case string:
		if strings.HasPrefix(imageObj, dataURIPrefix) {
			return generation.SuccessBase64(dataURIPayload(imageObj))
		}
		// Bare string: probe the first characters as base64. Decoding success
		// alone is sufficient; the content is not re-validated. This is a
		// deliberately loose heuristic preserved for compatibility.
		if probesAsBase64(imageObj) {
			return generation.SuccessBase64(imageObj)
		}
		return nil
	}

	return nil
}

// imageFromContent inspects message.content, which may be a string or a list
// of content parts.
func imageFromContent(content any) *generation.Result {
	switch c := content.(type) {
	case string:
		return imageFromURLString(c)

	case []any:
		for _, item := range c {
			part, ok := item.(map[string]any)
			if !ok {
				continue
			}
			partType, _ := part["type"].(string)
			if partType != "image" && !strings.Contains(fmt.Sprint(part), "image") {
				continue
			}
			if data, ok := part["data"]; ok {
				s, _ := data.(string)
				return generation.SuccessBase64(s)
			}
			if url, ok := part["url"]; ok {
				s, _ := url.(string)
				return generation.SuccessURL(s)
			}
			// Qualifying part without data or url: keep scanning.
		}
	}

	return nil
}

// imageFromURLString is the single place that dispatches on the "data:image"
// and "http" prefixes, so future format additions stay localized.
func imageFromURLString(s string) *generation.Result {
	switch {
	case strings.HasPrefix(s, dataURIPrefix):
		return generation.SuccessBase64(dataURIPayload(s))
	case strings.HasPrefix(s, httpPrefix):
		return generation.SuccessURL(s)
	}
	return nil
}

// dataURIPayload extracts the base64 payload of a data URI: everything after
// the first comma, or the whole string when no comma is present.
func dataURIPayload(uri string) string {
	if i := strings.Index(uri, ","); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

// probesAsBase64 reports whether the leading base64ProbeLength characters of
// s decode without error.
func probesAsBase64(s string) bool {
	probe := s
	if len(probe) > base64ProbeLength {
		probe = probe[:base64ProbeLength]
	}
	_, err := base64.StdEncoding.DecodeString(probe)
	return err == nil
}
