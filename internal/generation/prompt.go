package generation

import (
	"fmt"
	"strings"
)

// basePromptTemplate embeds the occasion twice: once in the title line and
// once in the "visual elements related to" requirement.
const basePromptTemplate = `Create a creative doodle design for the company "GoWombat" celebrating: %s

IMPORTANT REQUIREMENTS:
1. The word "GoWombat" must be clearly visible and stylized to match the occasion
2. Incorporate a cute wombat character or wombat-themed elements into the letters
3. Make it in the style of Google Doodles - playful, creative, and thematic
4. The design should be colorful, festive, and eye-catching
5. Include visual elements related to: %s
6. Keep the overall composition balanced and readable
7. The background should be clean (white or light colored)
8. Make it look professional yet fun and engaging

STYLE GUIDELINES:
- Similar to Google Doodles: creative letter transformations
- Incorporate the occasion's symbols into the lettering
- Use vibrant, harmonious colors
- Add small decorative elements around the main text
- Make the wombat character interact with the letters creatively
`

const closingInstruction = "\n\nGenerate a high-quality, detailed illustration suitable for a company's special occasion celebration."

// BuildPrompt produces the image-generation prompt for the given occasion.
// It is pure and deterministic: the occasion and optional style hint are
// embedded verbatim, with no truncation or escaping. Callers are responsible
// for validating the length and content of both arguments beforehand.
func BuildPrompt(occasion string, styleHint string) string {
	var b strings.Builder
	fmt.Fprintf(&b, basePromptTemplate, occasion, occasion)

	if styleHint != "" {
		b.WriteString("\n\nADDITIONAL STYLE DIRECTION: ")
		b.WriteString(styleHint)
	}

	b.WriteString(closingInstruction)
	return b.String()
}
