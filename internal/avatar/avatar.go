// Package avatar builds placeholder profile images for users without a
// photo: an inline SVG data URL showing the first initial of the name.
package avatar

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

const svgTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="160" height="160"><rect width="100%%" height="100%%" rx="18" fill="#175f62"/><text x="50%%" y="55%%" font-family="Manrope, Arial, sans-serif" font-size="70" fill="#ffffff" text-anchor="middle" dominant-baseline="middle">%c</text></svg>`

// Placeholder returns a data:image/svg+xml URL showing the upper-cased
// first letter of name, falling back to G for empty names.
func Placeholder(name string) string {
	initial := 'G'
	for _, r := range strings.TrimSpace(name) {
		initial = unicode.ToUpper(r)
		break
	}
	svg := fmt.Sprintf(svgTemplate, initial)
	return "data:image/svg+xml," + url.PathEscape(svg)
}
