package markup

import "strings"

const styleAttr = "style"

// decomposeStyles splits the value of every "style" attribute into
// declarations. Segments are separated by ';' and split on the first ':' only.
// A segment without ':' yields a property with no value.
func decomposeStyles(attrs []Attribute) []StyleProperty {
	var styles []StyleProperty

	for _, attr := range attrs {
		if attr.Key != styleAttr || !attr.HasValue {
			continue
		}

		for segment := range strings.SplitSeq(attr.Value, ";") {
			segment = trimSpace(segment)
			if segment == "" {
				continue
			}

			property, value, found := strings.Cut(segment, ":")
			style := StyleProperty{Property: trimSpace(property)}
			if found {
				style.Value = trimSpace(value)
				style.HasValue = true
			}
			styles = append(styles, style)
		}
	}

	return styles
}
