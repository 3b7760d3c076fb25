// Package ident produces canonical element identifier strings from a
// category, optional variant, free-text label, and optional context prefix.
// It is a pure formatting helper; the tracking core consumes its output but
// never calls back into it.
package ident

import "strings"

// Format builds an identifier like "prefix_category_variant_label_text".
// The label is normalized: lower-cased, "&" replaced with "and",
// non-alphanumeric runs collapsed to single underscores, and leading or
// trailing underscores trimmed. Empty parts are skipped.
func Format(category, variant, label, prefix string) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{prefix, category, variant, Normalize(label)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "_")
}

// Normalize converts free text into identifier-safe form.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "&", " and ")

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		alnum := r >= 'a' && r <= 'z' || r >= '0' && r <= '9'
		if !alnum {
			pendingSep = b.Len() > 0
			continue
		}
		if pendingSep {
			b.WriteByte('_')
			pendingSep = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
