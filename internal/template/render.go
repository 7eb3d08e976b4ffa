// Package template implements the {{name}} variable substitution used for
// email subjects/bodies and document layouts. It is deliberately not a real
// template language: only scalar substitution is supported, and markers with
// no matching variable (including {{#each}}-style block directives) pass
// through untouched.
package template

import "regexp"

// Render replaces every occurrence of {{k}} in tmpl with vars[k]. Markers for
// keys absent from vars are left byte-identical in the output. Substitution is
// a single pass over the template, so a value that itself contains a marker is
// never expanded again. Values are used verbatim; callers pre-format numbers
// and dates.
func Render(tmpl string, vars map[string]string) string {
	return markerPattern.ReplaceAllStringFunc(tmpl, func(marker string) string {
		name := marker[2 : len(marker)-2]
		if v, ok := vars[name]; ok {
			return v
		}
		return marker
	})
}

var markerPattern = regexp.MustCompile(`\{\{([a-zA-Z_][a-zA-Z0-9_]*)\}\}`)

// Variables returns the distinct scalar marker names referenced by tmpl, in
// order of first appearance. Block directives ({{#each ...}}, {{/each}}) are
// not markers and are not reported.
func Variables(tmpl string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range markerPattern.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
