// Package core has core logic for endpoint matching, usage scoring and ranking.
package core

import (
	"strings"

	"github.com/huangsam/graveyard/schema"
)

// MatchPath resolves a concrete request path to the endpoint template it
// belongs to. Both sides are split on "/" with empty segments discarded, so
// leading, trailing and duplicate slashes never affect the outcome. A
// template segment wrapped in braces matches any concrete segment; all other
// segments must match exactly. When method is non-empty, only templates
// with that method are considered.
//
// Templates are tried in the order given and the first match wins. The
// return value is the matched template path, or "" when nothing matches.
func MatchPath(concretePath string, templates []schema.EndpointTemplate, method string) string {
	concretePath = strings.TrimSpace(concretePath)
	if concretePath == "" {
		return ""
	}

	concrete := splitSegments(concretePath)
	method = strings.ToUpper(method)

	for _, tmpl := range templates {
		if method != "" && tmpl.Method != method {
			continue
		}
		if segmentsMatch(concrete, splitSegments(tmpl.Path)) {
			return tmpl.Path
		}
	}
	return ""
}

// splitSegments splits a path on "/" and drops empty segments.
func splitSegments(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// segmentsMatch compares a concrete path against a template path segment by
// segment. Segment counts must be equal; {param} template segments match
// any concrete value.
func segmentsMatch(concrete, template []string) bool {
	if len(concrete) != len(template) {
		return false
	}
	for i, seg := range template {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			continue
		}
		if concrete[i] != seg {
			return false
		}
	}
	return true
}
