// Package pattern maps field names to structural patterns and semantic
// categories. Matching is pure table lookup: an ordered list of
// {regex, weight, category} entries checked against the lowercased field
// name. Nothing here touches randomness or the schema.
package pattern

import (
	"regexp"
	"sort"
	"strings"
)

// Match is one recognized pattern for a field name.
type Match struct {
	Name       string
	Confidence float64
	Category   string
	// Generator names the value generator this pattern prefers.
	Generator string
}

type definition struct {
	name      string
	re        *regexp.Regexp
	weight    float64
	category  string
	generator string
}

// canonicalBoost is applied when the field name equals the pattern's
// canonical name exactly.
const canonicalBoost = 1.5

// The table is ordered: equal-confidence matches keep table order.
var definitions = []definition{
	{"email", regexp.MustCompile(`e[-_]?mail`), 0.9, "contact", "string"},
	{"phone", regexp.MustCompile(`phone|mobile|cell|fax`), 0.85, "contact", "string"},
	{"url", regexp.MustCompile(`url|link|website|homepage`), 0.8, "content", "string"},
	{"name", regexp.MustCompile(`^(first|last|full|middle|user|nick|display)?[-_]?name$|name$`), 0.75, "personal_info", "string"},
	{"address", regexp.MustCompile(`address|street|city|zip|postal`), 0.8, "contact", "string"},
	{"description", regexp.MustCompile(`description|summary|bio|about|notes?$`), 0.7, "content", "string"},
	{"title", regexp.MustCompile(`title|headline|subject`), 0.7, "content", "string"},
	{"password", regexp.MustCompile(`password|passwd|secret`), 0.9, "credentials", "string"},
	{"username", regexp.MustCompile(`username|login|handle`), 0.85, "credentials", "string"},
	{"slug", regexp.MustCompile(`slug|permalink`), 0.8, "content", "string"},
	{"uuid", regexp.MustCompile(`uuid|guid`), 0.9, "identifier", "uuid"},
	{"token", regexp.MustCompile(`token|api[-_]?key`), 0.85, "credentials", "string"},
	{"color", regexp.MustCompile(`colou?r`), 0.8, "content", "string"},
	{"company", regexp.MustCompile(`company|organization|employer|vendor`), 0.75, "business", "string"},
	{"status", regexp.MustCompile(`status|state$`), 0.7, "workflow", "string"},
	{"country", regexp.MustCompile(`country|nation`), 0.8, "geo", "string"},
	{"currency", regexp.MustCompile(`currency`), 0.8, "financial", "string"},
	{"ip", regexp.MustCompile(`^ip$|ip[-_]?addr`), 0.85, "network", "string"},
	{"image", regexp.MustCompile(`image|photo|avatar|picture|thumbnail`), 0.75, "content", "string"},
	{"price", regexp.MustCompile(`price|cost|amount|fee|total`), 0.8, "financial", "number"},
	{"age", regexp.MustCompile(`^age$|[-_]age$`), 0.85, "personal_info", "number"},
	{"quantity", regexp.MustCompile(`quantity|qty|count$|stock`), 0.75, "inventory", "number"},
	{"rating", regexp.MustCompile(`rating|score|grade`), 0.75, "metrics", "number"},
	{"percentage", regexp.MustCompile(`percent|ratio|rate$`), 0.7, "metrics", "number"},
	{"latitude", regexp.MustCompile(`^lat$|latitude`), 0.85, "geo", "number"},
	{"longitude", regexp.MustCompile(`^lng$|^lon$|longitude`), 0.85, "geo", "number"},
	{"created", regexp.MustCompile(`created|inserted`), 0.8, "temporal", "date"},
	{"updated", regexp.MustCompile(`updated|modified|changed`), 0.8, "temporal", "date"},
	{"birth", regexp.MustCompile(`birth|born|dob`), 0.85, "personal_info", "date"},
	{"expiry", regexp.MustCompile(`expir|valid[-_]?until|deadline`), 0.8, "temporal", "date"},
	{"active", regexp.MustCompile(`active|enabled|visible`), 0.75, "workflow", "boolean"},
	{"verified", regexp.MustCompile(`verified|confirmed|approved`), 0.75, "workflow", "boolean"},
	{"deleted", regexp.MustCompile(`deleted|removed|banned|archived`), 0.75, "workflow", "boolean"},
	{"tags", regexp.MustCompile(`tags?$|labels?$|keywords?$`), 0.75, "content", "array"},
}

// Recognize returns every pattern matching the field name, ordered by
// confidence (highest first, table order on ties). Unmatched names yield
// an empty result, never an error.
func Recognize(fieldName string) []Match {
	lower := strings.ToLower(fieldName)
	var matches []Match
	for _, def := range definitions {
		if !def.re.MatchString(lower) {
			continue
		}
		confidence := def.weight
		if lower == def.name {
			confidence *= canonicalBoost
			if confidence > 1.0 {
				confidence = 1.0
			}
		}
		matches = append(matches, Match{
			Name:       def.name,
			Confidence: confidence,
			Category:   def.category,
			Generator:  def.generator,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	return matches
}

// Known reports whether a pattern name exists in the table. Used by tests
// and by callers validating generator hints.
func Known(name string) bool {
	for _, def := range definitions {
		if def.name == name {
			return true
		}
	}
	return false
}
