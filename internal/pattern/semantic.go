package pattern

import "strings"

// Semantic is the best-guess business meaning of a field, inferred from
// its name and declared type.
type Semantic struct {
	Category   string
	Confidence float64
}

// semanticThreshold is the minimum score a category must reach to win.
const semanticThreshold = 0.5

type semanticDef struct {
	category string
	score    func(name, fieldType string) float64
}

func substringScore(name string, base float64, terms ...string) float64 {
	score := 0.0
	for _, term := range terms {
		if strings.Contains(name, term) {
			score += base
		}
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// Scoring functions combine name-substring hits with a type-compatibility
// bump. Ties between categories resolve by table order (first wins).
var semanticDefs = []semanticDef{
	{"personal_info", func(name, fieldType string) float64 {
		score := substringScore(name, 0.4, "name", "age", "gender", "birth", "avatar", "bio")
		if score > 0 && (fieldType == "string" || fieldType == "number" || fieldType == "date") {
			score += 0.2
		}
		return score
	}},
	{"contact", func(name, fieldType string) float64 {
		score := substringScore(name, 0.45, "email", "phone", "address", "city", "zip", "contact")
		if score > 0 && fieldType == "string" {
			score += 0.2
		}
		return score
	}},
	{"financial", func(name, fieldType string) float64 {
		score := substringScore(name, 0.4, "price", "cost", "amount", "balance", "salary", "fee", "payment", "currency")
		if score > 0 && (fieldType == "number" || fieldType == "decimal128") {
			score += 0.25
		}
		return score
	}},
	{"credentials", func(name, fieldType string) float64 {
		score := substringScore(name, 0.45, "password", "token", "secret", "username", "login", "apikey", "api_key")
		if score > 0 && fieldType == "string" {
			score += 0.2
		}
		return score
	}},
	{"content", func(name, fieldType string) float64 {
		score := substringScore(name, 0.35, "title", "description", "body", "text", "comment", "summary", "content", "slug")
		if score > 0 && fieldType == "string" {
			score += 0.25
		}
		return score
	}},
	{"temporal", func(name, fieldType string) float64 {
		score := substringScore(name, 0.35, "date", "time", "created", "updated", "expires", "schedule", "at")
		if fieldType == "date" {
			score += 0.3
		}
		return score
	}},
	{"workflow", func(name, fieldType string) float64 {
		score := substringScore(name, 0.4, "status", "state", "stage", "phase", "active", "enabled", "approved")
		if score > 0 && (fieldType == "string" || fieldType == "boolean") {
			score += 0.2
		}
		return score
	}},
	{"geo", func(name, fieldType string) float64 {
		score := substringScore(name, 0.45, "lat", "lng", "lon", "coordinates", "location", "country", "region")
		if score > 0 && (fieldType == "number" || fieldType == "string" || fieldType == "array") {
			score += 0.15
		}
		return score
	}},
	{"inventory", func(name, fieldType string) float64 {
		score := substringScore(name, 0.4, "quantity", "stock", "sku", "inventory", "units")
		if score > 0 && (fieldType == "number" || fieldType == "string") {
			score += 0.2
		}
		return score
	}},
}

// AnalyzeSemantics scores the field against every semantic definition and
// returns the highest-scoring category at or above the threshold. The
// second return is false when nothing qualifies.
func AnalyzeSemantics(fieldName, fieldType string) (Semantic, bool) {
	lower := strings.ToLower(fieldName)

	best := Semantic{}
	for _, def := range semanticDefs {
		score := def.score(lower, fieldType)
		if score > 1.0 {
			score = 1.0
		}
		// Strictly greater: earlier definitions win ties.
		if score > best.Confidence {
			best = Semantic{Category: def.category, Confidence: score}
		}
	}
	if best.Confidence < semanticThreshold {
		return Semantic{}, false
	}
	return best, true
}
