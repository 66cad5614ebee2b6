package random

import (
	"fmt"
	"strings"
)

var firstNames = []string{
	"John", "Jane", "Alice", "Bob", "Charlie", "Diana", "Eve", "Frank",
	"Grace", "Henry", "Ivy", "Jack", "Karen", "Liam", "Mia", "Noah",
	"Olivia", "Paul", "Quinn", "Rosa", "Sam", "Tina", "Victor", "Wendy",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Wilson", "Anderson", "Taylor",
	"Thomas", "Moore", "Jackson", "Martin", "Lee", "Thompson", "White",
}

var loremWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing",
	"elit", "sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore",
	"et", "dolore", "magna", "aliqua", "enim", "ad", "minim", "veniam",
	"quis", "nostrud", "exercitation", "ullamco", "laboris", "nisi",
	"aliquip", "ex", "ea", "commodo", "consequat",
}

var domains = []string{"example.com", "test.com", "demo.com", "mail.com", "sample.org"}

var companySuffixes = []string{"Inc", "LLC", "Group", "Labs", "Systems", "Solutions", "Industries"}

var companyStems = []string{
	"Acme", "Globex", "Initech", "Umbrella", "Vertex", "Nimbus", "Quantum",
	"Pioneer", "Summit", "Horizon", "Atlas", "Orbit", "Cascade", "Beacon",
}

var cities = []string{
	"Springfield", "Riverside", "Franklin", "Greenville", "Bristol",
	"Clinton", "Fairview", "Salem", "Madison", "Georgetown",
}

var countries = []string{
	"United States", "Canada", "United Kingdom", "Germany", "France",
	"Japan", "Australia", "Brazil", "India", "Spain",
}

var colorNames = []string{
	"red", "blue", "green", "yellow", "purple", "orange", "teal",
	"maroon", "navy", "olive", "silver", "coral",
}

var jobTitles = []string{
	"Software Engineer", "Product Manager", "Data Analyst", "Designer",
	"Account Executive", "Operations Lead", "Support Specialist",
	"Marketing Coordinator", "QA Engineer", "Technical Writer",
}

var streetNames = []string{
	"Main Street", "Oak Avenue", "Maple Drive", "Cedar Lane",
	"Park Road", "Elm Street", "Washington Boulevard", "Lake View",
}

// FirstName returns a random given name.
func (s *Source) FirstName() string { return Pick(s, firstNames) }

// LastName returns a random family name.
func (s *Source) LastName() string { return Pick(s, lastNames) }

// FullName returns "First Last".
func (s *Source) FullName() string {
	return s.FirstName() + " " + s.LastName()
}

// Username returns a lowercase handle like "alice_smith42".
func (s *Source) Username() string {
	return fmt.Sprintf("%s_%s%d",
		strings.ToLower(s.FirstName()),
		strings.ToLower(s.LastName()),
		s.Intn(100))
}

// Email returns a unique-leaning address; the record index keeps repeated
// draws distinct without a retry loop in the common case.
func (s *Source) Email() string {
	return fmt.Sprintf("%s.%s%d@%s",
		strings.ToLower(s.FirstName()),
		strings.ToLower(s.LastName()),
		s.Intn(10000),
		Pick(s, domains))
}

// Domain returns a bare host name.
func (s *Source) Domain() string { return Pick(s, domains) }

// URL returns an https URL on a sample domain.
func (s *Source) URL() string {
	return fmt.Sprintf("https://%s/%s/%d", Pick(s, domains), s.Word(), s.Intn(1000))
}

// ImageURL returns a plausible image location.
func (s *Source) ImageURL() string {
	return fmt.Sprintf("https://%s/images/%s.jpg", Pick(s, domains), s.Hex(8))
}

// Phone returns a +1-NNN-NNN-NNNN number.
func (s *Source) Phone() string {
	return fmt.Sprintf("+1-%03d-%03d-%04d", s.IntBetween(200, 999), s.Intn(1000), s.Intn(10000))
}

// Address returns a single-line street address.
func (s *Source) Address() string {
	return fmt.Sprintf("%d %s, %s %05d", s.IntBetween(1, 9999), Pick(s, streetNames), Pick(s, cities), s.Intn(100000))
}

// City returns a city name.
func (s *Source) City() string { return Pick(s, cities) }

// Country returns a country name.
func (s *Source) Country() string { return Pick(s, countries) }

// Company returns a company name like "Vertex Labs".
func (s *Source) Company() string {
	return Pick(s, companyStems) + " " + Pick(s, companySuffixes)
}

// JobTitle returns a job title.
func (s *Source) JobTitle() string { return Pick(s, jobTitles) }

// ColorName returns a named color.
func (s *Source) ColorName() string { return Pick(s, colorNames) }

// HexColor returns "#rrggbb".
func (s *Source) HexColor() string { return "#" + s.Hex(6) }

// Word returns a single lorem word.
func (s *Source) Word() string { return Pick(s, loremWords) }

// Words returns n space-joined lorem words.
func (s *Source) Words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = Pick(s, loremWords)
	}
	return strings.Join(parts, " ")
}

// Sentence returns a capitalized lorem sentence of 6-12 words.
func (s *Source) Sentence() string {
	text := s.Words(s.IntBetween(6, 12))
	return strings.ToUpper(text[:1]) + text[1:] + "."
}

// Paragraph returns 2-4 sentences.
func (s *Source) Paragraph() string {
	n := s.IntBetween(2, 4)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = s.Sentence()
	}
	return strings.Join(parts, " ")
}

// Slug returns a hyphenated lowercase slug of 2-4 words.
func (s *Source) Slug() string {
	n := s.IntBetween(2, 4)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = Pick(s, loremWords)
	}
	return strings.Join(parts, "-")
}

// Password returns a 12-16 char mixed-charset password.
func (s *Source) Password() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%"
	n := s.IntBetween(12, 16)
	out := make([]byte, n)
	for i := range out {
		out[i] = charset[s.Intn(len(charset))]
	}
	return string(out)
}

// IP returns a dotted-quad IPv4 address.
func (s *Source) IP() string {
	return fmt.Sprintf("%d.%d.%d.%d", s.IntBetween(1, 254), s.Intn(256), s.Intn(256), s.IntBetween(1, 254))
}
