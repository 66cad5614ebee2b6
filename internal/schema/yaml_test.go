package schema

import (
	"os"
	"path/filepath"
	"testing"
)

const userYAML = `name: User
fields:
  name:
    type: string
    required: true
  email:
    type: string
    unique: true
  age:
    type: number
    min: 18
    max: 65
  status:
    type: string
    enum: [active, pending, banned]
  profile:
    type: object
    fields:
      bio:
        type: string
      website:
        type: string
  createdAt:
    type: date
    min_date: "2020-01-01T00:00:00Z"
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(userYAML))
	if err != nil {
		t.Fatalf("Failed to parse schema: %v", err)
	}
	if s.Name != "User" {
		t.Errorf("Expected name 'User', got '%s'", s.Name)
	}
	if len(s.Fields) != 6 {
		t.Fatalf("Expected 6 fields, got %d", len(s.Fields))
	}

	// Declaration order must survive the YAML round trip.
	order := []string{"name", "email", "age", "status", "profile", "createdAt"}
	for i, want := range order {
		if s.Fields[i].Name != want {
			t.Errorf("Field %d: expected '%s', got '%s'", i, want, s.Fields[i].Name)
		}
	}

	age := s.Field("age")
	if age.Min == nil || *age.Min != 18 {
		t.Error("Expected age min 18")
	}
	if age.Max == nil || *age.Max != 65 {
		t.Error("Expected age max 65")
	}

	status := s.Field("status")
	if len(status.Enum) != 3 || status.Enum[0] != "active" {
		t.Errorf("Unexpected enum: %v", status.Enum)
	}

	profile := s.Field("profile")
	if len(profile.Fields) != 2 || profile.Fields[0].Name != "bio" {
		t.Errorf("Unexpected nested fields: %v", profile.Fields)
	}

	created := s.Field("createdAt")
	if created.MinDate == nil || created.MinDate.Year() != 2020 {
		t.Error("Expected min_date to parse")
	}
}

func TestParseMissingName(t *testing.T) {
	if _, err := Parse([]byte("fields:\n  x:\n    type: string\n")); err == nil {
		t.Error("Expected error for schema without a name")
	}
}

func TestParseNoFields(t *testing.T) {
	s, err := Parse([]byte("name: Empty\n"))
	if err != nil {
		t.Fatalf("Failed to parse schema without fields: %v", err)
	}
	if len(s.Fields) != 0 {
		t.Errorf("Expected no fields, got %d", len(s.Fields))
	}
}

func TestParseFieldsNotMapping(t *testing.T) {
	if _, err := Parse([]byte("name: X\nfields:\n  - name\n  - email\n")); err == nil {
		t.Error("Expected error for fields given as a sequence")
	}
}

func TestParseBadDate(t *testing.T) {
	bad := "name: X\nfields:\n  at:\n    type: date\n    min_date: \"not-a-date\"\n"
	if _, err := Parse([]byte(bad)); err == nil {
		t.Error("Expected error for malformed min_date")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "b_user.yaml"), []byte(userYAML), 0644); err != nil {
		t.Fatalf("Failed to write schema file: %v", err)
	}
	other := "name: Tag\nfields:\n  label:\n    type: string\n"
	if err := os.WriteFile(filepath.Join(dir, "a_tag.yml"), []byte(other), 0644); err != nil {
		t.Fatalf("Failed to write schema file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignore"), 0644); err != nil {
		t.Fatalf("Failed to write extra file: %v", err)
	}

	schemas, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("Failed to load directory: %v", err)
	}
	if len(schemas) != 2 {
		t.Fatalf("Expected 2 schemas, got %d", len(schemas))
	}
	if schemas[0].Name != "Tag" || schemas[1].Name != "User" {
		t.Errorf("Expected file-name ordering, got %s then %s", schemas[0].Name, schemas[1].Name)
	}
}
