package queries

import "testing"

func TestParseSort(t *testing.T) {
	allowed := map[string]string{
		"id":        "id",
		"title":     "title",
		"authorId":  "author_id",
		"createdAt": "created_at",
	}

	tests := []struct {
		name  string
		key   string
		order string
		want  string
	}{
		{"allowed key", "title", "asc", "title ASC"},
		{"mapped key", "authorId", "desc", "author_id DESC"},
		{"unknown key falls back", "password", "desc", "id DESC"},
		{"injection attempt falls back", "id; DROP TABLE users", "asc", "id ASC"},
		{"empty key falls back", "", "", "id DESC"},
		{"unknown order means desc", "title", "sideways", "title DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseSort(tt.key, tt.order, allowed, "id").Clause(); got != tt.want {
				t.Errorf("ParseSort(%q, %q).Clause() = %q, want %q", tt.key, tt.order, got, tt.want)
			}
		})
	}
}
