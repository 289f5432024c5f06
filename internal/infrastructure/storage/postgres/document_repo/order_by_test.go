package document_repo

import "testing"

func TestParseOrderBy(t *testing.T) {
	repo := NewBaseDocumentRepo[any](nil, "test_table", []string{"id", "created_at", "status"}, func() any { return nil })

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{name: "empty falls back to default", orderBy: "", want: "created_at DESC"},
		{name: "plain column ascends", orderBy: "status", want: "status ASC"},
		{name: "minus prefix descends", orderBy: "-created_at", want: "created_at DESC"},
		{name: "plus prefix ascends", orderBy: "+status", want: "status ASC"},
		{name: "unknown column rejected", orderBy: "password_hash", wantErr: true},
		{name: "injection rejected", orderBy: "id; DROP TABLE test_table", wantErr: true},
		{name: "bare prefix rejected", orderBy: "-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy, "created_at DESC")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseOrderBy(%q) expected error, got %q", tt.orderBy, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOrderBy(%q) failed: %v", tt.orderBy, err)
			}
			if got != tt.want {
				t.Errorf("parseOrderBy(%q)\nwant: %s\ngot:  %s", tt.orderBy, tt.want, got)
			}
		})
	}
}
