package ai

import "testing"

func TestUnmarshalFlexible_QueryVariants(t *testing.T) {
	type generated struct {
		Query string `json:"query"`
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "valid json object",
			input: `{"query":"SELECT 1"}`,
			want:  "SELECT 1",
		},
		{
			name:  "unquoted key and single quotes",
			input: `{query: 'SELECT 1'}`,
			want:  "SELECT 1",
		},
		{
			name:  "trailing comma",
			input: `{"query":"SELECT 1",}`,
			want:  "SELECT 1",
		},
		{
			name:  "missing endbracket",
			input: `{"query":"SELECT 1`,
			want:  "SELECT 1",
		},
		{
			name:  "stringified object",
			input: `"{\"query\": \"SELECT 1\"}"`,
			want:  "SELECT 1",
		},
		{
			name:  "duplicate leading brace",
			input: "{\n{\n  \"query\": \"SELECT 1\"\n}\n",
			want:  "SELECT 1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got generated
			if err := UnmarshalFlexible(tc.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if got.Query != tc.want {
				t.Fatalf("UnmarshalFlexible() got = %+v, want query %q", got, tc.want)
			}
		})
	}
}

func TestUnmarshalFlexible_ArrayVariants(t *testing.T) {
	type row struct {
		Name string `json:"name"`
	}

	input := `[{name:'A'},{name:'B',}]`
	var got []row
	if err := UnmarshalFlexible(input, &got); err != nil {
		t.Fatalf("UnmarshalFlexible() error = %v", err)
	}
	if len(got) != 2 || got[0].Name != "A" || got[1].Name != "B" {
		t.Fatalf("UnmarshalFlexible() got = %+v, want two rows A,B", got)
	}
}

func TestUnmarshalFlexible_Unrecoverable(t *testing.T) {
	type row struct {
		Name string `json:"name"`
	}

	var got row
	if err := UnmarshalFlexible("hello", &got); err == nil {
		t.Fatal("UnmarshalFlexible() expected error for unrecoverable input")
	}
}

func TestGenerateSchemaForbidsExtraFields(t *testing.T) {
	type generated struct {
		Query string `json:"query"`
	}

	schema := GenerateSchema(&generated{})
	if schema == nil {
		t.Fatal("GenerateSchema() returned nil")
	}
}
