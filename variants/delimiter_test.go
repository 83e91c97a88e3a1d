package variants

import "testing"

func TestGenerateDelimiter(t *testing.T) {
	first, err := GenerateDelimiter()
	if err != nil {
		t.Fatalf("GenerateDelimiter: %v", err)
	}
	second, err := GenerateDelimiter()
	if err != nil {
		t.Fatalf("GenerateDelimiter: %v", err)
	}

	if first == second {
		t.Fatalf("expected distinct tokens, got %q twice", first)
	}
	if !IsDelimiterToken(first) {
		t.Fatalf("generated token %q failed shape check", first)
	}
}

func TestIsDelimiterToken(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{DefaultDelimiter, true},
		{"<|RELATED_DOC_SEP-abc123|>", true},
		{"<|RELATED_DOC_SEP-|>", false},
		{"<|RELATED_DOC_SEP-zzzz|>", false},
		{"RELATED_DOC_SEP-abc123", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsDelimiterToken(tc.value); got != tc.want {
			t.Fatalf("IsDelimiterToken(%q): expected %v, got %v", tc.value, tc.want, got)
		}
	}
}

func TestSplitWithGeneratedDelimiter(t *testing.T) {
	token, err := GenerateDelimiter()
	if err != nil {
		t.Fatalf("GenerateDelimiter: %v", err)
	}

	raw := "draft" + token + "final"
	segments, err := Split(raw, token)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(segments) != 2 || segments[0] != "draft" || segments[1] != "final" {
		t.Fatalf("unexpected segments: %#v", segments)
	}
	if Join(segments, token) != raw {
		t.Fatalf("round trip failed for generated delimiter")
	}
}
