package sanitize

import (
	"reflect"
	"testing"
)

func newTestSanitizer() *Sanitizer {
	return New(nil)
}

func TestMap_Strings(t *testing.T) {
	s := newTestSanitizer()

	got := s.Map(map[string]any{
		"name": "  Canteen <script>alert(1)</script>  ",
	})

	want := "Canteen &lt;script&gt;alert(1)&lt;/script&gt;"
	if got["name"] != want {
		t.Errorf("name: got %q, want %q", got["name"], want)
	}
}

func TestMap_Integers(t *testing.T) {
	s := newTestSanitizer()

	got := s.Map(map[string]any{
		"capacity": 120,
		"zero":     0,
		"negative": -5,
	})

	if got["capacity"] != int64(120) {
		t.Errorf("capacity: got %v, want 120", got["capacity"])
	}
	if got["zero"] != nil {
		t.Errorf("zero: got %v, want nil", got["zero"])
	}
	if got["negative"] != nil {
		t.Errorf("negative: got %v, want nil", got["negative"])
	}
}

func TestMap_FloatsAndBools(t *testing.T) {
	s := newTestSanitizer()

	got := s.Map(map[string]any{
		"rating":    4.5,
		"certified": true,
		"closed":    false,
	})

	if got["rating"] != 4.5 {
		t.Errorf("rating: got %v, want 4.5", got["rating"])
	}
	if got["certified"] != true {
		t.Errorf("certified: got %v, want true", got["certified"])
	}
	if got["closed"] != false {
		t.Errorf("closed: got %v, want false", got["closed"])
	}
}

func TestMap_UnsupportedTypeNulled(t *testing.T) {
	s := newTestSanitizer()

	got := s.Map(map[string]any{
		"weird": struct{ X int }{X: 1},
	})
	if got["weird"] != nil {
		t.Errorf("weird: got %v, want nil", got["weird"])
	}
}

func TestMap_RecursesNestedMaps(t *testing.T) {
	s := newTestSanitizer()

	got := s.Map(map[string]any{
		"nested": map[string]any{
			"label": " <b>bold</b> ",
			"count": -1,
		},
	})

	nested, ok := got["nested"].(map[string]any)
	if !ok {
		t.Fatalf("nested: got %T, want map", got["nested"])
	}
	if nested["label"] != "&lt;b&gt;bold&lt;/b&gt;" {
		t.Errorf("label: got %q", nested["label"])
	}
	if nested["count"] != nil {
		t.Errorf("count: got %v, want nil", nested["count"])
	}
}

func TestMap_Idempotent(t *testing.T) {
	s := newTestSanitizer()

	in := map[string]any{
		"name":   "Fish & Chips <em>daily</em>",
		"count":  7,
		"rating": 3.5,
		"open":   true,
	}

	once := s.Map(in)
	twice := s.Map(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestEmail(t *testing.T) {
	s := newTestSanitizer()

	if got := s.Email("user@example.com"); got != "user@example.com" {
		t.Errorf("valid email: got %v", got)
	}
	if got := s.Email("not-an-email"); got != nil {
		t.Errorf("invalid email: got %v, want nil", got)
	}
	if got := s.Email(""); got != nil {
		t.Errorf("empty email: got %v, want nil", got)
	}
}

func TestPhone(t *testing.T) {
	s := newTestSanitizer()

	cases := []struct {
		in   string
		want any
	}{
		{"+49 30 123456", "+4930123456"},
		{"(030) 123-4567", "0301234567"},
		{"+491234567890123", "+491234567890123"},
		{"12345", nil},              // too short
		{"+1234567890123456", nil},  // too long
		{"call me maybe", nil},      // no digits
		{"123+4567890", nil},        // interior plus rejects the value
		{"12+345678", nil},          // not silently stripped either
		{"++491234567", nil},        // doubled plus
	}
	for _, tc := range cases {
		if got := s.Phone(tc.in); got != tc.want {
			t.Errorf("Phone(%q): got %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestBool(t *testing.T) {
	s := newTestSanitizer()

	cases := []struct {
		in   any
		want any
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"TRUE ", true},
		{"1", true},
		{"false", false},
		{"0", false},
		{1, true},
		{int64(0), false},
		{float64(1), true},
		{"yes", nil},
		{2, nil},
		{nil, nil},
	}
	for _, tc := range cases {
		if got := s.Bool(tc.in); got != tc.want {
			t.Errorf("Bool(%v): got %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestText_NoTrim(t *testing.T) {
	s := newTestSanitizer()

	got := s.Text("  5 < 7 & 7 > 5  ")
	want := "  5 &lt; 7 &amp; 7 &gt; 5  "
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// Encoding twice must not double-escape.
	if again := s.Text(got); again != want {
		t.Errorf("double encode: got %q, want %q", again, want)
	}
}

func TestDate(t *testing.T) {
	s := newTestSanitizer()

	if got := s.Date("2026-08-31", "2006-01-02"); got != "2026-08-31" {
		t.Errorf("valid date: got %v", got)
	}
	if got := s.Date("2026-02-31", "2006-01-02"); got != nil {
		t.Errorf("overflowing date: got %v, want nil", got)
	}
	if got := s.Date("31/08/2026", "2006-01-02"); got != nil {
		t.Errorf("wrong layout: got %v, want nil", got)
	}
}

func TestJSONBlob(t *testing.T) {
	s := newTestSanitizer()

	got := s.JSONBlob(`{"note": "a <b>tag</b>", "capacity": 0, "nested": {"ok": true}}`)
	if got == nil {
		t.Fatal("expected decoded map, got nil")
	}
	if got["note"] != "a &lt;b&gt;tag&lt;/b&gt;" {
		t.Errorf("note: got %q", got["note"])
	}
	// Encode-only pass keeps numbers even when non-positive.
	if got["capacity"] != float64(0) {
		t.Errorf("capacity: got %v, want 0", got["capacity"])
	}
	nested, ok := got["nested"].(map[string]any)
	if !ok || nested["ok"] != true {
		t.Errorf("nested: got %v", got["nested"])
	}

	if got := s.JSONBlob("not json"); got != nil {
		t.Errorf("malformed blob: got %v, want nil", got)
	}
}
