package core

import "testing"

func TestParseDateDMY(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"05/03/2024", "2024-03-05"},
		{"5/3/2024", "2024-03-05"},
		{"31/12/2023", "2023-12-31"},
		{"01/01/2000", "2000-01-01"},
		{"29/02/2024", "2024-02-29"}, // leap day
	}
	for _, tc := range cases {
		if got := ParseDate(tc.in).ISO(); got != tc.want {
			t.Fatalf("ParseDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseDateInvalid(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"13/45/2024",  // month 45
		"32/01/2024",  // day 32
		"29/02/2023",  // not a leap year
		"not-a-date",
		"05/03",       // too few segments
		"a/b/c",
		"1/2/3/4",
	}
	for _, in := range cases {
		d := ParseDate(in)
		if !d.IsZero() {
			t.Fatalf("ParseDate(%q) = %q, want zero", in, d.ISO())
		}
		if d.ISO() != "" {
			t.Fatalf("zero date ISO() = %q, want empty", d.ISO())
		}
	}
}

func TestParseDateFallbackLayouts(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-03-05", "2024-03-05"},
		{"2024-03-05T10:30:00Z", "2024-03-05"},
		{"2024-03-05 10:30:00", "2024-03-05"},
	}
	for _, tc := range cases {
		if got := ParseDate(tc.in).ISO(); got != tc.want {
			t.Fatalf("ParseDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDateJSON(t *testing.T) {
	d := ParseDate("05/03/2024")
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-03-05"` {
		t.Fatalf("marshal got %s", b)
	}

	var zero Date
	b, _ = zero.MarshalJSON()
	if string(b) != `""` {
		t.Fatalf("zero marshal got %s", b)
	}

	var back Date
	if err := back.UnmarshalJSON([]byte(`"2024-03-05"`)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ISO() != "2024-03-05" {
		t.Fatalf("unmarshal got %q", back.ISO())
	}
}
