package display

import "testing"

func TestOutcome(t *testing.T) {
	cases := []struct {
		class int
		want  string
	}{
		{1, "Success"},
		{0, "Failure"},
		{2, "2"},
		{-1, "-1"},
	}
	for _, tc := range cases {
		if got := Outcome(tc.class); got != tc.want {
			t.Errorf("Outcome(%d) = %q, want %q", tc.class, got, tc.want)
		}
	}
}

func TestSite(t *testing.T) {
	if got := Site("ALL"); got != "All Sites" {
		t.Errorf("Site(ALL) = %q", got)
	}
	if got := Site("KSC LC-39A"); got != "KSC LC-39A" {
		t.Errorf("Site(KSC LC-39A) = %q", got)
	}
}

func TestKilograms(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0 kg"},
		{525, "525 kg"},
		{9600, "9,600 kg"},
		{3696.65, "3,696.65 kg"},
		{1234567, "1,234,567 kg"},
		{-1500, "-1,500 kg"},
	}
	for _, tc := range cases {
		if got := Kilograms(tc.in); got != tc.want {
			t.Errorf("Kilograms(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(3, 7); got != "42.9%" {
		t.Errorf("Percent(3,7) = %q", got)
	}
	if got := Percent(0, 0); got != "-" {
		t.Errorf("Percent(0,0) = %q", got)
	}
}
