package summary

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"launchdash/internal/format"
	"launchdash/internal/launch"
)

func loadFull(t *testing.T) *launch.Table {
	t.Helper()
	tbl, err := launch.LoadFile("../../testdata/spacex_launch_dash.csv")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	return tbl
}

func TestCompute_AllSites(t *testing.T) {
	rep := Compute(loadFull(t), launch.AllSites)

	type counts struct {
		Site                string
		Launches, Successes int
	}
	var got []counts
	for _, s := range rep.Sites {
		got = append(got, counts{s.Site, s.Launches, s.Successes})
	}
	want := []counts{
		{"CCAFS LC-40", 26, 7},
		{"VAFB SLC-4E", 10, 4},
		{"KSC LC-39A", 13, 10},
		{"CCAFS SLC-40", 7, 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("per-site counts mismatch (-want +got):\n%s", diff)
	}

	if rep.Total.Launches != 56 || rep.Total.Successes != 24 || rep.Total.Failures() != 32 {
		t.Errorf("total = %+v", rep.Total)
	}
	if rep.Total.MinPayload != 0 || rep.Total.MaxPayload != 9600 {
		t.Errorf("payload range = [%v, %v]", rep.Total.MinPayload, rep.Total.MaxPayload)
	}
}

func TestCompute_SingleSite(t *testing.T) {
	rep := Compute(loadFull(t), "KSC LC-39A")
	if len(rep.Sites) != 1 {
		t.Fatalf("got %d sites, want 1", len(rep.Sites))
	}
	ksc := rep.Sites[0]
	if ksc.Launches != 13 || ksc.Successes != 10 {
		t.Errorf("KSC = %+v", ksc)
	}
	if got := ksc.SuccessRate(); got < 0.769 || got > 0.770 {
		t.Errorf("SuccessRate = %v", got)
	}
	if rep.Total.Launches != 13 {
		t.Errorf("total launches = %d, want 13", rep.Total.Launches)
	}
}

func TestCompute_UnknownSite(t *testing.T) {
	rep := Compute(loadFull(t), "Boca Chica")
	if len(rep.Sites) != 0 || rep.Total.Launches != 0 || rep.Total.SuccessRate() != 0 {
		t.Errorf("rep = %+v, want empty", rep)
	}
	out := rep.Render(format.Markdown)
	if !strings.Contains(out, "All Sites") {
		t.Errorf("empty report should still carry the totals row:\n%s", out)
	}
}

func TestRender(t *testing.T) {
	out := Compute(loadFull(t), launch.AllSites).Render(format.Markdown)
	for _, want := range []string{"KSC LC-39A", "76.9%", "9,600 kg", "All Sites", "42.9%"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in report:\n%s", want, out)
		}
	}
}

func TestRender_ASCIICaption(t *testing.T) {
	rep := Compute(loadFull(t), launch.AllSites)
	if out := rep.Render(format.ASCII); !strings.Contains(out, Caption) {
		t.Errorf("ASCII report has no caption:\n%s", out)
	}
	if out := rep.Render(format.CSV); strings.Contains(out, Caption) {
		t.Errorf("CSV report should not carry the caption:\n%s", out)
	}
}
