package launch_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"launchdash/internal/launch"
)

const smallCSV = "../../testdata/launches_small.csv"

func TestLoadFile_Small(t *testing.T) {
	tbl, err := launch.LoadFile(smallCSV)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if tbl.Len() != 8 {
		t.Fatalf("Len = %d, want 8", tbl.Len())
	}

	lo, hi := tbl.PayloadRange()
	if lo != 0 || hi != 9600 {
		t.Errorf("PayloadRange = [%v, %v], want [0, 9600]", lo, hi)
	}

	wantSites := []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A", "CCAFS SLC-40"}
	if diff := cmp.Diff(wantSites, tbl.Sites()); diff != "" {
		t.Errorf("Sites mismatch (-want +got):\n%s", diff)
	}

	first := tbl.Records()[0]
	want := launch.Record{
		FlightNumber:    1,
		LaunchSite:      "CCAFS LC-40",
		PayloadMassKg:   0,
		Class:           0,
		BoosterVersion:  "F9 v1.0  B0003",
		BoosterCategory: "v1.0",
	}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Errorf("first record mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_FullDataset(t *testing.T) {
	tbl, err := launch.LoadFile("../../testdata/spacex_launch_dash.csv")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if tbl.Len() != 56 {
		t.Errorf("Len = %d, want 56", tbl.Len())
	}
	if got := len(tbl.Filter(launch.Successful())); got != 24 {
		t.Errorf("successful launches = %d, want 24", got)
	}
}

func TestLoadFile_RejectsBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")
	if err := os.WriteFile(path, png, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := launch.LoadFile(path)
	if !errors.Is(err, launch.ErrNotText) {
		t.Fatalf("err = %v, want ErrNotText", err)
	}
}

func TestReadCSV_ColumnOrderFree(t *testing.T) {
	in := "Booster Version Category,class,Launch Site,Payload Mass (kg),Extra\n" +
		"FT,1,KSC LC-39A,2490,x\n"
	tbl, err := launch.ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	got := tbl.Records()
	want := []launch.Record{{LaunchSite: "KSC LC-39A", PayloadMassKg: 2490, Class: 1, BoosterCategory: "FT"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSV_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", launch.ErrMissingColumn},
		{"missing class", "Launch Site,Payload Mass (kg),Booster Version Category\nA,1,FT\n", launch.ErrMissingColumn},
		{"bad payload", "Launch Site,class,Payload Mass (kg),Booster Version Category\nA,1,heavy,FT\n", launch.ErrMalformedRow},
		{"class out of range", "Launch Site,class,Payload Mass (kg),Booster Version Category\nA,2,100,FT\n", launch.ErrMalformedRow},
		{"field count", "Launch Site,class,Payload Mass (kg),Booster Version Category\nA,1,100\n", launch.ErrMalformedRow},
		{"empty site", "Launch Site,class,Payload Mass (kg),Booster Version Category\n,1,100,FT\n", launch.ErrMalformedRow},
		{"nan payload", "Launch Site,class,Payload Mass (kg),Booster Version Category\nA,1,NaN,FT\nB,0,500,v1.0\n", launch.ErrMalformedRow},
		{"inf payload", "Launch Site,class,Payload Mass (kg),Booster Version Category\nA,1,+Inf,FT\n", launch.ErrMalformedRow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := launch.ReadCSV(strings.NewReader(tc.in))
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestReadCSV_ErrorNamesLine(t *testing.T) {
	in := "Launch Site,class,Payload Mass (kg),Booster Version Category\n" +
		"A,1,100,FT\n" +
		"B,1,oops,FT\n"
	_, err := launch.ReadCSV(strings.NewReader(in))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("err = %v, want mention of line 3", err)
	}
}

func TestFilter(t *testing.T) {
	tbl, err := launch.LoadFile(smallCSV)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("all sites matches everything", func(t *testing.T) {
		if got := len(tbl.Filter(launch.AtSite(launch.AllSites))); got != tbl.Len() {
			t.Errorf("got %d rows, want %d", got, tbl.Len())
		}
	})

	t.Run("single site", func(t *testing.T) {
		rows := tbl.Filter(launch.AtSite("KSC LC-39A"))
		if len(rows) != 3 {
			t.Fatalf("got %d rows, want 3", len(rows))
		}
		for _, r := range rows {
			if r.LaunchSite != "KSC LC-39A" {
				t.Errorf("unexpected site %q", r.LaunchSite)
			}
		}
	})

	t.Run("payload bounds inclusive", func(t *testing.T) {
		rows := tbl.Filter(launch.PayloadBetween(2000, 2000))
		if len(rows) != 2 {
			t.Fatalf("got %d rows, want 2", len(rows))
		}
	})

	t.Run("predicates compose", func(t *testing.T) {
		rows := tbl.Filter(launch.AtSite("VAFB SLC-4E"), launch.Successful())
		if len(rows) != 1 || rows[0].FlightNumber != 3 {
			t.Errorf("got %+v, want flight 3 only", rows)
		}
	})
}

func TestNewTable_Empty(t *testing.T) {
	tbl := launch.NewTable(nil)
	lo, hi := tbl.PayloadRange()
	if lo != 0 || hi != 0 {
		t.Errorf("PayloadRange = [%v, %v], want [0, 0]", lo, hi)
	}
	if len(tbl.Sites()) != 0 {
		t.Errorf("Sites = %v, want empty", tbl.Sites())
	}
}

func TestNewTable_CopiesInput(t *testing.T) {
	in := []launch.Record{{LaunchSite: "A", PayloadMassKg: 1}}
	tbl := launch.NewTable(in)
	in[0].LaunchSite = "B"
	if got := tbl.Records()[0].LaunchSite; got != "A" {
		t.Errorf("table mutated through input slice: %q", got)
	}
}
