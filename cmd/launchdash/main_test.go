package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	fullCSV  = "../../testdata/spacex_launch_dash.csv"
	smallCSV = "../../testdata/launches_small.csv"
)

// resetFlags restores every flag to its default so commands can run
// repeatedly in one process.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	configPath = ""
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSummary_Markdown(t *testing.T) {
	out, err := execute(t, "summary", "--csv", fullCSV, "--markdown")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	for _, want := range []string{"| Site", "CCAFS LC-40", "KSC LC-39A", "76.9%", "All Sites", "42.9%"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestSummary_SingleSite(t *testing.T) {
	out, err := execute(t, "summary", "--csv", smallCSV, "--site", "KSC LC-39A", "--csv-out")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !strings.Contains(out, "KSC LC-39A,3,2,1") {
		t.Errorf("unexpected CSV summary:\n%s", out)
	}
	if strings.Contains(out, "VAFB") {
		t.Errorf("other sites leaked into a single-site summary:\n%s", out)
	}
}

func TestSummary_MissingDataset(t *testing.T) {
	_, err := execute(t, "summary", "--csv", filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("expected an error for a missing dataset")
	}
}

func TestConfig_EnvAndFlags(t *testing.T) {
	t.Setenv("LAUNCHDASH_SERVER_PORT", "9090")
	out, err := execute(t, "config", "--log-level", "debug")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{"port: 9090", "level: debug", "slider_step: 1000", "bind: 127.0.0.1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in config output:\n%s", want, out)
		}
	}
}

func TestConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launchdash.yaml")
	yml := "dashboard:\n  title: Falcon Board\nchart:\n  width: 640\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "config", "--config", path)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "title: Falcon Board") || !strings.Contains(out, "width: 640") {
		t.Errorf("config file not applied:\n%s", out)
	}
}

func TestConfig_InvalidLogFormat(t *testing.T) {
	if _, err := execute(t, "config", "--log-format", "xml"); err == nil {
		t.Fatal("expected validation error for log format xml")
	}
}

func TestImportThenSummaryFromStore(t *testing.T) {
	db := filepath.Join(t.TempDir(), "store", "launches.db")

	out, err := execute(t, "import", "--csv", smallCSV, "--to", db)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "Imported 8 launches") {
		t.Errorf("unexpected import output: %s", out)
	}

	out, err = execute(t, "summary", "--db", db, "--csv-out")
	if err != nil {
		t.Fatalf("summary --db: %v", err)
	}
	for _, want := range []string{"CCAFS LC-40,2,1,1", "CCAFS SLC-40,1,0,1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in store summary:\n%s", want, out)
		}
	}
}

func TestSummary_EmptyStore(t *testing.T) {
	db := filepath.Join(t.TempDir(), "empty.db")
	_, err := execute(t, "summary", "--db", db)
	if err == nil || !strings.Contains(err.Error(), "holds no launches") {
		t.Fatalf("err = %v, want empty-store error", err)
	}
}

func TestRender_WritesSnapshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snap")
	_, err := execute(t, "render", "--csv", smallCSV, "--out", dir,
		"--site", "KSC LC-39A", "--low", "1000", "--high", "6000", "--png")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, name := range []string{"index.html", "pie.svg", "scatter.svg", "pie.png", "scatter.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	page, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"SpaceX Launch Records Dashboard",
		"KSC LC-39A",
		"1,000 kg",
		"6,000 kg",
		"<svg",
		"Success vs Failed Launches for Site KSC LC-39A",
	} {
		if !strings.Contains(string(page), want) {
			t.Errorf("expected %q in index.html", want)
		}
	}
}
