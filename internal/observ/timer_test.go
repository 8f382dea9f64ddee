package observ

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestTimer_ReportAndSummary(t *testing.T) {
	timer := NewTimer()
	timer.Record("sniff", 1500*time.Microsecond, "2 files")
	timer.Record("report", 500*time.Microsecond, "")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d", len(report.Phases))
	}
	if report.TotalMS != 2.0 {
		t.Fatalf("total = %v ms, want 2", report.TotalMS)
	}
	if report.Phases[0].Name != "sniff" || report.Phases[0].DurationMS != 1.5 {
		t.Fatalf("first phase = %+v", report.Phases[0])
	}

	var buf bytes.Buffer
	if err := timer.WriteSummary(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"timings:", "sniff", "(2 files)", "total", "2.00 ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestTimer_StartAndNil(t *testing.T) {
	timer := NewTimer()
	stop := timer.Start("load")
	stop("ok")
	if got := timer.Report().Phases; len(got) != 1 || got[0].Note != "ok" {
		t.Fatalf("phases = %+v", got)
	}

	var none *Timer
	none.Start("x")("")
	if len(none.Report().Phases) != 0 {
		t.Fatal("nil timer recorded a phase")
	}
	var buf bytes.Buffer
	if err := none.WriteSummary(&buf); err != nil || buf.Len() != 0 {
		t.Fatalf("nil summary = %q, %v", buf.String(), err)
	}
}
