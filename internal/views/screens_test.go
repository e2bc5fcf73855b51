package views

import (
	"strings"
	"testing"
)

func TestProgressBar(t *testing.T) {
	cases := []struct {
		progress  int
		frequency int
		want      string
	}{
		{0, 3, "[...]"},
		{2, 3, "[##.]"},
		{3, 3, "[###]"},
		{5, 3, "[###]"},
		{1, 0, ""},
	}
	for _, tc := range cases {
		if got := progressBar(tc.progress, tc.frequency); got != tc.want {
			t.Errorf("progressBar(%d, %d) = %q, want %q", tc.progress, tc.frequency, got, tc.want)
		}
	}
}

func TestRenderTodayPanelListsTasks(t *testing.T) {
	out := RenderTodayPanel(TodayPanelData{
		Date: "2026-08-24",
		Rate: "50%",
		Items: []TaskRowData{
			{Name: "stretch", Done: true},
			{Name: "journal", Priority: "High", Category: "Health"},
		},
		Cursor: 1,
	})
	for _, want := range []string{"2026-08-24", "50%", "stretch", "journal", "!High", "@Health"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTodayPanelEmpty(t *testing.T) {
	out := RenderTodayPanel(TodayPanelData{Date: "2026-08-24"})
	if !strings.Contains(out, "nothing scheduled") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestFeedbackMarkdown(t *testing.T) {
	md := FeedbackMarkdown("Solid week.", []string{"Sleep more"})
	if !strings.Contains(md, "## Analysis") || !strings.Contains(md, "- Sleep more") {
		t.Errorf("markdown = %q", md)
	}

	noRecs := FeedbackMarkdown("Quiet week.", nil)
	if strings.Contains(noRecs, "Recommendations") {
		t.Errorf("unexpected recommendations section: %q", noRecs)
	}
}
