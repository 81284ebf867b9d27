package exporter

import (
	"strings"
	"testing"
)

func TestRewriteLeavesNoOriginalReferences(t *testing.T) {
	assets := []mediaAsset{
		{
			OriginalName: "image1.png",
			RenamedName:  "Page-image1-123.png",
			RefPath:      "../media/Page-image1-123.png",
		},
		{
			OriginalName: "Report.pdf",
			RenamedName:  "Page-Report-124.pdf",
			RefPath:      "../media/Page-Report-124.pdf",
			Inserted:     true,
		},
	}
	text := "See ![img](/abs/root/media/image1.png) and the attached Report.pdf.\n"

	got := rewriteReferences(text, assets, "/abs/root", "..", false, false)

	if strings.Contains(got, "image1.png") && !strings.Contains(got, "Page-image1-123.png") {
		t.Fatalf("original image name survived: %q", got)
	}
	if strings.Count(got, "Page-image1-123.png") != 1 {
		t.Errorf("expected exactly one renamed image ref: %q", got)
	}
	if strings.Contains(got, "Report.pdf") && !strings.Contains(got, "Page-Report-124.pdf") {
		t.Fatalf("original attachment name survived: %q", got)
	}
	if !strings.Contains(got, "[Page-Report-124.pdf](../media/Page-Report-124.pdf)") {
		t.Errorf("expected markdown link for inserted asset: %q", got)
	}
	if strings.Contains(got, "/abs/root") {
		t.Errorf("absolute media root survived: %q", got)
	}
	if !strings.Contains(got, "(../media/Page-image1-123.png)") {
		t.Errorf("expected relative image ref: %q", got)
	}
}

func TestRewriteHandlesRawHTMLReferences(t *testing.T) {
	assets := []mediaAsset{{
		OriginalName: "chart.png",
		RenamedName:  "P-chart-9.png",
		RefPath:      "media/P-chart-9.png",
	}}
	text := `<img src="/abs/root/media/chart.png" width="400">`

	got := rewriteReferences(text, assets, "/abs/root", "", false, false)
	if got != `<img src="media/P-chart-9.png" width="400">` {
		t.Fatalf("html reference not rewritten: %q", got)
	}
}

func TestRewriteTreatsSearchSpecialsLiterally(t *testing.T) {
	assets := []mediaAsset{{
		OriginalName: "Bob's $plan^2.pdf",
		RenamedName:  "P-Bobs-plan2-7.pdf",
		RefPath:      "media/P-Bobs-plan2-7.pdf",
		Inserted:     true,
	}}
	text := "Open Bob's $plan^2.pdf now"

	got := rewriteReferences(text, assets, "", "", false, false)
	if !strings.Contains(got, "[P-Bobs-plan2-7.pdf](media/P-Bobs-plan2-7.pdf)") {
		t.Fatalf("special characters broke literal replacement: %q", got)
	}
	if strings.Contains(got, "Bob's $plan^2.pdf") {
		t.Fatalf("original name survived: %q", got)
	}
}

func TestRewriteCollapseWhitespace(t *testing.T) {
	text := "a b\n\nc"
	got := rewriteReferences(text, nil, "", "", true, false)
	if got != "a\nb\nc" {
		t.Fatalf("collapse result = %q", got)
	}
}

func TestRewriteStripEscapes(t *testing.T) {
	text := `a \( b \) \* c`
	got := rewriteReferences(text, nil, "", "", false, true)
	if got != "a ( b ) * c" {
		t.Fatalf("strip result = %q", got)
	}
}

func TestRewriteStepsAreIndependentlySkippable(t *testing.T) {
	text := "x y \\* /abs/root/media/f.png"
	// No assets, no flags: only the path step applies.
	got := rewriteReferences(text, nil, "/abs/root", "../..", false, false)
	if !strings.Contains(got, "../../media/f.png") {
		t.Errorf("path step skipped incorrectly: %q", got)
	}
	if !strings.Contains(got, " ") || !strings.Contains(got, "\\*") {
		t.Errorf("disabled steps must not run: %q", got)
	}
}
