package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/avele/onemark/internal/app/exporter"
	"github.com/avele/onemark/internal/infra/converter"
	"github.com/avele/onemark/internal/infra/notebookjson"
	"github.com/avele/onemark/internal/logger"
)

var (
	summaryStyle = lipgloss.NewStyle().Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func main() {
	var (
		input           string
		output          string
		notebook        string
		prefixMode      string
		mediaScope      string
		flavor          string
		frontMatter     string
		timestampHeader bool
		collapseSpace   bool
		stripEscapes    bool
		preserveSpaces  bool
	)

	flag.StringVar(&input, "input", "./notebook-export", "Path to the notebook export directory (must contain notebook.json)")
	flag.StringVar(&output, "output", "./markdown-vault", "Destination root for the generated Markdown tree")
	flag.StringVar(&notebook, "notebook", "", "Export only the notebook with this name")
	flag.StringVar(&prefixMode, "hierarchy", "subfolder", "Subpage handling: subfolder or prefix")
	flag.StringVar(&mediaScope, "media-scope", "centralized", "Media location: centralized or perFolder")
	flag.StringVar(&flavor, "flavor", "markdown", "Converter flavor: markdown, markdown_strict, gfm, commonmark, or html")
	flag.StringVar(&frontMatter, "front-matter", "heading", "Front-matter style: heading or yaml")
	flag.BoolVar(&timestampHeader, "timestamp-header", false, "Insert the page creation timestamp under the title")
	flag.BoolVar(&collapseSpace, "collapse-whitespace", false, "Collapse converter whitespace artifacts")
	flag.BoolVar(&stripEscapes, "strip-escapes", false, "Strip backslash escapes emitted by the converter")
	flag.BoolVar(&preserveSpaces, "preserve-spaces", false, "Keep spaces in file and folder names instead of dashes")
	flag.Parse()

	// Optional: a .env file can override the log level.
	_ = godotenv.Load()
	logLevel := os.Getenv("ONEMARK_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	if err := logger.Init(logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q: %v\n", logLevel, err)
		os.Exit(1)
	}

	source, err := notebookjson.Open(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open notebook export: %v\n", err)
		os.Exit(1)
	}

	conv, err := converter.New(flavor)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	exp := exporter.Exporter{
		Source:                 source,
		Converter:              conv,
		DestinationRoot:        output,
		NotebookFilter:         notebook,
		PrefixMode:             prefixMode,
		MediaScope:             mediaScope,
		FrontMatterStyle:       frontMatter,
		IncludeTimestampHeader: timestampHeader,
		CollapseWhitespace:     collapseSpace,
		StripEscapes:           stripEscapes,
		PreserveSpacesInNames:  preserveSpaces,
	}

	stats, err := exp.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}

	printSummary(stats)
	if stats.HasFailures() {
		os.Exit(2)
	}
}

func printSummary(stats exporter.Stats) {
	fmt.Println(summaryStyle.Render(fmt.Sprintf(
		"exported %d notebooks, %d pages, %d media files", stats.Notebooks, stats.Pages, stats.Media)))

	if !stats.HasFailures() {
		fmt.Println(okStyle.Render("no failures"))
		return
	}

	fmt.Println(failStyle.Render(fmt.Sprintf("%d failures:", len(stats.Failures))))
	for _, f := range stats.Failures {
		fmt.Println(failStyle.Render("  - " + f.Error()))
	}
}
