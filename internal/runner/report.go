package runner

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"

	"github.com/donaldgifford/kantfmt/internal/formatter"
)

// fileReport is the JSON form of the violations of one file.
type fileReport struct {
	File       string                `json:"file"`
	Violations []formatter.Violation `json:"violations"`
}

type reporter struct {
	opts *Options

	fileStyle    *color.Color
	posStyle     *color.Color
	ruleStyle    *color.Color
	summaryStyle *color.Color
}

func newReporter(opts *Options) *reporter {
	r := &reporter{
		opts:         opts,
		fileStyle:    color.New(color.FgCyan, color.Bold),
		posStyle:     color.New(color.FgBlue),
		ruleStyle:    color.New(color.FgYellow),
		summaryStyle: color.New(color.FgRed, color.Bold),
	}
	if opts.NoColor {
		for _, c := range []*color.Color{r.fileStyle, r.posStyle, r.ruleStyle, r.summaryStyle} {
			c.DisableColor()
		}
	}
	return r
}

func (r *reporter) write(results []*fileResult) error {
	if r.opts.JSON {
		return r.writeJSON(r.opts.Stdout, results)
	}
	return r.writeText(results)
}

func (r *reporter) writeJSON(w io.Writer, results []*fileResult) error {
	reports := make([]fileReport, 0, len(results))
	for _, res := range results {
		violations := res.violations
		if violations == nil {
			violations = []formatter.Violation{}
		}
		reports = append(reports, fileReport{File: res.display(), Violations: violations})
	}
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// writeText prints one line per violation:
//
//	Main.kt:3:9: Missing trailing comma before "]" (kantis:adjusted-trailing-comma-on-call-site)
func (r *reporter) writeText(results []*fileResult) error {
	total, files := 0, 0
	for _, res := range results {
		if len(res.violations) == 0 {
			continue
		}
		files++
		for _, v := range res.violations {
			total++
			_, err := fmt.Fprintf(r.opts.Stdout, "%s%s %s %s\n",
				r.fileStyle.Sprint(res.display()),
				r.posStyle.Sprintf(":%d:%d:", v.Line, v.Column),
				v.Message,
				r.ruleStyle.Sprintf("(%s)", v.RuleID),
			)
			if err != nil {
				return err
			}
		}
	}
	if total > 0 && !r.opts.Quiet {
		writeErr(r.opts.Stderr, "%s\n", r.summaryStyle.Sprintf("%d %s in %d %s",
			total, plural(total, "violation"), files, plural(files, "file")))
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
