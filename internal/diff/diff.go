// Package diff produces unified diffs between class reports.
// It uses github.com/pmezard/go-difflib/difflib to produce classic unified
// patches (---/+++ headers, @@ hunks, lines prefixed with ' ', '-', '+').
package diff

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	difflib "github.com/pmezard/go-difflib/difflib"

	"javatools/internal/inspect"
	"javatools/internal/render"
)

// Options controls patch generation behavior.
type Options struct {
	// MaxBytes is a guardrail on input size (old+new). When exceeded,
	// a minimal placeholder patch is returned and oversize=true.
	// 0 means "no limit".
	MaxBytes int

	// Context controls the number of CONTEXT LINES in unified hunks.
	// If 0, default to 4.
	Context int
}

// Reports renders both reports as JSON and diffs them. Headers carry the
// class names. An empty string means the reports are identical.
func Reports(a, b *inspect.ClassReport, opt Options) (string, error) {
	ja, err := render.ReportJSON(a)
	if err != nil {
		return "", errors.Wrapf(err, "failed to encode %v", a.Name)
	}
	jb, err := render.ReportJSON(b)
	if err != nil {
		return "", errors.Wrapf(err, "failed to encode %v", b.Name)
	}
	body, _ := Unified(a.Name, b.Name, append(ja, '\n'), append(jb, '\n'), opt)
	return body, nil
}

// Unified produces a classic unified patch for a↦b.
// Returns the patch body and a flag indicating it was omitted due to size.
func Unified(aName, bName string, a, b []byte, opt Options) (body string, oversize bool) {
	// Size guardrail.
	if opt.MaxBytes > 0 && (len(a)+len(b)) > opt.MaxBytes {
		return omitted(aName, bName), true
	}

	ctx := opt.Context
	if ctx <= 0 {
		ctx = 4
	}

	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(string(a)),
		B:        splitLinesKeepNL(string(b)),
		FromFile: aName,
		ToFile:   bName,
		Context:  ctx,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return omitted(aName, bName), false
	}
	return s, false
}

// splitLinesKeepNL splits into lines and keeps newline characters,
// which produces better unified hunks.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}

// omitted returns a compact placeholder when size limits are exceeded.
func omitted(aName, bName string) string {
	return fmt.Sprintf("--- %s\n+++ %s\n@@\n# diff omitted (oversize)\n", aName, bName)
}
