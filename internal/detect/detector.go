// Package detect decides which payslip layout a document uses.
package detect

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/joseph-ayodele/payslips-extractor/constants"
	"github.com/joseph-ayodele/payslips-extractor/internal/patterns"
)

type formatMatcher struct {
	format constants.Format
	text   *ahocorasick.Matcher
	path   *ahocorasick.Matcher
}

// Detector classifies document text into a layout. The matchers keep match
// state, so a Detector must not be shared across goroutines.
type Detector struct {
	matchers []formatMatcher
}

// NewDetector builds one matcher per layout that declares markers.
// Layouts without markers can only be reached as the Standard fallback.
func NewDetector(table *patterns.Table) *Detector {
	d := &Detector{}
	for _, f := range constants.Formats() {
		if f == constants.Standard {
			continue
		}
		m := table.Markers(f)
		fm := formatMatcher{
			format: f,
			text:   newMatcher(m.TextMarkers),
			path:   newMatcher(m.PathMarkers),
		}
		if fm.text == nil && fm.path == nil {
			continue
		}
		d.matchers = append(d.matchers, fm)
	}
	return d
}

func newMatcher(markers []string) *ahocorasick.Matcher {
	lowered := make([]string, 0, len(markers))
	for _, m := range markers {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			lowered = append(lowered, m)
		}
	}
	if len(lowered) == 0 {
		return nil
	}
	return ahocorasick.NewStringMatcher(lowered)
}

// Detect returns the first layout whose markers occur in the text or the
// document path, case-insensitively. It never fails: unmatched documents are Standard.
func (d *Detector) Detect(text, path string) constants.Format {
	lowerText := []byte(strings.ToLower(text))
	lowerPath := []byte(strings.ToLower(path))
	for _, fm := range d.matchers {
		if fm.text != nil && len(fm.text.Match(lowerText)) > 0 {
			return fm.format
		}
		if fm.path != nil && len(fm.path.Match(lowerPath)) > 0 {
			return fm.format
		}
	}
	return constants.Standard
}
