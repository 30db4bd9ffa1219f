// Package pdftext turns a PDF file into plain text, one rebuilt line per text row.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/payslips-extractor/internal/common"
)

// ErrNoText is returned when neither the PDF reader nor pdftotext find any text.
var ErrNoText = errors.New("no extractable text")

const (
	MethodReader    = "pdf-reader"
	MethodPdftotext = "pdftotext"
)

type Config struct {
	Pdftotext string // binary used when the reader yields no text; empty disables the fallback
	MaxPages  int    // 0 = no limit
}

type Result struct {
	Text     string
	Pages    int
	Method   string
	Duration time.Duration
	Warnings []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// WithRunner swaps the command runner used for the pdftotext fallback.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// Extract reads path and returns its normalized text. Every failure is a
// document read error so the caller can skip the file and keep going.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	content, err := os.ReadFile(path)
	if err != nil {
		return Result{}, common.NewDocumentReadError(path, err)
	}

	res, err := e.readPages(content)
	if err != nil {
		e.logger.Debug("pdftext.reader.failed", "path", path, "error", err)
		return Result{Duration: time.Since(start)}, common.NewDocumentReadError(path, err)
	}

	if strings.TrimSpace(res.Text) == "" && e.cfg.Pdftotext != "" {
		text, warns, err := e.pdfToText(ctx, path)
		res.Warnings = append(res.Warnings, warns...)
		if err == nil {
			res.Text = text
			res.Method = MethodPdftotext
		}
	}

	res.Text = Normalize(res.Text)
	res.Duration = time.Since(start)
	if res.Text == "" {
		return res, common.NewDocumentReadError(path, ErrNoText)
	}

	e.logger.Debug("pdftext.extract.ok",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(res.Text),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

// readPages walks every page with the pure-Go reader. The reader panics on some
// malformed streams; that is reported as an error like any other parse failure.
func (e *Extractor) readPages(content []byte) (res Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("pdf reader panic: %v", p)
		}
	}()

	if len(content) == 0 {
		return Result{}, fmt.Errorf("empty PDF content")
	}
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return Result{}, fmt.Errorf("open pdf: %w", err)
	}

	res.Method = MethodReader
	res.Pages = r.NumPage()
	last := res.Pages
	if e.cfg.MaxPages > 0 && last > e.cfg.MaxPages {
		last = e.cfg.MaxPages
		res.Warnings = append(res.Warnings, fmt.Sprintf("only the first %d of %d pages were read", last, res.Pages))
	}

	var text strings.Builder
	for i := 1; i <= last; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, perr := pageLines(page)
		if perr != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("page %d: %v", i, perr))
			continue
		}
		if pageText == "" {
			continue
		}
		if text.Len() > 0 {
			text.WriteString("\n\n")
		}
		text.WriteString(pageText)
	}
	res.Text = text.String()
	return res, nil
}

// pageLines rebuilds the page text from glyph positions: glyphs are grouped
// into lines by baseline, top to bottom, and each line is read left to right.
// A space is inserted where the gap to the previous glyph exceeds a fifth of
// the font size. Pages without positioned glyphs fall back to plain text.
func pageLines(page pdf.Page) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("content stream: %v", p)
		}
	}()

	var glyphs []pdf.Text
	for _, t := range page.Content().Text {
		if t.S == "" || t.S == "\n" {
			continue
		}
		glyphs = append(glyphs, t)
	}
	if len(glyphs) == 0 {
		return page.GetPlainText(nil)
	}
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].Y > glyphs[j].Y })

	var lines []string
	start := 0
	for i := 1; i <= len(glyphs); i++ {
		if i < len(glyphs) && sameLine(glyphs[start], glyphs[i]) {
			continue
		}
		if line := joinGlyphs(glyphs[start:i]); line != "" {
			lines = append(lines, line)
		}
		start = i
	}
	return strings.Join(lines, "\n"), nil
}

// sameLine reports whether b sits on the baseline of a, allowing for rise.
func sameLine(a, b pdf.Text) bool {
	return math.Abs(a.Y-b.Y) <= math.Max(1, 0.3*a.FontSize)
}

func joinGlyphs(glyphs []pdf.Text) string {
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].X < glyphs[j].X })

	var b strings.Builder
	end := glyphs[0].X
	for i, g := range glyphs {
		if i > 0 && g.X-end > 0.2*g.FontSize && g.S != " " && !strings.HasSuffix(b.String(), " ") {
			b.WriteByte(' ')
		}
		b.WriteString(g.S)
		end = math.Max(end, g.X+g.W)
	}
	return strings.TrimSpace(b.String())
}

func (e *Extractor) pdfToText(ctx context.Context, path string) (string, []string, error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	args := []string{"-layout", "-enc", "UTF-8", "-eol", "unix"}
	if e.cfg.MaxPages > 0 {
		args = append(args, "-l", fmt.Sprintf("%d", e.cfg.MaxPages))
	}
	args = append(args, path, "-")
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, args...)
	if err != nil {
		return "", []string{strings.TrimSpace(string(errb))}, err
	}
	return string(out), nil, nil
}
