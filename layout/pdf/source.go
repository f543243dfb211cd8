package pdf

import (
	"fmt"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/layout"
)

const (
	// rowTolerance is the Y distance (points) within which fragments are
	// considered part of the same row.
	rowTolerance = 3.0

	// wordGapFactor is the fraction of the font size an X gap must exceed
	// for a space to be inserted between fragments.
	wordGapFactor = 0.3

	// blockGapFactor is the multiple of the typical row spacing at which a
	// vertical gap starts a new block.
	blockGapFactor = 1.8
)

// Source reads PDF documents via ledongthuc/pdf.
type Source struct{}

var _ layout.Source = (*Source)(nil)

// NewSource creates a PDF layout source.
func NewSource() *Source {
	return &Source{}
}

// StyledPages returns the document's pages with font metadata on each run.
func (s *Source) StyledPages(path string) ([]core.Page, error) {
	return readPages(path, true)
}

// PlainPages returns the document's pages with positioned text only.
func (s *Source) PlainPages(path string) ([]core.Page, error) {
	return readPages(path, false)
}

func readPages(path string, styled bool) (pages []core.Page, err error) {
	// The content-stream parser panics on some malformed PDFs; treat that
	// the same as an open failure so the caller's fallback tiers engage.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: %s: %v", layout.ErrDocumentUnreadable, path, r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", layout.ErrDocumentUnreadable, path, err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages = make([]core.Page, 0, numPages)

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, core.Page{Number: i})
			continue
		}
		content := page.Content()
		pages = append(pages, core.Page{
			Number: i,
			Blocks: buildBlocks(content.Text, styled),
		})
	}
	return pages, nil
}

// row is an intermediate group of fragments sharing a baseline.
type row struct {
	y     float64
	texts []pdflib.Text
}

// buildBlocks reconstructs reading order from raw fragments: rows by Y
// (top to bottom; PDF Y grows upward), fragments by X, blocks split at
// vertical gaps clearly larger than the running row spacing.
func buildBlocks(texts []pdflib.Text, styled bool) []core.Block {
	if len(texts) == 0 {
		return nil
	}

	var rows []*row
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		placed := false
		for _, r := range rows {
			if abs(r.y-t.Y) <= rowTolerance {
				r.texts = append(r.texts, t)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, &row{y: t.Y, texts: []pdflib.Text{t}})
		}
	}
	if len(rows) == 0 {
		return nil
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].y > rows[j].y
	})
	for _, r := range rows {
		sort.SliceStable(r.texts, func(i, j int) bool {
			return r.texts[i].X < r.texts[j].X
		})
	}

	spacing := typicalRowSpacing(rows)

	var blocks []core.Block
	var current []core.Line

	flush := func() {
		if len(current) == 0 {
			return
		}
		blocks = append(blocks, core.Block{
			Lines: current,
			X:     current[0].X,
			Y:     current[0].Y,
		})
		current = nil
	}

	prevY := rows[0].y
	for idx, r := range rows {
		if idx > 0 && spacing > 0 && prevY-r.y > blockGapFactor*spacing {
			flush()
		}
		current = append(current, buildLine(r, float64(idx), styled))
		prevY = r.y
	}
	flush()

	return blocks
}

// buildLine merges a row's fragments into runs, splitting runs on font
// changes and inserting spaces at word-sized X gaps. The line Y is the
// row's reading-order index so downstream position sorts see a top-left
// origin.
func buildLine(r *row, orderY float64, styled bool) core.Line {
	line := core.Line{X: r.texts[0].X, Y: orderY}

	var runText strings.Builder
	var runFont string
	var runSize float64
	prevEnd := r.texts[0].X

	flushRun := func() {
		if runText.Len() == 0 {
			return
		}
		run := core.TextRun{Text: runText.String()}
		if styled {
			run.FontFamily = fontFamily(runFont)
			run.FontSizePt = runSize
			run.Bold = fontIsBold(runFont)
			run.Italic = fontIsItalic(runFont)
		}
		line.Runs = append(line.Runs, run)
		runText.Reset()
	}

	for i, t := range r.texts {
		if i == 0 {
			runFont, runSize = t.Font, t.FontSize
		}
		if t.Font != runFont || t.FontSize != runSize {
			flushRun()
			runFont, runSize = t.Font, t.FontSize
		}
		if gap := t.X - prevEnd; t.FontSize > 0 && gap > wordGapFactor*t.FontSize {
			runText.WriteByte(' ')
		}
		runText.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	flushRun()

	return line
}

// typicalRowSpacing returns the median gap between consecutive rows.
func typicalRowSpacing(rows []*row) float64 {
	if len(rows) < 2 {
		return 0
	}
	gaps := make([]float64, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		gaps = append(gaps, rows[i-1].y-rows[i].y)
	}
	sort.Float64s(gaps)
	return gaps[len(gaps)/2]
}

// fontFamily strips the subset-embedding prefix ("ABCDEF+") from a font name.
func fontFamily(name string) string {
	if len(name) > 7 && name[6] == '+' {
		allUpper := true
		for _, r := range name[:6] {
			if r < 'A' || r > 'Z' {
				allUpper = false
				break
			}
		}
		if allUpper {
			return name[7:]
		}
	}
	return name
}

func fontIsBold(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bold") ||
		strings.Contains(lower, "black") ||
		strings.Contains(lower, "heavy")
}

func fontIsItalic(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
