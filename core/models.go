package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for cached embedding records.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// TextRun is one styled text fragment inside a layout line.
// Runs are produced per page by the layout source and consumed only
// during font analysis and section extraction.
type TextRun struct {
	Text       string
	FontFamily string
	FontSizePt float64
	Bold       bool
	Italic     bool
}

// Signature returns the FontSignature identifying this run's styling.
func (r TextRun) Signature() FontSignature {
	return FontSignature{
		Family: r.FontFamily,
		SizePt: r.FontSizePt,
		Bold:   r.Bold,
		Italic: r.Italic,
	}
}

// FontSignature identifies a (family, size, weight, style) combination.
// It is a comparable struct used directly as a map key; field-wise
// comparison avoids the parsing bugs of a delimiter-joined string key
// when font names contain the delimiter.
type FontSignature struct {
	Family string
	SizePt float64
	Bold   bool
	Italic bool
}

// FontUsage accumulates occurrence statistics for one signature on one page.
type FontUsage struct {
	Count      int
	TotalChars int
}

// FontStats maps signatures to their usage on a single page.
// Stats are scoped to that page and discarded after heading-font
// identification.
type FontStats map[FontSignature]*FontUsage

// Add records one run's contribution to the stats.
func (fs FontStats) Add(run TextRun) {
	sig := run.Signature()
	usage, ok := fs[sig]
	if !ok {
		usage = &FontUsage{}
		fs[sig] = usage
	}
	usage.Count++
	usage.TotalChars += len(run.Text)
}

// TotalChars returns the character total across all signatures on the page.
func (fs FontStats) TotalChars() int {
	total := 0
	for _, usage := range fs {
		total += usage.TotalChars
	}
	return total
}

// Line is an ordered sequence of runs in reading order, with the line's
// position in page coordinates (origin top-left, Y growing downward).
type Line struct {
	Runs []TextRun
	X    float64
	Y    float64
}

// Text returns the concatenated text of the line's runs.
func (l Line) Text() string {
	var b strings.Builder
	for _, run := range l.Runs {
		b.WriteString(run.Text)
	}
	return b.String()
}

// Block groups consecutive lines of one layout block.
type Block struct {
	Lines []Line
	X     float64
	Y     float64
}

// Page holds one document page's blocks in reading order.
type Page struct {
	Number int // 1-based
	Blocks []Block
}

// Section is one page's extracted title and body, the unit of coarse
// ranking. Score is zero until a ranking pass annotates a copy.
type Section struct {
	Document string
	Page     int // 1-based
	Title    string
	Body     string
	Score    float64
}

// SubSection is one paragraph (or paragraph group) within a selected
// Section, the unit of fine ranking.
type SubSection struct {
	Document           string
	Page               int
	ParentSectionTitle string
	RefinedText        string
	Score              float64
}

// PersonaQuery combines a persona role with a task description.
// The scorer treats the rendered string as opaque text.
type PersonaQuery struct {
	Role string
	Task string
}

// String renders the query in the fixed persona/job format the scorer
// compares against.
func (q PersonaQuery) String() string {
	return "Persona: " + q.Role + "\nJob-to-be-done: " + q.Task
}

// EmbeddingRecord is a cached embedding vector for one text under one model.
type EmbeddingRecord struct {
	Model     string
	Vector    []float32
	CreatedAt time.Time
}
