package layout

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/poiesic/docsift/core"
)

// Heading-candidate filters for the font-analysis tier. Body lines that
// happen to share a bold run are excluded by the length caps.
const (
	maxHeadingLineChars = 150
	maxHeadingLineWords = 15
	basicMaxTitleChars  = 120
	basicMaxTitleWords  = 10
)

// titleCasePattern matches strict Title Case word sequences with no digits
// or punctuation. It knowingly misses headings like "Section 3: Overview";
// the basic tier's behavior is a compatibility contract.
var titleCasePattern = regexp.MustCompile(`^([A-Z][a-z]+)(\s[A-Z][a-z]+)*$`)

// Extractor turns a document's pages into Sections, one per page.
// Font analysis is the primary policy; basic positional heuristics are the
// safety net when metadata is absent or the primary tier fails.
type Extractor struct {
	source Source
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewExtractor creates a section extractor reading pages from source.
func NewExtractor(source Source, opts ...Option) (*Extractor, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}

	e := &Extractor{
		source: source,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// ExtractDocument extracts one Section per page of the document at path.
// The font-analysis tier is tried first; on any failure the basic tier
// runs against plain pages. Only when both tiers fail is an error
// returned, wrapping ErrDocumentUnreadable when the source could not
// parse the document.
func (e *Extractor) ExtractDocument(path string) ([]core.Section, error) {
	doc := filepath.Base(path)

	pages, err := e.source.StyledPages(path)
	if err == nil {
		sections, ferr := e.extractWithFontAnalysis(doc, pages)
		if ferr == nil {
			return sections, nil
		}
		e.logger.Warn("font analysis failed, falling back to basic extraction",
			"document", doc, "err", ferr)
	} else {
		e.logger.Warn("styled page extraction failed, falling back to basic extraction",
			"document", doc, "err", err)
	}

	plain, err := e.source.PlainPages(path)
	if err != nil {
		return nil, fmt.Errorf("basic extraction of %s: %w", doc, err)
	}
	return e.extractBasic(doc, plain), nil
}

// extractWithFontAnalysis is the primary tier: per page, identify heading
// fonts, collect heading-candidate lines, and pick the most title-like one.
func (e *Extractor) extractWithFontAnalysis(doc string, pages []core.Page) ([]core.Section, error) {
	if !anyFontMetadata(pages) && anyRuns(pages) {
		return nil, ErrNoLayoutMetadata
	}

	sections := make([]core.Section, 0, len(pages))
	for _, page := range pages {
		stats := CollectFontStats(page)
		headingFonts := IdentifyHeadingFonts(stats)

		headingSet := make(map[core.FontSignature]bool, len(headingFonts))
		for _, sig := range headingFonts {
			headingSet[sig] = true
		}

		var body strings.Builder
		var candidates []string

		for _, block := range page.Blocks {
			for _, line := range block.Lines {
				lineText := line.Text()

				if lineIsHeading(line, headingSet) {
					clean := strings.TrimSpace(lineText)
					if clean != "" && len(clean) < maxHeadingLineChars &&
						len(strings.Fields(clean)) < maxHeadingLineWords {
						candidates = append(candidates, clean)
					}
				}

				body.WriteString(lineText)
				body.WriteByte('\n')
			}
			body.WriteByte('\n')
		}

		bodyText := strings.TrimSpace(body.String())
		title := choosePageTitle(candidates, bodyText, page.Number)

		sections = append(sections, core.Section{
			Document: doc,
			Page:     page.Number,
			Title:    title,
			Body:     bodyText,
		})
	}
	return sections, nil
}

// extractBasic is the fallback tier: blocks sorted by position, title taken
// from the first line only when it looks heading-like.
func (e *Extractor) extractBasic(doc string, pages []core.Page) []core.Section {
	sections := make([]core.Section, 0, len(pages))
	for _, page := range pages {
		blocks := make([]core.Block, len(page.Blocks))
		copy(blocks, page.Blocks)
		sort.SliceStable(blocks, func(i, j int) bool {
			if blocks[i].Y != blocks[j].Y {
				return blocks[i].Y < blocks[j].Y
			}
			return blocks[i].X < blocks[j].X
		})

		var parts []string
		for _, block := range blocks {
			var b strings.Builder
			for _, line := range block.Lines {
				b.WriteString(line.Text())
				b.WriteByte('\n')
			}
			text := strings.TrimSpace(b.String())
			if text != "" {
				parts = append(parts, text)
			}
		}
		bodyText := strings.Join(parts, "\n")

		title := fmt.Sprintf("Page %d", page.Number)
		if candidate := firstNonBlankLine(bodyText); candidate != "" && basicTitleLike(candidate) {
			title = candidate
		}

		sections = append(sections, core.Section{
			Document: doc,
			Page:     page.Number,
			Title:    title,
			Body:     bodyText,
		})
	}
	return sections
}

// choosePageTitle prefers the shortest heading candidate (shorter headings
// are more title-like than long emphasized sentences; ties keep the first
// in reading order), falling back to the first non-blank body line, then
// to a synthesized page title.
func choosePageTitle(candidates []string, body string, pageNumber int) string {
	if len(candidates) > 0 {
		best := candidates[0]
		for _, c := range candidates[1:] {
			if len(c) < len(best) {
				best = c
			}
		}
		return best
	}
	if line := firstNonBlankLine(body); line != "" {
		return line
	}
	return fmt.Sprintf("Page %d", pageNumber)
}

// basicTitleLike reports whether a first line qualifies as a title in the
// basic tier: short AND (all-uppercase OR strict Title Case OR few words).
func basicTitleLike(line string) bool {
	if len(line) >= basicMaxTitleChars {
		return false
	}
	return isAllUpper(line) ||
		titleCasePattern.MatchString(line) ||
		len(strings.Fields(line)) < basicMaxTitleWords
}

// lineIsHeading reports whether any run on the line uses a heading font.
func lineIsHeading(line core.Line, headingSet map[core.FontSignature]bool) bool {
	for _, run := range line.Runs {
		if headingSet[run.Signature()] {
			return true
		}
	}
	return false
}

// isAllUpper reports whether the string contains at least one letter and
// no lowercase letters.
func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

func firstNonBlankLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func anyFontMetadata(pages []core.Page) bool {
	for _, page := range pages {
		for _, block := range page.Blocks {
			for _, line := range block.Lines {
				for _, run := range line.Runs {
					if run.FontFamily != "" || run.FontSizePt > 0 || run.Bold || run.Italic {
						return true
					}
				}
			}
		}
	}
	return false
}

func anyRuns(pages []core.Page) bool {
	for _, page := range pages {
		for _, block := range page.Blocks {
			for _, line := range block.Lines {
				if len(line.Runs) > 0 {
					return true
				}
			}
		}
	}
	return false
}

