package ranking

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/poiesic/docsift/ai"
	"github.com/poiesic/docsift/core"
)

// paragraphBoundary splits section bodies on blank lines.
var paragraphBoundary = regexp.MustCompile(`\n{2,}`)

// RankSections scores every section in section mode and returns the top
// topK as newly annotated copies, sorted by non-increasing score. The
// input slice is never mutated; extraction order is the tie-break for
// equal scores.
func (s *Scorer) RankSections(ctx context.Context, query string, sections []core.Section, topK int) ([]core.Section, error) {
	if len(sections) == 0 {
		return []core.Section{}, nil
	}

	texts := make([]string, len(sections))
	for i, section := range sections {
		texts[i] = section.Body
	}

	queryVec, textVecs, err := s.embedBatch(ctx, query, texts)
	if err != nil {
		return nil, err
	}

	ranked := make([]core.Section, len(sections))
	for i, section := range sections {
		semantic := float64(ai.CosineSimilarity(queryVec, textVecs[i]))
		keyword := keywordScore(query, section.Body)
		position := positionScore(section.Page)
		length := lengthScore(section.Body)

		section.Score = sectionScore(semantic, keyword, position, length)
		ranked[i] = section
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	s.logger.Debug("ranked sections", "candidates", len(sections), "selected", len(ranked))
	return ranked, nil
}

// RankSubsections splits the section body into paragraphs and returns the
// top topP as SubSections. When the section has no more paragraphs than
// topP, all are returned scored 1.0 without any embedding call: nothing is
// dropped, so ordering is moot.
func (s *Scorer) RankSubsections(ctx context.Context, query string, section core.Section, topP int) ([]core.SubSection, error) {
	paragraphs := splitParagraphs(section.Body)

	if len(paragraphs) <= topP {
		subsections := make([]core.SubSection, 0, len(paragraphs))
		for _, paragraph := range paragraphs {
			subsections = append(subsections, core.SubSection{
				Document:           section.Document,
				Page:               section.Page,
				ParentSectionTitle: section.Title,
				RefinedText:        paragraph,
				Score:              1.0,
			})
		}
		return subsections, nil
	}

	queryVec, paraVecs, err := s.embedBatch(ctx, query, paragraphs)
	if err != nil {
		return nil, err
	}

	// Scores stay attached to paragraph indexes throughout; paragraphs
	// with identical scores keep their own score and reading order.
	indexes := make([]int, len(paragraphs))
	scores := make([]float64, len(paragraphs))
	for i, paragraph := range paragraphs {
		indexes[i] = i
		semantic := float64(ai.CosineSimilarity(queryVec, paraVecs[i]))
		keyword := keywordScore(query, paragraph)
		scores[i] = subsectionScore(semantic, keyword)
	}

	sort.SliceStable(indexes, func(a, b int) bool {
		return scores[indexes[a]] > scores[indexes[b]]
	})

	subsections := make([]core.SubSection, 0, topP)
	for _, i := range indexes[:topP] {
		subsections = append(subsections, core.SubSection{
			Document:           section.Document,
			Page:               section.Page,
			ParentSectionTitle: section.Title,
			RefinedText:        paragraphs[i],
			Score:              scores[i],
		})
	}
	return subsections, nil
}

// splitParagraphs splits text on blank-line boundaries, trimming each
// paragraph and dropping empties. Text with no blank-line boundary is one
// paragraph.
func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, part := range paragraphBoundary.Split(text, -1) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	if len(paragraphs) == 0 {
		paragraphs = []string{text}
	}
	return paragraphs
}
