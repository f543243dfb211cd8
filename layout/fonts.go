package layout

import (
	"sort"

	"github.com/poiesic/docsift/core"
)

// Heading-detection thresholds. These are empirically fixed constants;
// changing them changes which lines are recognized as titles.
const (
	// headingMinSizePt is the font size above which a sparse signature
	// qualifies as heading-like.
	headingMinSizePt = 12.0

	// headingMaxCharRatio is the maximum share of a page's characters a
	// heading-like signature may account for. Headings are short.
	headingMaxCharRatio = 0.10

	// maxHeadingFonts caps how many distinct heading styles are trusted
	// per page, limiting false positives from small bold inline emphasis.
	maxHeadingFonts = 3
)

// CollectFontStats aggregates one page's runs into per-signature usage stats.
func CollectFontStats(page core.Page) core.FontStats {
	stats := core.FontStats{}
	for _, block := range page.Blocks {
		for _, line := range block.Lines {
			for _, run := range line.Runs {
				stats.Add(run)
			}
		}
	}
	return stats
}

// IdentifyHeadingFonts returns the signatures judged to mark headings on a
// page, most important first, capped at maxHeadingFonts. A signature
// qualifies when it is larger than headingMinSizePt and accounts for less
// than headingMaxCharRatio of the page's characters, or when it is bold
// regardless of size. Empty stats return nil.
func IdentifyHeadingFonts(stats core.FontStats) []core.FontSignature {
	if len(stats) == 0 {
		return nil
	}

	sigs := make([]core.FontSignature, 0, len(stats))
	for sig := range stats {
		sigs = append(sigs, sig)
	}

	// Larger fonts are likelier headings. Ties are broken field-wise so
	// the result is stable across runs despite map iteration order.
	sort.Slice(sigs, func(i, j int) bool {
		a, b := sigs[i], sigs[j]
		if a.SizePt != b.SizePt {
			return a.SizePt > b.SizePt
		}
		if a.Family != b.Family {
			return a.Family < b.Family
		}
		if a.Bold != b.Bold {
			return a.Bold
		}
		return a.Italic && !b.Italic
	})

	totalChars := stats.TotalChars()

	var heading []core.FontSignature
	for _, sig := range sigs {
		charRatio := 0.0
		if totalChars > 0 {
			charRatio = float64(stats[sig].TotalChars) / float64(totalChars)
		}

		isLarge := sig.SizePt > headingMinSizePt
		isSparse := charRatio < headingMaxCharRatio

		if (isLarge && isSparse) || sig.Bold {
			heading = append(heading, sig)
		}
	}

	if len(heading) > maxHeadingFonts {
		heading = heading[:maxHeadingFonts]
	}
	return heading
}
