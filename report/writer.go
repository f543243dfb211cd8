package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Report is the final ranked output written at the end of a run.
type Report struct {
	Metadata           Metadata           `json:"metadata"`
	ExtractedSections  []ExtractedSection `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionEntry  `json:"subsection_analysis"`
}

// Metadata describes the run that produced the report.
type Metadata struct {
	InputDocuments      []string        `json:"input_documents"`
	Persona             string          `json:"persona"`
	JobToBeDone         string          `json:"job_to_be_done"`
	ProcessingTimestamp string          `json:"processing_timestamp"`
	ProcessingStats     ProcessingStats `json:"processing_stats"`
}

// ProcessingStats summarizes extraction and selection counts.
type ProcessingStats struct {
	TotalSectionsExtracted     int     `json:"total_sections_extracted"`
	TopSectionsSelected        int     `json:"top_sections_selected"`
	TotalProcessingTimeSeconds float64 `json:"total_processing_time_seconds"`
}

// ExtractedSection is one ranked section in the report.
type ExtractedSection struct {
	Document       string `json:"document"`
	PageNumber     int    `json:"page_number"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
}

// SubsectionEntry is one refined sub-passage in the report, implicitly
// grouped by the order its parent section was ranked.
type SubsectionEntry struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}

// NowISO returns the current UTC time in the report's timestamp format.
func NowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000000")
}

// WriteReport writes the report as indented JSON to path, atomically.
// The file appears complete or not at all: content goes to a temp file in
// the destination directory, is synced, and is renamed into place.
func WriteReport(path string, rpt *Report) error {
	data, err := json.MarshalIndent(rpt, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".report-*.json")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp report: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename report into place: %w", err)
	}
	return nil
}
