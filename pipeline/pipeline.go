// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"context"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/layout"
	"github.com/poiesic/docsift/ranking"
	"github.com/poiesic/docsift/report"
)

// Pipeline orchestrates extraction, ranking and report assembly.
type Pipeline struct {
	extractor      *layout.Extractor
	scorer         *ranking.Scorer
	pool           *ants.Pool
	progressWriter io.Writer
	logger         *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent extraction.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithProgress enables per-document progress reporting to the given writer
// (typically os.Stderr). Default is no progress output.
func WithProgress(writer io.Writer) Option {
	return func(p *Pipeline) error {
		p.progressWriter = writer
		return nil
	}
}

// NewPipeline creates a new analysis pipeline.
func NewPipeline(extractor *layout.Extractor, scorer *ranking.Scorer, opts ...Option) (*Pipeline, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if scorer == nil {
		return nil, ErrScorerRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		extractor: extractor,
		scorer:    scorer,
		pool:      pool,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// ExtractAll extracts sections from all documents concurrently.
// Returned sections preserve the order of paths; documents that fail to
// extract are logged, collected into skipped and do not fail the batch.
func (p *Pipeline) ExtractAll(ctx context.Context, paths []string) (sections []core.Section, skipped []string, err error) {
	if len(paths) == 0 {
		return nil, nil, ErrNoInputDocuments
	}

	var tracker *ProgressTracker
	if p.progressWriter != nil {
		tracker = NewProgressTracker(p.progressWriter, len(paths), 1)
		tracker.Start()
	}

	// Results are addressed by input index so worker scheduling never
	// affects the output order.
	results := make([][]core.Section, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			results[i], errs[i] = p.extractor.ExtractDocument(path)
			if tracker != nil {
				tracker.Increment(1)
			}
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = submitErr
		}
	}
	wg.Wait()

	if tracker != nil {
		tracker.Finish()
	}

	for i, path := range paths {
		if errs[i] != nil {
			p.logger.Warn("skipping unreadable document", "path", path, "err", errs[i])
			skipped = append(skipped, path)
			continue
		}
		sections = append(sections, results[i]...)
	}

	return sections, skipped, nil
}

// Run executes the full analysis: extract sections from every document,
// rank them against the persona query, refine the top sections into
// sub-passages and assemble the report.
func (p *Pipeline) Run(ctx context.Context, query core.PersonaQuery, paths []string, topK, topP int) (*report.Report, error) {
	start := time.Now()

	if err := core.ValidatePersonaQuery(&query); err != nil {
		return nil, err
	}

	sections, skipped, err := p.ExtractAll(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return nil, ErrNoSections
	}

	queryText := query.String()

	top, err := p.scorer.RankSections(ctx, queryText, sections, topK)
	if err != nil {
		return nil, err
	}

	extracted := make([]report.ExtractedSection, 0, len(top))
	var analysis []report.SubsectionEntry
	for i, section := range top {
		extracted = append(extracted, report.ExtractedSection{
			Document:       section.Document,
			PageNumber:     section.Page,
			SectionTitle:   section.Title,
			ImportanceRank: i + 1,
		})

		subs, subErr := p.scorer.RankSubsections(ctx, queryText, section, topP)
		if subErr != nil {
			return nil, subErr
		}
		for _, sub := range subs {
			analysis = append(analysis, report.SubsectionEntry{
				Document:    sub.Document,
				RefinedText: sub.RefinedText,
				PageNumber:  sub.Page,
			})
		}
	}

	elapsed := math.Round(time.Since(start).Seconds()*100) / 100

	rpt := &report.Report{
		Metadata: report.Metadata{
			InputDocuments:      baseNames(paths),
			Persona:             query.Role,
			JobToBeDone:         query.Task,
			ProcessingTimestamp: report.NowISO(),
			ProcessingStats: report.ProcessingStats{
				TotalSectionsExtracted:     len(sections),
				TopSectionsSelected:        len(top),
				TotalProcessingTimeSeconds: elapsed,
			},
		},
		ExtractedSections:  extracted,
		SubsectionAnalysis: analysis,
	}

	if len(skipped) > 0 {
		p.logger.Warn("run completed with skipped documents", "skipped", len(skipped), "total", len(paths))
	}

	return rpt, nil
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = filepath.Base(path)
	}
	return names
}
