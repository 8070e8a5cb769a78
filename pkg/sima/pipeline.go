package sima

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/simaquote/simaquote-go/pkg/sima/consolidate"
	"github.com/simaquote/simaquote-go/pkg/sima/models"
	"github.com/simaquote/simaquote-go/pkg/sima/normalize"
	"github.com/simaquote/simaquote-go/pkg/sima/parser"
)

// ScrapedSource tags records merged from a scrape batch without a source
// file of their own.
const ScrapedSource = "web_scrape"

var spreadsheetExts = map[string]struct{}{
	".xlsx": {}, ".xls": {}, ".xlsm": {},
}

// Result summarizes a pipeline run.
type Result struct {
	// FilesTotal is the number of spreadsheet files found.
	FilesTotal int
	// FilesWithData is how many files yielded at least one record.
	FilesWithData int
	// FilesFailed counts files that could not be read at all.
	FilesFailed int
	// Extracted is the record count before canonicalization and dedup.
	Extracted int
	// Written is the final table size.
	Written int
}

// Pipeline runs the ETL over a spreadsheet archive. Extraction across files
// runs on a bounded worker pool; no extraction state crosses file
// boundaries.
type Pipeline struct {
	opts Options
	log  *zap.Logger
}

// New creates a pipeline. A nil logger disables logging.
func New(opts Options, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{opts: opts, log: log}
}

// Run performs a full rebuild: every file in the input directory is
// extracted, scraped batches merged, names canonicalized, and the output
// table fully replaced. A run with zero extracted records returns
// ErrNoRecords and writes nothing.
func (p *Pipeline) Run() (Result, error) {
	var res Result

	files, err := p.listFiles()
	if err != nil {
		return res, err
	}
	res.FilesTotal = len(files)
	p.log.Info("processing spreadsheet archive",
		zap.Int("files", len(files)), zap.String("dir", p.opts.InputDir))

	records := p.extractFiles(files, &res)
	res.Extracted = len(records)

	if p.opts.ScrapedCSV != "" {
		scraped, err := p.loadScraped()
		if err != nil {
			p.log.Warn("scraped batch skipped", zap.Error(err))
		} else {
			p.log.Info("merging scraped batch", zap.Int("records", len(scraped)))
			records = append(records, scraped...)
		}
	}

	if len(records) == 0 {
		return res, ErrNoRecords
	}

	records = normalize.Records(records)
	p.log.Info("canonicalized products", zap.Int("records", len(records)))

	records = consolidate.Consolidate(records)
	res.Written = len(records)

	if err := consolidate.WriteTable(p.opts.OutputPath, records); err != nil {
		return res, fmt.Errorf("write table: %w", err)
	}
	p.log.Info("table written",
		zap.String("path", p.opts.OutputPath), zap.Int("records", len(records)))
	return res, nil
}

// RunIncremental extracts only the given new files and appends their
// records to the existing table, then re-dedupes and re-sorts the whole.
// With no existing table it behaves like a rebuild over the new files.
func (p *Pipeline) RunIncremental(newFiles []string) (Result, error) {
	var res Result
	res.FilesTotal = len(newFiles)

	records := p.extractFiles(newFiles, &res)
	res.Extracted = len(records)
	if len(records) == 0 {
		return res, ErrNoRecords
	}

	records = normalize.Records(records)
	p.log.Info("canonicalized new records", zap.Int("records", len(records)))

	existing, err := consolidate.ReadTable(p.opts.OutputPath)
	if err == nil {
		p.log.Info("appending to existing table", zap.Int("existing", len(existing)))
		records = append(existing, records...)
	}

	records = consolidate.Consolidate(records)
	res.Written = len(records)

	if err := consolidate.WriteTable(p.opts.OutputPath, records); err != nil {
		return res, fmt.Errorf("write table: %w", err)
	}
	p.log.Info("table updated",
		zap.String("path", p.opts.OutputPath), zap.Int("records", len(records)))
	return res, nil
}

func (p *Pipeline) listFiles() ([]string, error) {
	entries, err := filepath.Glob(filepath.Join(p.opts.InputDir, "*"))
	if err != nil {
		return nil, err
	}
	var files []string
	for _, path := range entries {
		if _, ok := spreadsheetExts[strings.ToLower(filepath.Ext(path))]; ok {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, ErrNoInputFiles
	}
	return files, nil
}

// extractFiles fans extraction out over a worker pool and merges the
// per-file record batches. Order is irrelevant here; consolidation re-sorts
// deterministically.
func (p *Pipeline) extractFiles(files []string, res *Result) []models.PriceRecord {
	type fileResult struct {
		records []models.PriceRecord
		failed  bool
	}

	jobs := make(chan string)
	results := make(chan fileResult)

	var wg sync.WaitGroup
	for w := 0; w < p.opts.workers(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				records, err := p.processFile(path)
				if err != nil {
					p.log.Warn("file skipped", zap.Error(err))
					results <- fileResult{failed: true}
					continue
				}
				results <- fileResult{records: records}
			}
		}()
	}

	go func() {
		for _, path := range files {
			jobs <- path
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var all []models.PriceRecord
	for r := range results {
		if r.failed {
			res.FilesFailed++
			continue
		}
		if len(r.records) > 0 {
			res.FilesWithData++
			all = append(all, r.records...)
		}
	}
	if res.FilesFailed > 0 {
		p.log.Warn("some files failed", zap.Int("failed", res.FilesFailed))
	}
	return all
}

// processFile loads and extracts one workbook. Corrupt legacy archives can
// panic deep inside the BIFF reader; that is a skip, not a crash.
func (p *Pipeline) processFile(path string) (records []models.PriceRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = NewFileError(filepath.Base(path), "workbook", fmt.Errorf("panic: %v", r))
		}
	}()

	wb, err := parser.LoadWorkbook(path)
	if err != nil {
		return nil, NewFileError(filepath.Base(path), "workbook", err)
	}
	return parser.ExtractWorkbook(wb), nil
}

// loadScraped reads an externally-scraped record batch conforming to the
// table schema.
func (p *Pipeline) loadScraped() ([]models.PriceRecord, error) {
	records, err := consolidate.ReadTable(p.opts.ScrapedCSV)
	if err != nil {
		return nil, NewFileError(filepath.Base(p.opts.ScrapedCSV), "scraped", err)
	}
	for i := range records {
		if records[i].SourceFile == "" {
			records[i].SourceFile = ScrapedSource
		}
	}
	return records, nil
}
