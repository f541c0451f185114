package converter

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"log"

	"gorm.io/gorm"
)

type RunnerConfig struct {
	// HexChat log root. Each subdir under it holds one shard of the logs.
	SourceDir string
	// WeeChat log directory, rewritten in full per merged file.
	DestDir string
	// Shard subdirectories under SourceDir. Empty means SourceDir itself.
	Subdirs []string

	SourceExt string // default ".txt"
	DestExt   string // default ".log"

	// When set, an existing weechat file is copied here before a merge
	// rewrites it.
	BackupDir string

	// Conversion-history DB. Disabled when both are empty.
	// Legacy single DB path. If DBFolder is set, DBPath is ignored.
	DBPath string
	// Monthly rolling DB settings.
	DBFolder string
	DBPrefix string

	Debug  bool
	DryRun bool
}

type Runner struct {
	cfg   RunnerConfig
	db    *gorm.DB // nil when conversion history is disabled
	dbKey string
}

func (r *Runner) debugf(format string, args ...any) {
	if r == nil || !r.cfg.Debug {
		return
	}
	log.Printf(format, args...)
}

// Outcome is the per-file result of one conversion pass.
type Outcome string

const (
	// OutcomeSkipped: no convertible source lines (or input unchanged since
	// the last recorded run); the destination file is left untouched.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeCreated: no prior weechat file existed; one was written.
	OutcomeCreated Outcome = "created"
	// OutcomeMerged: an existing weechat file was merged and rewritten.
	OutcomeMerged Outcome = "merged"
)

type FileResult struct {
	Outcome       Outcome
	Unchanged     bool // skipped because the history DB already has this input
	SourceLines   int
	ExistingLines int
	FinalLines    int
}

type runStats struct {
	FilesProcessed int
	FilesNew       int
	FilesMerged    int
	FilesUnchanged int
	LinesConverted int
	LinesMerged    int
}

func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if strings.TrimSpace(cfg.SourceDir) == "" {
		return nil, fmt.Errorf("SourceDir is required")
	}
	if strings.TrimSpace(cfg.DestDir) == "" {
		return nil, fmt.Errorf("DestDir is required")
	}
	if len(cfg.Subdirs) == 0 {
		cfg.Subdirs = []string{"."}
	}
	if cfg.SourceExt == "" {
		cfg.SourceExt = ".txt"
	}
	if cfg.DestExt == "" {
		cfg.DestExt = ".log"
	}

	r := &Runner{cfg: cfg}
	if err := r.ensureDBForNow(); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

func (r *Runner) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	err = sqlDB.Close()
	r.db = nil
	r.dbKey = ""
	return err
}

func (r *Runner) ensureDBForNow() error {
	if strings.TrimSpace(r.cfg.DBFolder) == "" {
		if strings.TrimSpace(r.cfg.DBPath) == "" {
			return nil // history disabled
		}
		if r.db != nil {
			return nil
		}
		db, err := OpenDB(r.cfg.DBPath)
		if err != nil {
			return err
		}
		r.db = db
		r.dbKey = "static"
		return nil
	}

	now := time.Now()
	key := fmt.Sprintf("%04d%02d", now.Year(), int(now.Month()))
	if r.db != nil && r.dbKey == key {
		return nil
	}
	// switch DB per natural month
	_ = r.Close()
	if strings.TrimSpace(r.cfg.DBPrefix) == "" {
		r.cfg.DBPrefix = "conversions_"
	}
	if err := os.MkdirAll(r.cfg.DBFolder, 0o755); err != nil {
		return err
	}
	dbPath := filepath.Join(r.cfg.DBFolder, r.cfg.DBPrefix+key+".db")
	db, err := OpenDB(dbPath)
	if err != nil {
		return err
	}
	r.db = db
	r.dbKey = key
	return nil
}

// DestName maps a hexchat basename to its weechat counterpart by suffix
// substitution (name.txt -> name.log).
func (r *Runner) DestName(sourceName string) string {
	base := strings.TrimSuffix(sourceName, r.cfg.SourceExt)
	return base + r.cfg.DestExt
}

// discoverLogicalFiles returns the sorted union of source basenames across
// all shard subdirs. A missing subdir contributes nothing.
func (r *Runner) discoverLogicalFiles() ([]string, error) {
	seen := make(map[string]struct{})
	for _, sub := range r.cfg.Subdirs {
		dir := filepath.Join(r.cfg.SourceDir, sub)
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			name := e.Name()
			if !strings.HasSuffix(name, r.cfg.SourceExt) {
				continue
			}
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// readShardRecords reads every shard copy of one logical file, classifies
// its lines and returns the converted records together with a digest over
// the raw shard contents. Invalid encoding is replaced, never fatal.
func (r *Runner) readShardRecords(name string) ([]Record, string, error) {
	var converted []Record
	digest := sha256.New()
	for _, sub := range r.cfg.Subdirs {
		p := filepath.Join(r.cfg.SourceDir, sub, name)
		content, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, "", err
		}
		digest.Write(content)
		text := strings.ToValidUTF8(string(content), "�")
		for _, line := range strings.Split(text, "\n") {
			ev, ok := ParseSourceLine(line)
			if !ok {
				continue
			}
			converted = append(converted, ev.Record())
		}
	}
	return converted, hex.EncodeToString(digest.Sum(nil)), nil
}

func readDestRecords(path string) ([]Record, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var existing []Record
	text := strings.ToValidUTF8(string(content), "�")
	for _, line := range strings.Split(text, "\n") {
		rec, ok := ParseDestLine(line)
		if !ok {
			continue
		}
		existing = append(existing, rec)
	}
	return existing, nil
}

// ConvertFile runs the full pipeline for one logical file: read all shards,
// classify, merge with any pre-existing weechat file and rewrite it. When no
// source line converts, the destination is left completely untouched so an
// absent or unparsable input can never truncate a valid log.
func (r *Runner) ConvertFile(name string) (FileResult, error) {
	converted, shaHex, err := r.readShardRecords(name)
	if err != nil {
		return FileResult{}, err
	}
	res := FileResult{SourceLines: len(converted)}
	if len(converted) == 0 {
		res.Outcome = OutcomeSkipped
		return res, nil
	}

	if r.db != nil {
		already, err := r.isAlreadyConverted(name, shaHex)
		if err != nil {
			return FileResult{}, err
		}
		if already {
			r.debugf("skip unchanged name=%q sha=%s", name, shaHex)
			res.Outcome = OutcomeSkipped
			res.Unchanged = true
			return res, nil
		}
	}

	destPath := filepath.Join(r.cfg.DestDir, r.DestName(name))
	outcome := OutcomeCreated
	var existing []Record
	if recs, err := readDestRecords(destPath); err == nil {
		outcome = OutcomeMerged
		existing = recs
	} else if !errors.Is(err, fs.ErrNotExist) {
		return FileResult{}, err
	}

	merged := Merge(converted, existing)
	res.Outcome = outcome
	res.ExistingLines = len(existing)
	res.FinalLines = len(merged)

	if r.cfg.DryRun {
		r.debugf("dry-run: would write %d lines to %q", len(merged), destPath)
		return res, nil
	}

	if outcome == OutcomeMerged && strings.TrimSpace(r.cfg.BackupDir) != "" {
		if _, err := CopyFileToDir(destPath, r.cfg.BackupDir); err != nil {
			return FileResult{}, fmt.Errorf("backup %s: %w", destPath, err)
		}
	}

	if err := os.MkdirAll(r.cfg.DestDir, 0o755); err != nil {
		return FileResult{}, err
	}
	var b strings.Builder
	for _, rec := range merged {
		b.WriteString(rec.Line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(destPath, []byte(b.String()), 0o644); err != nil {
		return FileResult{}, err
	}

	if r.db != nil {
		if err := r.recordConversion(name, shaHex, destPath, res); err != nil {
			return FileResult{}, err
		}
	}
	return res, nil
}

func (r *Runner) isAlreadyConverted(name string, sha string) (bool, error) {
	var cf ConvertedFile
	err := r.db.Where("logical_name = ? AND sha256 = ?", name, sha).First(&cf).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (r *Runner) recordConversion(name string, sha string, destPath string, res FileResult) error {
	cf := ConvertedFile{
		LogicalName:   name,
		SHA256:        sha,
		DestPath:      destPath,
		Outcome:       string(res.Outcome),
		SourceLines:   res.SourceLines,
		ExistingLines: res.ExistingLines,
		FinalLines:    res.FinalLines,
		ProcessedAt:   time.Now().UTC(),
	}
	return r.db.Create(&cf).Error
}

// RunOnce converts every discovered logical file and logs per-file and
// run-level summaries. Per-file errors are logged and do not abort the run.
func (r *Runner) RunOnce() error {
	start := time.Now()
	if err := r.ensureDBForNow(); err != nil {
		return err
	}

	names, err := r.discoverLogicalFiles()
	if err != nil {
		return err
	}
	log.Printf("found %d unique hexchat log files across %d subdirs", len(names), len(r.cfg.Subdirs))

	stats := &runStats{}
	for _, name := range names {
		res, err := r.ConvertFile(name)
		if err != nil {
			log.Printf("convert %s: %v", name, err)
			continue
		}
		destName := r.DestName(name)
		switch {
		case res.Unchanged:
			stats.FilesUnchanged++
			r.debugf("unchanged: %s", name)
		case res.Outcome == OutcomeSkipped:
			r.debugf("skipped: %s (no convertible lines)", name)
		case res.Outcome == OutcomeMerged:
			stats.FilesProcessed++
			stats.FilesMerged++
			stats.LinesConverted += res.SourceLines
			stats.LinesMerged += res.ExistingLines
			log.Printf("  merged: %s -> %s (%d hexchat + %d weechat = %d total)",
				name, destName, res.SourceLines, res.ExistingLines, res.FinalLines)
		default:
			stats.FilesProcessed++
			stats.FilesNew++
			stats.LinesConverted += res.SourceLines
			log.Printf("  new:    %s -> %s (%d lines)", name, destName, res.FinalLines)
		}
	}

	log.Printf("done: files=%d new=%d merged=%d unchanged=%d linesConverted=%d linesMerged=%d elapsed=%s",
		stats.FilesProcessed, stats.FilesNew, stats.FilesMerged, stats.FilesUnchanged,
		stats.LinesConverted, stats.LinesMerged, time.Since(start).Round(time.Millisecond))
	return nil
}
