package converter

import "time"

// ConvertedFile records the outcome of processing one logical log file.
// SHA256 is the digest over the concatenated shard contents; a matching
// (logical_name, sha256) row lets later runs skip unchanged inputs.
type ConvertedFile struct {
	ID            uint   `gorm:"primaryKey"`
	LogicalName   string `gorm:"uniqueIndex:uniq_name_sha;size:512"`
	SHA256        string `gorm:"uniqueIndex:uniq_name_sha;size:64"`
	DestPath      string `gorm:"size:1024"`
	Outcome       string `gorm:"index;size:16"` // created, merged, skipped
	SourceLines   int
	ExistingLines int
	FinalLines    int
	ProcessedAt   time.Time `gorm:"index"`
}
