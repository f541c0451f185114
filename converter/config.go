package converter

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SubdirList accepts either:
//  1. sequence form (preferred):
//     subdirs: ["1", "2", "3", "4"]
//  2. scalar form:
//     subdirs: "1,2,3,4"
type SubdirList struct {
	Items []string
}

func (s *SubdirList) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case yaml.ScalarNode:
		parts := strings.Split(value.Value, ",")
		items := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				items = append(items, p)
			}
		}
		s.Items = items
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		s.Items = items
		return nil
	default:
		// ignore other kinds
		return nil
	}
}

type DatabaseConfig struct {
	Folder string `yaml:"folder"`
	Prefix string `yaml:"prefix"`
}

type FileConfig struct {
	// HexChat log root; shards live in SourceDir/<subdir>.
	SourceDir string `yaml:"source_dir"`
	// WeeChat log directory; one output file per logical log.
	DestDir string     `yaml:"dest_dir"`
	Subdirs SubdirList `yaml:"subdirs"`

	SourceExt string `yaml:"source_ext"`
	DestExt   string `yaml:"dest_ext"`

	// When set, an existing weechat file is copied here before it is
	// rewritten by a merge.
	BackupDir string `yaml:"backup_dir"`

	// Legacy single DB path (kept for compatibility). Prefer Database for
	// monthly rolling. Conversion history is disabled when both are empty.
	DB       string         `yaml:"db"`
	Database DatabaseConfig `yaml:"database"`

	Debug  bool `yaml:"debug"`
	DryRun bool `yaml:"dry_run"`
}

func LoadConfig(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
