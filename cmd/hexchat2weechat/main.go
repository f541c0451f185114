package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"hexchat2weechat/converter"
)

type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }
func (m *multiFlag) Set(value string) error {
	*m = append(*m, value)
	return nil
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var configPath string
	var sourceDir string
	var destDir string
	var subdirs multiFlag
	var sourceExt string
	var destExt string
	var backupDir string
	var dbPath string
	var dbFolder string
	var dbPrefix string
	var debug bool
	var dryRun bool

	flag.StringVar(&configPath, "config", "", "YAML config file path.")
	flag.StringVar(&sourceDir, "source-dir", "", "HexChat log root directory.")
	flag.StringVar(&destDir, "dest-dir", "", "WeeChat log directory (merge target).")
	flag.Var(&subdirs, "subdir", "Shard subdirectory under the source root. Can be repeated.")
	flag.StringVar(&sourceExt, "source-ext", ".txt", "HexChat log filename extension.")
	flag.StringVar(&destExt, "dest-ext", ".log", "WeeChat log filename extension.")
	flag.StringVar(&backupDir, "backup-dir", "", "Copy existing weechat files here before rewriting them.")
	flag.StringVar(&dbPath, "db", "", "Conversion-history SQLite path (history disabled when empty).")
	flag.StringVar(&dbFolder, "db-folder", "", "Monthly rolling history DB folder (overrides config.database.folder).")
	flag.StringVar(&dbPrefix, "db-prefix", "", "Monthly rolling history DB prefix (overrides config.database.prefix).")
	flag.BoolVar(&debug, "debug", false, "Enable debug logs.")
	flag.BoolVar(&dryRun, "dry-run", false, "Run the full pipeline without writing any file.")
	flag.Parse()

	visited := map[string]bool{}
	flag.CommandLine.Visit(func(f *flag.Flag) {
		visited[f.Name] = true
	})

	// Base config from file (optional)
	fileCfg := &converter.FileConfig{}
	if configPath != "" {
		cfg, err := converter.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		fileCfg = cfg
	}

	// Merge config + CLI overrides
	finalSourceDir := fileCfg.SourceDir
	if visited["source-dir"] {
		finalSourceDir = sourceDir
	}
	finalDestDir := fileCfg.DestDir
	if visited["dest-dir"] {
		finalDestDir = destDir
	}
	finalSubdirs := fileCfg.Subdirs.Items
	if visited["subdir"] {
		finalSubdirs = subdirs
	}

	finalSourceExt := fileCfg.SourceExt
	if finalSourceExt == "" {
		finalSourceExt = ".txt"
	}
	if visited["source-ext"] {
		finalSourceExt = sourceExt
	}
	finalDestExt := fileCfg.DestExt
	if finalDestExt == "" {
		finalDestExt = ".log"
	}
	if visited["dest-ext"] {
		finalDestExt = destExt
	}

	finalBackupDir := fileCfg.BackupDir
	if visited["backup-dir"] {
		finalBackupDir = backupDir
	}

	finalDBFolder := fileCfg.Database.Folder
	finalDBPrefix := fileCfg.Database.Prefix
	if visited["db-folder"] {
		finalDBFolder = dbFolder
	}
	if visited["db-prefix"] {
		finalDBPrefix = dbPrefix
	}
	// Legacy single DB file
	finalDB := fileCfg.DB
	if visited["db"] {
		finalDB = dbPath
	}

	finalDebug := fileCfg.Debug
	if visited["debug"] {
		finalDebug = debug
	}
	finalDryRun := fileCfg.DryRun
	if visited["dry-run"] {
		finalDryRun = dryRun
	}

	if strings.TrimSpace(finalSourceDir) == "" {
		fmt.Fprintln(os.Stderr, "missing source dir (use --source-dir or config.yaml source_dir)")
		os.Exit(2)
	}
	if strings.TrimSpace(finalDestDir) == "" {
		fmt.Fprintln(os.Stderr, "missing dest dir (use --dest-dir or config.yaml dest_dir)")
		os.Exit(2)
	}

	runner, err := converter.NewRunner(converter.RunnerConfig{
		SourceDir: finalSourceDir,
		DestDir:   finalDestDir,
		Subdirs:   finalSubdirs,
		SourceExt: finalSourceExt,
		DestExt:   finalDestExt,
		BackupDir: finalBackupDir,
		DBPath:    finalDB,
		DBFolder:  finalDBFolder,
		DBPrefix:  finalDBPrefix,
		Debug:     finalDebug,
		DryRun:    finalDryRun,
	})
	if err != nil {
		log.Fatalf("init runner: %v", err)
	}
	defer runner.Close()

	if err := runner.RunOnce(); err != nil {
		log.Fatalf("run once: %v", err)
	}
}
