package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/clems4ever/cmdtree/config"
	"github.com/clems4ever/cmdtree/console"
)

func main() {
	// Paths are relative to the repository root
	dir := "console/testdata"

	configs, err := filepath.Glob(filepath.Join(dir, "*.*ml"))
	if err != nil {
		log.Fatalf("Failed to list configs: %v", err)
	}
	if len(configs) == 0 {
		log.Fatalf("No configs found in %s. Please run this command from the repository root.", dir)
	}

	for _, cfgPath := range configs {
		base := strings.TrimSuffix(cfgPath, filepath.Ext(cfgPath))

		cfg, err := config.Load(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", cfgPath, err)
		}

		script, err := os.Open(base + ".script")
		if err != nil {
			log.Fatalf("Failed to open script: %v", err)
		}
		transcript, err := console.Replay(cfg, script)
		script.Close()
		if err != nil {
			log.Fatalf("Replay of %s failed: %v", base, err)
		}

		fmt.Printf("Writing %s.golden...\n", base)
		if err := os.WriteFile(base+".golden", []byte(transcript), 0644); err != nil {
			log.Fatalf("Failed to write golden file: %v", err)
		}
	}

	fmt.Println("Done. Golden files updated.")
}
