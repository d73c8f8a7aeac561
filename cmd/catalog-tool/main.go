// Package main 提供目录数据文件管理的命令行工具
// 支持写入种子目录、校验持久化文件和导出目录快照
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/MorseWayne/onos_store/internal/config"
	"github.com/MorseWayne/onos_store/internal/domain"
	"github.com/MorseWayne/onos_store/internal/logger"
	"github.com/MorseWayne/onos_store/internal/repo"
	"github.com/MorseWayne/onos_store/internal/store"
)

func main() {
	var (
		action = flag.String("action", "validate", "Catalog action: seed, validate, export")
		force  = flag.Bool("force", false, "Overwrite an existing catalog file when seeding")
		out    = flag.String("out", "", "Output path for export (defaults to stdout)")
	)
	flag.Parse()

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// 初始化日志
	lg, err := logger.New(cfg.App.Env, cfg.Log.Level, cfg.Log.Encoding, "catalog-tool", cfg.App.Version)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	st, err := store.New(cfg.Data.Dir, lg)
	if err != nil {
		lg.Sugar().Fatalw("failed to open data directory", "error", err)
	}

	switch *action {
	case "seed":
		existing, err := st.LoadCatalog()
		if err == nil && existing != nil && !*force {
			lg.Sugar().Fatalw("catalog file already exists, use -force to overwrite",
				"dir", cfg.Data.Dir, "products", len(existing))
		}
		seed := repo.DefaultProducts()
		if err := st.SaveCatalog(seed); err != nil {
			lg.Sugar().Fatalw("failed to write seed catalog", "error", err)
		}
		lg.Sugar().Infow("seed catalog written", "dir", cfg.Data.Dir, "products", len(seed))

	case "validate":
		products, err := st.LoadCatalog()
		if err != nil {
			lg.Sugar().Fatalw("catalog file is malformed", "error", err)
		}
		if products == nil {
			lg.Sugar().Fatalw("catalog file not found", "dir", cfg.Data.Dir)
		}
		seen := make(map[string]bool, len(products))
		for i, p := range products {
			if p == nil || p.ID == "" {
				lg.Sugar().Fatalw("product has no id", "index", i)
			}
			if seen[p.ID] {
				lg.Sugar().Fatalw("duplicate product id", "id", p.ID)
			}
			seen[p.ID] = true
		}
		lg.Sugar().Infow("catalog is valid", "products", len(products))

	case "export":
		products, err := st.LoadCatalog()
		if err != nil {
			lg.Sugar().Fatalw("failed to load catalog", "error", err)
		}
		if products == nil {
			products = []*domain.Product{}
		}
		data, err := json.MarshalIndent(products, "", "  ")
		if err != nil {
			lg.Sugar().Fatalw("failed to marshal catalog", "error", err)
		}
		if *out == "" {
			fmt.Println(string(data))
			return
		}
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			lg.Sugar().Fatalw("failed to write export file", "error", err)
		}
		lg.Sugar().Infow("catalog exported", "path", *out, "products", len(products))

	default:
		fmt.Printf("Usage: %s -action=[seed|validate|export] [options]\n", os.Args[0])
		fmt.Println("Options:")
		fmt.Println("  -action string")
		fmt.Println("        Catalog action: seed, validate, export (default \"validate\")")
		fmt.Println("  -force")
		fmt.Println("        Overwrite an existing catalog file when seeding")
		fmt.Println("  -out string")
		fmt.Println("        Output path for export (defaults to stdout)")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  # Write the built-in seed catalog")
		fmt.Println("  ./catalog-tool -action=seed")
		fmt.Println()
		fmt.Println("  # Validate the persisted catalog file")
		fmt.Println("  ./catalog-tool -action=validate")
		fmt.Println()
		fmt.Println("  # Export the catalog to a file")
		fmt.Println("  ./catalog-tool -action=export -out=backup.json")
		os.Exit(1)
	}
}
