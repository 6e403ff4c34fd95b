package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/halotrubus/internal/app"
	"github.com/halotrubus/internal/catalog"
	"github.com/halotrubus/internal/config"
	"github.com/halotrubus/internal/logger"
	"github.com/halotrubus/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
	ansiGreen  = "\033[32m"
	ansiBlue   = "\033[34m"
	ansiYellow = "\033[33m"
)

func main() {
	printStartupBanner()

	// 解析命令行参数
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.Session.TokenSecret) {
			stdLog.Fatalf("会话令牌密钥过弱或仍为默认值，请在生产环境中配置强随机密钥")
		}
	} else if isWeakSecret(cfg.Session.TokenSecret) {
		stdLog.Printf("警告: 会话令牌密钥过弱或仍为默认值，建议在生产环境中更换")
	}

	// 初始化数据库
	if err := ensureSQLiteDir(cfg.Database.Driver, cfg.Database.DSN); err != nil {
		stdLog.Fatalf("创建数据库目录失败: %v", err)
	}
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	// 自动迁移目录表
	if err := models.AutoMigrate(nil); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	// 写入示例目录
	if cfg.Catalog.SeedOnStart {
		ds, err := catalog.Default()
		if err != nil {
			stdLog.Fatalf("示例目录解析失败: %v", err)
		}
		if err := catalog.Seed(models.DB, ds); err != nil {
			stdLog.Fatalf("示例目录写入失败: %v", err)
		}
		logger.Infow("catalog_seeded", "summary", ds.Summary())
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiGreen + ansiBold + "╔══════════════════════════════════════════════╗" + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "║            HaloTrubus API 启动中             ║" + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "╚══════════════════════════════════════════════╝" + ansiReset)
	fmt.Println(ansiYellow + "Toko tani, konsultasi pakar, dan artikel budidaya" + ansiReset)
	fmt.Println(ansiBlue + "• Public:  /api/v1/public" + ansiReset)
	fmt.Println(ansiBlue + "• Session: /api/v1/sessions, /api/v1/session" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}

func ensureSQLiteDir(driver, dsn string) error {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite":
	default:
		return nil
	}
	path := strings.TrimPrefix(strings.TrimSpace(dsn), "file:")
	if idx := strings.Index(path, "?"); idx >= 0 {
		path = path[:idx]
	}
	if path == "" || path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
