package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"asempv/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ASEMPV_HOME", home)

	cfg, err := config.Load("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Home != home || cfg.File != "" {
		t.Fatalf("home %q file %q", cfg.Home, cfg.File)
	}
	if cfg.BaseURL != "https://asempv.escoua.com/" || cfg.PageSize != 20 || cfg.Ordering != "-id" || cfg.Lang != "uk" {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.ConnectTimeout != 30*time.Second || cfg.ReadTimeout != 30*time.Second || cfg.WriteTimeout != 30*time.Second {
		t.Fatalf("timeouts = %+v", cfg)
	}
	if cfg.LogDir() != filepath.Join(home, "logs") {
		t.Fatalf("log dir = %s", cfg.LogDir())
	}
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ASEMPV_HOME", home)
	yml := "base-url: http://127.0.0.1:8080/\npage-size: 50\nlang: en\nread-timeout: 5s\n"
	if err := os.WriteFile(filepath.Join(home, "config.yml"), []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ASEMPV_LANG", "de")
	t.Setenv("ASEMPV_PAGE_SIZE", "30")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("page-size", 20, "")
	flags.String("partner", "", "")
	if err := flags.Parse([]string{"--page-size", "10"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load("", flags)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.File == "" {
		t.Fatal("config file not reported")
	}
	if cfg.BaseURL != "http://127.0.0.1:8080/" || cfg.ReadTimeout != 5*time.Second {
		t.Fatalf("file values lost: %+v", cfg)
	}
	if cfg.Lang != "de" {
		t.Fatalf("env should override file: lang %q", cfg.Lang)
	}
	if cfg.PageSize != 10 {
		t.Fatalf("flag should override env: page size %d", cfg.PageSize)
	}
}

func TestLoad_ExplicitFileMustExistOrBeMissing(t *testing.T) {
	t.Setenv("ASEMPV_HOME", t.TempDir())
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"), nil); err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("ASEMPV_HOME", t.TempDir())
	t.Setenv("ASEMPV_BASE_URL", "not a url")

	_, err := config.Load("", nil)
	if !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}
