package main

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"playstore-dashboard/config"
	"playstore-dashboard/services"
	"playstore-dashboard/storage"
	"playstore-dashboard/utils"
)

func testConfig() *config.Config {
	cfg := config.FromEnv()
	cfg.DataPath = filepath.Join("services", "testdata", "apps.csv")
	cfg.PriceCeiling = services.DefaultPriceCeiling
	cfg.StrictParse = false
	return cfg
}

func TestReportCommand(t *testing.T) {
	cmd := newRootCmd(testConfig(), utils.NewLoggerTo(io.Discard, utils.LevelError))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"report"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("report: unexpected error %v", err)
	}
	if !strings.Contains(out.String(), "Minecraft") {
		t.Errorf("report output should list Minecraft, got %q", out.String())
	}
}

func TestReportCommandStrictFlag(t *testing.T) {
	cmd := newRootCmd(testConfig(), utils.NewLoggerTo(io.Discard, utils.LevelError))
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"report", "--strict"})

	err := cmd.Execute()
	var perr *services.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *services.ParseError with --strict, got %v", err)
	}
}

func TestLoadDatasetMissingFile(t *testing.T) {
	cfg := testConfig()
	cfg.DataPath = filepath.Join(t.TempDir(), "absent.csv")

	_, err := loadDataset(cfg, utils.NewLoggerTo(io.Discard, utils.LevelError))
	var dle *storage.DataLoadError
	if !errors.As(err, &dle) {
		t.Fatalf("expected *storage.DataLoadError, got %v", err)
	}
	if !strings.Contains(err.Error(), "refusing to start") {
		t.Errorf("error should say the process will not start, got %q", err.Error())
	}
}
