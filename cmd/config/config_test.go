package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"

	"github.com/synnergy-labs/asset-runtime/internal/testutil"
)

func TestLoadConfigDefault(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	defer os.Chdir(wd)
	viper.Reset()

	if err := os.Chdir("../.."); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	LoadConfig("")
	if AppConfig.Kernel.MaxSborDepth != 64 {
		t.Fatalf("unexpected max sbor depth: %d", AppConfig.Kernel.MaxSborDepth)
	}
	if AppConfig.Store.Backend != "memory" {
		t.Fatalf("unexpected store backend: %s", AppConfig.Store.Backend)
	}
}

func TestLoadConfigOverride(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	defer os.Chdir(wd)
	viper.Reset()

	if err := os.Chdir("../.."); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	LoadConfig("bootstrap")
	if AppConfig.Store.Backend != "badger" {
		t.Fatalf("expected badger backend override, got %s", AppConfig.Store.Backend)
	}
	if AppConfig.Kernel.CostUnitLimit != 500_000_000 {
		t.Fatalf("expected overridden cost unit limit")
	}
}

func TestLoadConfigSandbox(t *testing.T) {
	sb, err := testutil.NewSandbox()
	if err != nil {
		t.Fatalf("NewSandbox failed: %v", err)
	}
	defer sb.Cleanup()

	if err := os.Mkdir(sb.Path("config"), 0700); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	data := []byte("kernel:\n  max_sbor_depth: 8\nstore:\n  backend: memory\n")
	if err := sb.WriteFile("config/default.yaml", data, 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	defer os.Chdir(wd)
	viper.Reset()

	if err := os.Chdir(sb.Root); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	LoadConfig("")

	if AppConfig.Kernel.MaxSborDepth != 8 {
		t.Fatalf("expected max sbor depth 8, got %d", AppConfig.Kernel.MaxSborDepth)
	}
}
