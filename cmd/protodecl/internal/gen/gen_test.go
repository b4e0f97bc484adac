package gen

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "protodecl.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestBuildConfig_ConfigFileExtSurvivesFlaglessInvocation(t *testing.T) {
	path := writeConfig(t, "ext: .thrift\nenum_style: enum\n")

	c := &Cmd{Root: "schemas", Out: "types", Config: path}
	cfg, err := c.buildConfig()
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}

	if cfg.Ext != ".thrift" {
		t.Errorf("Ext = %q, want config file value .thrift", cfg.Ext)
	}
	if cfg.EnumStyle != "enum" {
		t.Errorf("EnumStyle = %q, want config file value enum", cfg.EnumStyle)
	}
}

func TestBuildConfig_FlagsWinOverConfigFile(t *testing.T) {
	path := writeConfig(t, "ext: .thrift\nenum_style: enum\nbundle: all.d.ts\n")

	c := &Cmd{
		Root:      "schemas",
		Out:       "types",
		Config:    path,
		Ext:       ".proto",
		EnumStyle: "const_enum",
		Bundle:    "bundle.d.ts",
	}
	cfg, err := c.buildConfig()
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}

	if cfg.Ext != ".proto" {
		t.Errorf("Ext = %q, want flag value .proto", cfg.Ext)
	}
	if cfg.EnumStyle != "const_enum" {
		t.Errorf("EnumStyle = %q, want flag value const_enum", cfg.EnumStyle)
	}
	if cfg.Bundle != "bundle.d.ts" {
		t.Errorf("Bundle = %q, want flag value bundle.d.ts", cfg.Bundle)
	}
}

func TestBuildConfig_NoConfigNoFlagLeavesExtToDefaults(t *testing.T) {
	c := &Cmd{Root: "schemas", Out: "types"}
	cfg, err := c.buildConfig()
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}

	// The pipeline fills in .proto; the CLI must not pre-empt it.
	if cfg.Ext != "" {
		t.Errorf("Ext = %q, want empty", cfg.Ext)
	}

	if !filepath.IsAbs(cfg.Root) || !filepath.IsAbs(cfg.Out) {
		t.Errorf("paths not absolute: root=%q out=%q", cfg.Root, cfg.Out)
	}
}
