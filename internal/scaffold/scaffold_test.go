package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/xctgen/internal/descriptor"
	"github.com/agentx-labs/xctgen/internal/manifest"
)

func TestNewManifestData(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "My Game")
	for _, sub := range []string{"cocos2d", "Classes", ".git", "Old.xctemplate"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "README"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	d, err := NewManifestData(dir, "", descriptor.DefaultKind, 1, "v1.2.0")
	if err != nil {
		t.Fatalf("NewManifestData: %v", err)
	}
	if d.Name != "My Game" {
		t.Errorf("Name = %q, want %q", d.Name, "My Game")
	}
	if d.Identifier != "com.example.my-game" {
		t.Errorf("Identifier = %q, want %q", d.Identifier, "com.example.my-game")
	}
	if strings.Join(d.Directories, ",") != "Classes,cocos2d" {
		t.Errorf("Directories = %v, want [Classes cocos2d]", d.Directories)
	}
	if d.MinVersion != "1.2.0" {
		t.Errorf("MinVersion = %q, want 1.2.0", d.MinVersion)
	}

	dev, err := NewManifestData(dir, "Named", descriptor.DefaultKind, 1, "dev")
	if err != nil {
		t.Fatalf("NewManifestData: %v", err)
	}
	if dev.MinVersion != "0.1.0" || dev.Name != "Named" {
		t.Errorf("dev data = %+v", dev)
	}
}

func TestGenerateWritesValidManifest(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "cocos2d"), 0755); err != nil {
		t.Fatal(err)
	}

	data, err := NewManifestData(dir, "Cocos2d", descriptor.DefaultKind, 1, "0.3.0")
	if err != nil {
		t.Fatal(err)
	}
	result, err := Generate(dir, data)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Warnings) > 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	m, err := manifest.Load(result.Path)
	if err != nil {
		t.Fatalf("generated manifest does not load: %v", err)
	}
	if len(m.Directories) != 1 || m.Directories[0] != filepath.Join(dir, "cocos2d") {
		t.Errorf("Directories = %v", m.Directories)
	}
	if m.Identifier != "com.example.cocos2d" {
		t.Errorf("Identifier = %q", m.Identifier)
	}
	if m.Concrete != "yes" {
		t.Errorf("Concrete = %q, want yes", m.Concrete)
	}
	if m.Requires != ">= 0.3.0" {
		t.Errorf("Requires = %q", m.Requires)
	}
}

func TestGenerateRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, manifest.FileName)
	if err := os.WriteFile(existing, []byte("directories: [a]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := NewManifestData(dir, "x", descriptor.DefaultKind, 1, "")
	if err != nil {
		t.Fatal(err)
	}
	_, err = Generate(dir, data)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected already-exists error, got %v", err)
	}
}

func TestGenerateWarnsWithoutDirectories(t *testing.T) {
	dir := t.TempDir()
	data, err := NewManifestData(dir, "Empty", descriptor.DefaultKind, 1, "")
	if err != nil {
		t.Fatal(err)
	}
	result, err := Generate(dir, data)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("Warnings = %v, want one about missing directories", result.Warnings)
	}
}
