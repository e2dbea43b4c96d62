package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the root command with args. Command flag values persist
// between calls, so each test drives a command at most once per flag set.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// setupSources creates a small template source tree and returns its root.
func setupSources(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "libs", "cocos2d")
	files := map[string]string{
		"CCNode.h":                       "@interface CCNode\n",
		"CCNode.m":                       "@implementation CCNode\n",
		"Support/ccCArray.h":             "",
		"README.md":                      "excluded\n",
		"Demo.xcodeproj/project.pbxproj": "",
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestGenerateAndVerifyCommands(t *testing.T) {
	t.Setenv("XCTGEN_HOME", t.TempDir())
	root := setupSources(t)
	output := filepath.Join(t.TempDir(), "Cocos2d")

	out, err := execute(t, "generate", root, "-o", output, "-i", "com.example.cocos2d")
	if err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "3 files from 1 directories") {
		t.Errorf("unexpected generate output:\n%s", out)
	}

	plist := filepath.Join(output+".xctemplate", "TemplateInfo.plist")
	data, err := os.ReadFile(plist)
	if err != nil {
		t.Fatalf("reading descriptor: %v", err)
	}
	for _, want := range []string{
		"<string>com.example.cocos2d</string>",
		"<key>cocos2d/CCNode.m</key>",
		"<string>cocos2d/Support/ccCArray.h</string>",
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("descriptor missing %q", want)
		}
	}
	if strings.Contains(string(data), "README.md") || strings.Contains(string(data), "project.pbxproj") {
		t.Error("descriptor lists excluded files")
	}

	out, err = execute(t, "verify", plist, root, "-i", "com.example.cocos2d")
	if err != nil {
		t.Fatalf("verify on unchanged tree: %v\n%s", err, out)
	}
	if !strings.Contains(out, "up to date") {
		t.Errorf("unexpected verify output:\n%s", out)
	}

	if err := os.WriteFile(filepath.Join(root, "CCSprite.h"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	out, err = execute(t, "verify", plist, root)
	if !errors.Is(err, errDescriptorDrift) {
		t.Fatalf("verify after change: err = %v, want errDescriptorDrift", err)
	}
	if !strings.Contains(out, "+ \t\t<string>cocos2d/CCSprite.h</string>") {
		t.Errorf("diff does not show the new file:\n%s", out)
	}
}

func TestScanCommandJSON(t *testing.T) {
	t.Setenv("XCTGEN_HOME", t.TempDir())
	root := setupSources(t)

	out, err := execute(t, "scan", root, "--group-index", "0", "--json")
	if err != nil {
		t.Fatalf("scan: %v\n%s", err, out)
	}

	var entries []scanEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decoding scan output: %v\n%s", err, out)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3: %+v", len(entries), entries)
	}
	for _, e := range entries {
		if e.Group != "cocos2d" {
			t.Errorf("%s: group = %q, want cocos2d", e.Path, e.Group)
		}
		if !filepath.IsAbs(e.File) {
			t.Errorf("%s: file %q is not absolute", e.Path, e.File)
		}
	}
}

func TestInitCommandRefusesOverwrite(t *testing.T) {
	t.Setenv("XCTGEN_HOME", t.TempDir())
	root := setupSources(t)
	dir := filepath.Dir(root)

	out, err := execute(t, "init", dir)
	if err != nil {
		t.Fatalf("init: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Created") {
		t.Errorf("unexpected init output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "xctemplate.yaml")); err != nil {
		t.Fatalf("manifest not written: %v", err)
	}

	if _, err := execute(t, "init", dir); err == nil {
		t.Fatal("second init should refuse to overwrite")
	}
}

func TestConfigCommands(t *testing.T) {
	t.Setenv("XCTGEN_HOME", t.TempDir())

	if _, err := execute(t, "config", "set", "output", "Build/App"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, err := execute(t, "config", "get", "output")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "Build/App" {
		t.Errorf("config get output = %q", out)
	}

	if _, err := execute(t, "config", "get", "colour"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestGenerateWithoutDirectoriesFails(t *testing.T) {
	t.Setenv("XCTGEN_HOME", t.TempDir())

	out, err := execute(t, "generate", "--dry-run")
	if !errors.Is(err, errNoDirectories) {
		t.Fatalf("err = %v, want errNoDirectories", err)
	}
	if !strings.Contains(out, "Usage:") {
		t.Errorf("usage not printed:\n%s", out)
	}
}

func TestVersionShort(t *testing.T) {
	t.Setenv("XCTGEN_HOME", t.TempDir())
	old := buildVersion
	buildVersion = "1.4.2"
	t.Cleanup(func() { buildVersion = old })

	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != "1.4.2" {
		t.Errorf("version output = %q", out)
	}
}
