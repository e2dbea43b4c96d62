//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/xctgen/internal/config"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir   string // XCTGEN_HOME — user config
	SourceDir string // parent of the template source trees
	OutputDir string // where templates are written
}

// setupTestEnv creates isolated temp directories and points XCTGEN_HOME at
// one of them so no test touches the real user config.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:   t.TempDir(),
		SourceDir: t.TempDir(),
		OutputDir: t.TempDir(),
	}
	t.Setenv("XCTGEN_HOME", env.HomeDir)
	if err := config.Load(); err != nil {
		t.Fatalf("loading config: %v", err)
	}
	return env
}

// setupCocosSources lays out a cocos2d-style source tree under
// sourceDir/libs and returns the directories a template would scan.
func setupCocosSources(t *testing.T, sourceDir string) []string {
	t.Helper()

	libs := filepath.Join(sourceDir, "libs")
	files := map[string]string{
		// Plain sources, filtered by extension.
		"cocos2d/CCNode.h":               "@interface CCNode : NSObject\n@end\n",
		"cocos2d/CCNode.m":               "@implementation CCNode\n@end\n",
		"cocos2d/Support/ccCArray.h":     "",
		"cocos2d/Support/base64.c":       "",
		"cocos2d/README.md":              "not part of the template\n",
		"cocos2d/tests/CCNodeTest.m":     "",
		"cocos2d/Sample.xcodeproj/x.pbx": "",
		// Everything under a framework ships, whatever the extension.
		"CocosDenshion/SimpleAudioEngine.h":                    "",
		"CocosDenshion/Vendor/Box2D.framework/Box2D":           "binary",
		"CocosDenshion/Vendor/Box2D.framework/Info.plist":      "<plist/>\n",
		"CocosDenshion/Vendor/Box2D.framework/Headers/Box2D.h": "",
		// Hidden entries are skipped by default.
		"cocos2d/.DS_Store": "",
	}
	for rel, content := range files {
		writeFile(t, filepath.Join(libs, rel), content)
	}
	return []string{filepath.Join(libs, "cocos2d"), filepath.Join(libs, "CocosDenshion")}
}

// writeFile creates a file with the given content, creating parent dirs.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// assertFileLacks fails if the file contains substr.
func assertFileLacks(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if strings.Contains(string(data), substr) {
		t.Errorf("file %s unexpectedly contains %q", path, substr)
	}
}
