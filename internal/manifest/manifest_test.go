package manifest

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

func TestLoadValid(t *testing.T) {
	m, err := Load(testPath("valid.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	dir, err := filepath.Abs(testdataDir)
	if err != nil {
		t.Fatal(err)
	}

	wantDirs := []string{filepath.Join(dir, "cocos2d"), filepath.Join(filepath.Dir(dir), "shared", "box2d")}
	if diff := cmp.Diff(wantDirs, m.Directories); diff != "" {
		t.Errorf("Directories mismatch (-want +got):\n%s", diff)
	}
	if m.Output != filepath.Join(dir, "build", "Cocos2d") {
		t.Errorf("Output = %q", m.Output)
	}
	if diff := cmp.Diff([]string{filepath.Join(dir, "cocos2d", "tests")}, m.Ignore); diff != "" {
		t.Errorf("Ignore mismatch (-want +got):\n%s", diff)
	}
	if m.GroupIndex == nil || *m.GroupIndex != 1 {
		t.Errorf("GroupIndex = %v, want 1", m.GroupIndex)
	}
	if m.Description == nil || *m.Description != "Cocos2d application template" {
		t.Errorf("Description = %v", m.Description)
	}
	if m.Concrete != "yes" {
		t.Errorf("Concrete = %q, want yes", m.Concrete)
	}
	wantSettings := TokenList{"GCC_THUMB_SUPPORT[arch=armv6]", "*", "OTHER_LDFLAGS", "-ObjC"}
	if diff := cmp.Diff(wantSettings, m.Settings); diff != "" {
		t.Errorf("Settings mismatch (-want +got):\n%s", diff)
	}
	if m.Extensions == nil {
		t.Fatal("Extensions is nil")
	}
	if diff := cmp.Diff([]string{"h", "m", "png", ""}, *m.Extensions); diff != "" {
		t.Errorf("Extensions mismatch (-want +got):\n%s", diff)
	}
	if m.IgnoreDirSuffixes != nil {
		t.Errorf("IgnoreDirSuffixes = %v, want nil when unset", *m.IgnoreDirSuffixes)
	}
}

func TestLoadListSettingsAndBoolConcrete(t *testing.T) {
	m, err := Load(testPath("valid-list-settings.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if diff := cmp.Diff(TokenList{"KEY1", "VALUE1", "KEY2", "*"}, m.Settings); diff != "" {
		t.Errorf("Settings mismatch (-want +got):\n%s", diff)
	}
	if m.Concrete != "no" {
		t.Errorf("Concrete = %q, want no", m.Concrete)
	}
}

func TestLoadInvalid(t *testing.T) {
	for _, file := range []string{
		"invalid-missing-directories.yaml",
		"invalid-unknown-field.yaml",
		"invalid-group-index.yaml",
	} {
		t.Run(file, func(t *testing.T) {
			_, err := Load(testPath(file))
			var invalid *InvalidError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected *InvalidError, got %v", err)
			}
			if len(invalid.Issues) == 0 {
				t.Error("expected at least one issue")
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(testPath("invalid-not-yaml.yaml")); err == nil {
		t.Error("expected error for malformed YAML")
	}
	if _, err := Load(testPath("nonexistent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidateIssueFields(t *testing.T) {
	result, err := ValidateFile(testPath("invalid-group-index.yaml"))
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	var issue ValidationIssue
	for _, i := range result.Issues {
		if i.Path == "/group_index" {
			issue = i
		}
	}
	if issue.Path == "" {
		t.Fatalf("no issue reported for /group_index: %+v", result.Issues)
	}
	if issue.Keyword != "minimum" {
		t.Errorf("Keyword = %q, want minimum", issue.Keyword)
	}
	if issue.Key != "group_index" || issue.Flag != "--group-index" {
		t.Errorf("Key, Flag = %q, %q; want group_index, --group-index", issue.Key, issue.Flag)
	}
	if issue.Message == "" {
		t.Error("Message should not be empty")
	}
	if !strings.HasPrefix(issue.String(), "group_index (--group-index): ") {
		t.Errorf("String() = %q", issue.String())
	}
}

func TestValidateNamesDocumentLevelKeys(t *testing.T) {
	tests := []struct {
		file    string
		keyword string
		key     string
		flag    string
	}{
		{"invalid-unknown-field.yaml", "additionalProperties", "colour", ""},
		{"invalid-missing-directories.yaml", "required", "directories", "--directories"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile error: %v", err)
			}
			var found bool
			for _, issue := range result.Issues {
				if issue.Keyword != tt.keyword {
					continue
				}
				found = true
				if issue.Key != tt.key || issue.Flag != tt.flag {
					t.Errorf("Key, Flag = %q, %q; want %q, %q", issue.Key, issue.Flag, tt.key, tt.flag)
				}
			}
			if !found {
				t.Errorf("no %s issue in %+v", tt.keyword, result.Issues)
			}
		})
	}
}

func TestInvalidErrorNamesFlags(t *testing.T) {
	_, err := Load(testPath("invalid-group-index.yaml"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "group_index (--group-index):") {
		t.Errorf("error does not name the key and flag:\n%v", err)
	}
}

func TestValidationIssueString(t *testing.T) {
	tests := []struct {
		issue ValidationIssue
		want  string
	}{
		{ValidationIssue{Message: "bad"}, "bad"},
		{ValidationIssue{Key: "requires", Message: "bad"}, "requires: bad"},
		{ValidationIssue{Key: "ignore", Flag: "--ignore-files", Message: "bad"}, "ignore (--ignore-files): bad"},
	}
	for _, tt := range tests {
		if got := tt.issue.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCheckRequires(t *testing.T) {
	tests := []struct {
		name        string
		constraint  string
		version     string
		wantChecked bool
		wantErr     bool
	}{
		{"no constraint", "", "1.0.0", false, false},
		{"satisfied", ">= 0.1.0", "0.3.0", true, false},
		{"v prefix", "^1.2", "v1.4.0", true, false},
		{"too old", ">= 2.0.0", "1.9.9", true, true},
		{"dev build skips", ">= 2.0.0", "dev", false, false},
		{"bad constraint", "not-a-range", "1.0.0", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checked, err := CheckRequires(tt.constraint, tt.version)
			if checked != tt.wantChecked {
				t.Errorf("checked = %v, want %v", checked, tt.wantChecked)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	_, err := CheckRequires(">= 2.0.0", "1.0.0")
	if !errors.Is(err, ErrVersionConstraint) {
		t.Errorf("expected ErrVersionConstraint, got %v", err)
	}
}
