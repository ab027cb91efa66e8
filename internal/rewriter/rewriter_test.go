package rewriter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/indaco/verup/internal/core"
	"github.com/indaco/verup/internal/pattern"
	"github.com/tidwall/gjson"
)

func TestKindForFile(t *testing.T) {
	tests := map[string]Kind{
		"package.json":      StructuredJSON,
		"sub/bower.JSON":    StructuredJSON,
		"version.php":       PatternText,
		"README.md":         PatternText,
		"VERSION":           PatternText,
		"dir.json/file.txt": PatternText,
	}
	for path, want := range tests {
		if got := KindForFile(path); got != want {
			t.Errorf("KindForFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestJSONRewrite(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "top level version",
			in:   `{"name":"a/b","version":"1.2.3","keywords":["x","y"]}`,
			want: "{\n  \"name\": \"a/b\",\n  \"version\": \"1.2.4\",\n  \"keywords\": [\n    \"x\",\n    \"y\"\n  ]\n}\n",
		},
		{
			name: "extra block version only",
			in:   `{"extra":{"verup":{"version":"1.2.3","files":[]}}}`,
			want: "{\n  \"extra\": {\n    \"verup\": {\n      \"version\": \"1.2.4\",\n      \"files\": []\n    }\n  }\n}\n",
		},
		{
			name: "no version fields added",
			in:   `{"name":"a/b"}`,
			want: "{\n  \"name\": \"a/b\"\n}\n",
		},
		{
			name: "four space indent becomes two",
			in:   "{\n    \"version\": \"1.2.3\",\n    \"homepage\": \"https://example.com/ü\"\n}",
			want: "{\n  \"version\": \"1.2.4\",\n  \"homepage\": \"https://example.com/ü\"\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := For(StructuredJSON, nil).Rewrite([]byte(tt.in), "1.2.4")
			if err != nil {
				t.Fatalf("Rewrite() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Rewrite() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestJSONRewrite_KeepsExistingEscapes(t *testing.T) {
	in := `{"version":"1.2.3","homepage":"https:\/\/example.com\/a","author":"J\u00fcrgen","plain":"a/b \u00e9"}`
	want := "{\n  \"version\": \"1.2.4\",\n  \"homepage\": \"https:\\/\\/example.com\\/a\",\n  \"author\": \"J\\u00fcrgen\",\n  \"plain\": \"a/b \\u00e9\"\n}\n"

	got, err := For(StructuredJSON, nil).Rewrite([]byte(in), "1.2.4")
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if string(got) != want {
		t.Errorf("Rewrite() =\n%s\nwant\n%s", got, want)
	}
	if v := gjson.GetBytes(got, "homepage").String(); v != "https://example.com/a" {
		t.Errorf("homepage decodes to %q", v)
	}
}

func TestJSONRewrite_BothVersionsKeptInSync(t *testing.T) {
	in := `{"version":"1.1.1","extra":{"verup":{"version":"1.2.3"}}}`
	got, err := For(StructuredJSON, nil).Rewrite([]byte(in), "1.2.4")
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if v := gjson.GetBytes(got, "version").String(); v != "1.2.4" {
		t.Errorf("version = %q", v)
	}
	if v := gjson.GetBytes(got, "extra.verup.version").String(); v != "1.2.4" {
		t.Errorf("extra.verup.version = %q", v)
	}
}

func TestJSONRewrite_Invalid(t *testing.T) {
	for _, in := range []string{`{ "name": "test", invalid json }`, `[1]`, ``} {
		_, err := For(StructuredJSON, nil).Rewrite([]byte(in), "1.0.0")
		if !errors.Is(err, ErrInvalidJSON) {
			t.Errorf("Rewrite(%q) error = %v, want ErrInvalidJSON", in, err)
		}
	}
}

func TestTextRewrite(t *testing.T) {
	in := strings.Join([]string{
		"<?php",
		"/**",
		" * Version file for tests",
		" * @version 1.2.3",
		" */",
		"",
		"$version = '1.2.3';",
		"",
		"return $version;",
	}, "\n")
	want := strings.ReplaceAll(in, "1.2.3", "2.0.0")

	got, err := For(PatternText, pattern.Defaults()).Rewrite([]byte(in), "2.0.0")
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if string(got) != want {
		t.Errorf("Rewrite() =\n%s\nwant\n%s", got, want)
	}
}

func TestTextRewrite_PreservesLineEndings(t *testing.T) {
	in := "$version = '1.0.0';\r\nother 1.0.0\r\n"
	want := "$version = '1.0.1';\r\nother 1.0.0\r\n"

	got, err := For(PatternText, pattern.Defaults()).Rewrite([]byte(in), "1.0.1")
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if string(got) != want {
		t.Errorf("Rewrite() = %q, want %q", got, want)
	}
}

func TestContent_Idempotent(t *testing.T) {
	tests := []struct {
		path string
		data string
	}{
		{"version.txt", "// @version 1.2.3\n"},
		{"bower.json", `{"version":"1.2.3"}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			first, err := Content(tt.path, []byte(tt.data), "1.2.4", pattern.Defaults())
			if err != nil {
				t.Fatalf("Content() error = %v", err)
			}
			if !first.Changed {
				t.Fatal("first rewrite reported unchanged")
			}

			second, err := Content(tt.path, first.Content, "1.2.4", pattern.Defaults())
			if err != nil {
				t.Fatalf("Content() error = %v", err)
			}
			if second.Changed {
				t.Errorf("second rewrite changed content:\n%s", second.Content)
			}
			if string(second.Content) != string(first.Content) {
				t.Errorf("second rewrite differs from first")
			}
		})
	}
}

func TestContent_NoMatchIsUnchanged(t *testing.T) {
	res, err := Content("notes.md", []byte("nothing here\n"), "9.9.9", pattern.Defaults())
	if err != nil {
		t.Fatalf("Content() error = %v", err)
	}
	if res.Changed {
		t.Error("expected unchanged result")
	}
	if res.Kind != PatternText {
		t.Errorf("Kind = %v", res.Kind)
	}
}

func TestEngine_File(t *testing.T) {
	ctx := context.Background()
	fs := core.NewMockFileSystem()
	fs.SetFile("/p/version.txt", []byte("// @version 1.2.3"))

	res, err := NewEngine(fs).File(ctx, "/p/version.txt", "1.2.4", pattern.Defaults())
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	if string(res.Content) != "// @version 1.2.4" {
		t.Errorf("Content = %q", res.Content)
	}

	// File never writes.
	data, _ := fs.GetFile("/p/version.txt")
	if string(data) != "// @version 1.2.3" {
		t.Errorf("file was modified: %q", data)
	}

	if _, err := NewEngine(fs).File(ctx, "/p/missing.txt", "1.2.4", nil); err == nil {
		t.Error("expected error for missing file")
	}
}
