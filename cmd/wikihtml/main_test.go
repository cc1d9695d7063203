package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"

	"pkt.systems/wikihtml"
	"pkt.systems/wikihtml/internal/config"
)

func TestOpenInputFileAndURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.wiki")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	reader, closer, err := openInputs([]string{path}, nil)
	if err != nil {
		t.Fatalf("openInputs file: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ := io.ReadAll(reader)
	if string(buf) != "hello" {
		t.Fatalf("unexpected file content: %q", string(buf))
	}

	fileURL := "file://" + path
	reader, closer, err = openInputs([]string{fileURL}, nil)
	if err != nil {
		t.Fatalf("openInputs file URL: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ = io.ReadAll(reader)
	if string(buf) != "hello" {
		t.Fatalf("unexpected file URL content: %q", string(buf))
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("remote"))
	}))
	defer srv.Close()
	reader, closer, err = openInputs([]string{srv.URL}, nil)
	if err != nil {
		t.Fatalf("openInputs http: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ = io.ReadAll(reader)
	if string(buf) != "remote" {
		t.Fatalf("unexpected http content: %q", string(buf))
	}
}

func TestOpenInputsConcatenates(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.wiki")
	second := filepath.Join(dir, "b.wiki")
	if err := os.WriteFile(first, []byte("one "), 0o644); err != nil {
		t.Fatalf("write first: %v", err)
	}
	if err := os.WriteFile(second, []byte("two"), 0o644); err != nil {
		t.Fatalf("write second: %v", err)
	}
	reader, closer, err := openInputs([]string{first, second}, nil)
	if err != nil {
		t.Fatalf("openInputs concat: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ := io.ReadAll(reader)
	if string(buf) != "one two" {
		t.Fatalf("unexpected concatenated content: %q", string(buf))
	}
}

func TestOpenInputsStdin(t *testing.T) {
	stdin := strings.NewReader("piped")
	reader, closer, err := openInputs(nil, stdin)
	if err != nil || closer != nil {
		t.Fatalf("openInputs stdin: %v, closer %v", err, closer)
	}
	if reader != io.Reader(stdin) {
		t.Fatalf("expected stdin reader")
	}
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunStdinToStdout(t *testing.T) {
	code, out, errOut := runCLI(t, "*** Hi\n-a", "--strip-front-matter")
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if want := "<h3>Hi</h3><ul><li>a</li></ul>"; out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestRunPageToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wiki")
	if err := os.WriteFile(in, []byte("* Doc\nbody"), 0o644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "nested", "out.html")
	code, _, errOut := runCLI(t, "", "--page", "-t", "nord", "-o", outPath, in)
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	for _, want := range []string{"<title>Doc</title>", "<h1>Doc</h1>body<br>", ".wikihtml h1 {"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("missing %q in %s", want, data)
		}
	}
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "wikihtml.toml")
	if err := os.WriteFile(cfgPath, []byte("page = true\ntitle = \"Configured\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, out, errOut := runCLI(t, "text", "--config", cfgPath)
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "<title>Configured</title>") {
		t.Fatalf("config not applied: %s", out)
	}
	code, out, errOut = runCLI(t, "text", "--config", cfgPath, "--title", "Flag")
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "<title>Flag</title>") {
		t.Fatalf("flag did not override config: %s", out)
	}
}

func TestRunErrors(t *testing.T) {
	cases := []struct {
		name  string
		stdin string
		args  []string
		code  int
		msg   string
	}{
		{"unknown flag", "", []string{"--nope"}, exitUsage, ""},
		{"unknown theme", "x", []string{"--theme", "nope"}, exitUsage, `unknown theme "nope"`},
		{"binary input", "a\x00b", nil, exitError, "binary input"},
		{"missing file", "", []string{filepath.Join(t.TempDir(), "missing.wiki")}, exitError, "missing.wiki"},
		{"watch without output", "", []string{"--watch", "x.wiki"}, exitUsage, "--watch needs"},
		{"watch url", "", []string{"--watch", "-o", "out.html", "https://example.com/x"}, exitUsage, "local file"},
		{"serve and watch", "", []string{"--serve", "--watch"}, exitUsage, "mutually exclusive"},
		{"bad log level", "", []string{"--log-level", "loud"}, exitUsage, "log level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, tc.stdin, tc.args...)
			if code != tc.code {
				t.Fatalf("exit %d, want %d: %s", code, tc.code, errOut)
			}
			if !strings.Contains(errOut, tc.msg) {
				t.Fatalf("stderr %q does not mention %q", errOut, tc.msg)
			}
		})
	}
}

func TestRunNoValidate(t *testing.T) {
	code, out, errOut := runCLI(t, "a\x00b", "--no-validate")
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "a\x00b<br>" {
		t.Fatalf("got %q", out)
	}
}

func TestRunListThemes(t *testing.T) {
	code, out, _ := runCLI(t, "", "--list-themes")
	if code != exitOK {
		t.Fatalf("exit %d", code)
	}
	lines := strings.Fields(out)
	if len(lines) == 0 || lines[0] != "default" {
		t.Fatalf("unexpected theme list: %q", out)
	}
}

func TestWriteSyntaxWraps(t *testing.T) {
	var buf bytes.Buffer
	if err := writeSyntax(&buf, 40); err != nil {
		t.Fatalf("writeSyntax: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"''bold''", "{code}x{/code}", "|~a|b|"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in cheat sheet", want)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "    ") && ansi.PrintableRuneWidth(line) > 40 {
			t.Fatalf("detail line exceeds width: %q", line)
		}
	}
}

func TestTerminalWidthFallback(t *testing.T) {
	t.Setenv("COLUMNS", "")
	if got := terminalWidth(&bytes.Buffer{}, 72); got != 72 {
		t.Fatalf("got %d, want 72", got)
	}
	t.Setenv("COLUMNS", "100")
	if got := terminalWidth(&bytes.Buffer{}, 72); got != 100 {
		t.Fatalf("got %d, want 100", got)
	}
}

func TestFragmentOptionsSkipPage(t *testing.T) {
	cfg := &config.Config{StripFrontMatter: true, Validate: false, Page: true}
	out, err := wikihtml.ConvertBytes([]byte("---\ntitle: x\n---\na\x00"), fragmentOptions(cfg)...)
	if err != nil {
		t.Fatalf("ConvertBytes: %v", err)
	}
	if string(out) != "a\x00<br>" {
		t.Fatalf("got %q", out)
	}

	page, err := wikihtml.ConvertBytes([]byte("a"), renderOptions(cfg, wikihtml.DefaultTheme())...)
	if err != nil {
		t.Fatalf("ConvertBytes page: %v", err)
	}
	if !bytes.HasPrefix(page, []byte("<!DOCTYPE html>")) {
		t.Fatalf("renderOptions dropped the page shell: %q", page)
	}
}

func TestOpenInputsHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()
	reader, closer, err := openInputs([]string{srv.URL}, nil)
	if err != nil {
		t.Fatalf("openInputs: %v", err)
	}
	defer func() { _ = closer.Close() }()
	if _, err := io.ReadAll(reader); err == nil || !strings.Contains(err.Error(), "410") {
		t.Fatalf("want a 410 error, got %v", err)
	}
}
