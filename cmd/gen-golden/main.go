// Command gen-golden rewrites testdata/golden/*.golden from the matching
// .wiki files. Run it from the module root after an intended output change.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/wikihtml"
)

func main() {
	root := filepath.Join("testdata", "golden")
	if len(os.Args) > 1 {
		root = os.Args[1]
	}
	paths, err := filepath.Glob(filepath.Join(root, "*.wiki"))
	if err != nil {
		fatalf("glob %s: %v", root, err)
	}
	if len(paths) == 0 {
		fatalf("no wiki files found under %s", root)
	}
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			fatalf("read %s: %v", path, err)
		}
		out, err := wikihtml.ConvertBytes(src)
		if err != nil {
			fatalf("render %s: %v", path, err)
		}
		goldenPath := goldenPath(path)
		if err := os.WriteFile(goldenPath, append(out, '\n'), 0o644); err != nil {
			fatalf("write %s: %v", goldenPath, err)
		}
		fmt.Fprintf(os.Stdout, "wrote %s\n", goldenPath)
	}
}

func goldenPath(wikiPath string) string {
	return strings.TrimSuffix(wikiPath, ".wiki") + ".golden"
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
