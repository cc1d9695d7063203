package wikihtml

import (
	"os"
	"testing"
)

func readSample(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read %s: %v", path, err)
	}
	return data
}

func readReleaseNotes(tb testing.TB) []byte {
	tb.Helper()
	return readSample(tb, "testdata/golden/release-notes.wiki")
}
