package wikihtml

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

func BenchmarkRenderReleaseNotes(b *testing.B) {
	src := string(readReleaseNotes(b))
	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	for i := 0; i < b.N; i++ {
		_ = Render(src)
	}
}

func BenchmarkRenderScaled(b *testing.B) {
	base := string(readReleaseNotes(b))
	for _, n := range []int{1, 10, 100} {
		src := strings.Repeat(base, n)
		b.Run("x"+strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(src)))
			for i := 0; i < b.N; i++ {
				_ = Render(src)
			}
		})
	}
}

func BenchmarkConvertPage(b *testing.B) {
	data := readReleaseNotes(b)
	b.ReportAllocs()
	reader := bytes.NewReader(data)
	for i := 0; i < b.N; i++ {
		reader.Reset(data)
		if err := Convert(RenderRequest{
			Reader:  reader,
			Writer:  io.Discard,
			Options: []RenderOption{WithPage("", DefaultTheme())},
		}); err != nil {
			b.Fatalf("convert: %v", err)
		}
	}
}

func BenchmarkHTTPRender(b *testing.B) {
	data := readReleaseNotes(b)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}))
	defer server.Close()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := HTTPRender(context.Background(), HTTPRenderRequest{
			URL:    server.URL,
			Writer: io.Discard,
		}); err != nil {
			b.Fatalf("http render: %v", err)
		}
	}
}
