package wikihtml

import (
	"bytes"
	"io"
	"sync"

	"github.com/cockroachdb/errors"
)

// maxPooledBuffer is the largest buffer capacity returned to bufferPool.
const maxPooledBuffer = 1 << 20

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// releaseBuffer pools buf unless it grew past maxPooledBuffer, and reports
// whether it did.
func releaseBuffer(buf *bytes.Buffer) bool {
	if buf.Cap() > maxPooledBuffer {
		return false
	}
	buf.Reset()
	bufferPool.Put(buf)
	return true
}

// Render converts wiki markup to an HTML fragment.
//
// The passes run in a fixed order and each depends on the exact output of
// the previous one: escape, stash block code, parse blocks, inline passes,
// restore code.
func Render(text string) string {
	escaped := escapeHTML(text)
	stashed, stash := stashCode(escaped)
	html := parseBlocks(stashed)
	html = transformInline(html)
	return stash.restore(html)
}

// RenderRequest configures Convert.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Options []RenderOption
}

// Convert reads the whole of Reader, renders it and writes the result to Writer.
func Convert(req RenderRequest) error {
	if req.Reader == nil {
		return errors.New("convert: reader is nil")
	}
	if req.Writer == nil {
		return errors.New("convert: writer is nil")
	}
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer releaseBuffer(buf)
	if _, err := buf.ReadFrom(req.Reader); err != nil {
		return errors.Wrap(err, "convert: read")
	}
	out, err := ConvertBytes(buf.Bytes(), req.Options...)
	if err != nil {
		return err
	}
	if _, err := req.Writer.Write(out); err != nil {
		return errors.Wrap(err, "convert: write")
	}
	return nil
}

// ConvertBytes renders src and returns the fragment, or a full page when
// WithPage is given.
func ConvertBytes(src []byte, opts ...RenderOption) ([]byte, error) {
	cfg := newRenderConfig(opts)
	if !cfg.skipValidation {
		if err := ValidateInput(src); err != nil {
			return nil, errors.Wrap(err, "convert")
		}
	}
	if cfg.stripFrontMatter {
		src = stripFrontMatter(src)
	}
	fragment := Render(string(src))
	if !cfg.page {
		return []byte(fragment), nil
	}
	var out bytes.Buffer
	out.Grow(len(fragment) + 2048)
	err := WritePage(&out, Page{
		Title: cfg.title,
		Theme: cfg.theme,
		Body:  fragment,
	})
	if err != nil {
		return nil, errors.Wrap(err, "convert")
	}
	return out.Bytes(), nil
}
