package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"snapsort/internal/pipeline"
)

// newProgressSink renders a terminal progress bar when the writer is a TTY
// and discards progress events otherwise, keeping piped output clean.
func newProgressSink(out io.Writer) pipeline.ProgressSink {
	file, ok := out.(*os.File)
	if !ok {
		return pipeline.NopProgress{}
	}
	if !isatty.IsTerminal(file.Fd()) && !isatty.IsCygwinTerminal(file.Fd()) {
		return pipeline.NopProgress{}
	}
	return &barProgress{out: file}
}

type barProgress struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

func (b *barProgress) Begin(total int) {
	b.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(b.out),
		progressbar.OptionSetDescription("Relocating files"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
}

func (b *barProgress) Tick(string) {
	if b.bar != nil {
		_ = b.bar.Add(1)
	}
}

func (b *barProgress) End() {
	if b.bar != nil {
		_ = b.bar.Finish()
	}
}
