package ioscan

import (
	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gndicom/pkg/catalog"
)

type progressBar struct {
	prefix string
	bar    *pb.ProgressBar
}

// NewProgress returns a terminal progress bar for batch ingestion.
func NewProgress(prefix string) catalog.Progress {
	return &progressBar{prefix: prefix}
}

func (p *progressBar) Start(total int) {
	p.bar = pb.Full.Start(total)
	p.bar.Set("prefix", p.prefix)
	p.bar.Set(pb.CleanOnFinish, true)
}

func (p *progressBar) Increment() {
	if p.bar != nil {
		p.bar.Increment()
	}
}

func (p *progressBar) Finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}
