package pipeline

// ProgressSink receives one event per processed candidate. Implementations
// render progress however they like; the pipeline only guarantees Begin is
// called once with the total, Tick once per candidate, End once at the end.
type ProgressSink interface {
	Begin(total int)
	Tick(name string)
	End()
}

// NopProgress discards all progress events.
type NopProgress struct{}

func (NopProgress) Begin(int) {}

func (NopProgress) Tick(string) {}

func (NopProgress) End() {}
