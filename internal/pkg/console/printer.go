package console

import (
	"fmt"
	"io"
	"sync"
	"time"
	"unicode/utf8"
)

const rowFormat = "%-10s%-20s%-10s\n"

// Printer writes report lines to w. Each call is a single write under a
// lock, so lines from concurrent tasks never split.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Printf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)

	p.mu.Lock()
	defer p.mu.Unlock()

	//nolint:errcheck
	io.WriteString(p.w, line)
}

func (p *Printer) Banner(title string) {
	p.Printf("--------- %s ---------\n", title)
}

func (p *Printer) Header() {
	p.Printf(rowFormat, "Code", "Temperature", "Delay")
}

func (p *Printer) Row(code string, temperature fmt.Stringer, delay bool) {
	p.Printf(rowFormat, code, temperature.String(), fmt.Sprint(delay))
}

func (p *Printer) Elapsed(d time.Duration) {
	p.Printf("Total taken time : %d milliseconds\n", d.Milliseconds())
}

// Truncate keeps at most limit runes of msg.
func Truncate(msg string, limit int) string {
	if limit <= 0 {
		return ""
	}

	if utf8.RuneCountInString(msg) <= limit {
		return msg
	}

	runes := []rune(msg)
	return string(runes[:limit])
}
