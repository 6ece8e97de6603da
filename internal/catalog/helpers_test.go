package catalog

import (
	"context"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/vk/codeapi/internal/config"
	"github.com/vk/codeapi/internal/ctxlog"
	"github.com/vk/codeapi/internal/testutil"
	"github.com/zclconf/go-cty/cty"
)

// entry declares a well-formed code entry.
func entry(number int, message string) *config.Entry {
	return &config.Entry{
		Name:    "C" + strconv.Itoa(number),
		Number:  cty.NumberIntVal(int64(number)),
		Message: cty.StringVal(message),
		Color:   cty.NilVal,
	}
}

// coloredEntry declares a code entry with an explicit color.
func coloredEntry(number int, message, color string) *config.Entry {
	e := entry(number, message)
	e.Color = cty.StringVal(color)
	return e
}

func enumUnit(id string, d *config.Descriptor, entries ...*config.Entry) *config.Unit {
	return &config.Unit{ID: id, Kind: config.UnitEnum, Descriptor: d, Entries: entries}
}

// numbersUnit declares one unit holding a plain code for every number.
func numbersUnit(id string, numbers ...int) *config.Unit {
	entries := make([]*config.Entry, 0, len(numbers))
	for _, n := range numbers {
		entries = append(entries, entry(n, "code "+strconv.Itoa(n)))
	}
	return enumUnit(id, nil, entries...)
}

func numbersOf(codes []Code) []int {
	out := make([]int, 0, len(codes))
	for _, c := range codes {
		out = append(out, c.Number)
	}
	return out
}

// logContext returns a context carrying a debug logger that writes to the
// returned buffer.
func logContext(t *testing.T) (context.Context, *testutil.SafeBuffer) {
	t.Helper()
	buf := &testutil.SafeBuffer{}
	return ctxlog.WithLogger(context.Background(), testutil.NewLogger(t, buf)), buf
}

// countingObserver records cache events.
type countingObserver struct {
	hits   atomic.Int64
	misses atomic.Int64
	scans  atomic.Int64
}

func (o *countingObserver) CacheHit(string)          { o.hits.Add(1) }
func (o *countingObserver) CacheMiss(string)         { o.misses.Add(1) }
func (o *countingObserver) IndexScanned(string, int) { o.scans.Add(1) }
