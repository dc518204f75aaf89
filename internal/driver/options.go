package driver

import (
	"io"
	"os"

	"tongue/internal/diag"
	"tongue/internal/observ"
	"tongue/internal/source"
)

// SourceExt is the extension of lambda calculus sources picked up in
// directory mode.
const SourceExt = ".lc"

// StdinTarget is the target that reads the source from standard input.
// The source is registered as StdinName.
const (
	StdinTarget = "-"
	StdinName   = "<stdin>"
)

// Options configures a driver run. The zero value is usable.
type Options struct {
	// MaxDiagnostics limits each bag; 0 means unlimited.
	MaxDiagnostics int
	// Jobs bounds directory workers; 0 means GOMAXPROCS.
	Jobs         int
	NormalizeNFC bool
	Timer        *observ.Timer
	Progress     ProgressSink
	// Cache, if set, lets Check skip files whose content was seen before.
	Cache *DiskCache
	// Stdin is read for StdinTarget; nil means os.Stdin.
	Stdin io.Reader
}

func (o Options) newBag() *diag.Bag {
	return diag.NewBagWithLimit(o.MaxDiagnostics)
}

func (o Options) loadOptions() source.LoadOptions {
	return source.LoadOptions{NormalizeNFC: o.NormalizeNFC}
}

// load reads path into set, or standard input for StdinTarget.
func (o Options) load(set *source.Set, path string) (*source.Source, error) {
	if path != StdinTarget {
		return set.Load(path)
	}
	r := o.Stdin
	if r == nil {
		r = os.Stdin
	}
	return set.LoadReader(StdinName, r)
}

func (o Options) track(name string) func(string) {
	if o.Timer == nil {
		return func(string) {}
	}
	return o.Timer.Track(name)
}

// loadFailure reports a file that could not be read.
func loadFailure(bag *diag.Bag, path string, err error) {
	bag.Raise(diag.Unlocated(diag.Error, diag.IOLoadFileError, "failed to load "+path+": "+err.Error()))
}
