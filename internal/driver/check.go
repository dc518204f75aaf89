package driver

import (
	"context"
	"os"
	"time"

	"tongue/internal/diag"
	"tongue/internal/source"
	"tongue/internal/trace"
)

// CheckResult is the diagnostic outcome for one file.
type CheckResult struct {
	Path   string
	Source *source.Source
	Bag    *diag.Bag
	Parsed bool
	// Cached reports that diagnostics were replayed from the disk cache.
	Cached bool
}

// Check parses target, a file, a directory of *.lc files or StdinTarget,
// for diagnostics only. With opts.Cache set, files whose content and options
// match a previous run are not parsed again.
func Check(ctx context.Context, target string, opts Options) (*source.Set, []CheckResult, error) {
	files := []string{target}
	set := source.NewSet(opts.loadOptions())
	if target != StdinTarget {
		st, err := os.Stat(target)
		if err != nil {
			return nil, nil, err
		}
		if st.IsDir() {
			set.SetBaseDir(target)
			if files, err = ListSources(target); err != nil {
				return nil, nil, err
			}
		}
	}
	if len(files) == 0 {
		return set, nil, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "check", trace.CurrentSpan(ctx)).WithExtra("target", target)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	l := loadAll(set, files, opts)
	interner := source.NewInterner()
	results := make([]CheckResult, len(files))
	err := forEachFile(ctx, files, opts, func(ctx context.Context, i int, path string) error {
		bag := opts.newBag()
		results[i] = CheckResult{Path: path, Bag: bag}
		if loadErr, failed := l.errs[path]; failed {
			loadFailure(bag, path, loadErr)
			opts.emit(Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
			return nil
		}
		src := l.sources[path]
		results[i].Source = src
		results[i].Parsed, results[i].Cached = checkOne(ctx, src, bag, interner, opts)
		return nil
	})
	return set, results, err
}

func checkOne(ctx context.Context, src *source.Source, bag *diag.Bag, interner *source.Interner, opts Options) (parsed, cached bool) {
	path := src.Name()
	started := time.Now()
	key := cacheKey(src, opts)

	var payload DiskPayload
	hit, readErr := opts.Cache.Get(key, &payload)
	if readErr == nil && hit && payload.ContentHash == src.Hash() {
		payload.restore(src, bag)
		opts.emit(Event{File: path, Stage: StageParse, Status: StatusCached, Elapsed: time.Since(started)})
		return payload.Parsed, true
	}

	opts.emit(Event{File: path, Stage: StageParse, Status: StatusWorking})
	parsed = ParseSource(ctx, src, bag, interner, opts) != nil
	// предупреждения кэша в сам кэш не попадают
	if err := opts.Cache.Put(key, newPayload(src, bag, parsed)); err != nil {
		bag.Raise(diag.Unlocated(diag.Warning, diag.IOCacheError, "cache write failed: "+err.Error()))
	}
	if readErr != nil {
		bag.Raise(diag.Unlocated(diag.Warning, diag.IOCacheError, "cache read failed: "+readErr.Error()))
	}
	opts.emit(Event{File: path, Stage: StageParse, Status: finalStatus(bag), Elapsed: time.Since(started)})
	return parsed, false
}
