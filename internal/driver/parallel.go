package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	gitignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"tongue/internal/diag"
	"tongue/internal/lambda"
	"tongue/internal/source"
	"tongue/internal/trace"
)

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string         // путь к файлу
	Source *source.Source // nil, если файл не загрузился
	Tokens []Slot
	Bag    *diag.Bag
}

// ParseDirResult содержит результат парсинга одного файла
type ParseDirResult struct {
	Path   string
	Source *source.Source
	Expr   *lambda.Expr
	Bag    *diag.Bag
}

// IgnoreFile lists gitignore-style patterns, relative to the directory it
// sits in, of sources ListSources skips.
const IgnoreFile = ".tongueignore"

// ListSources возвращает отсортированный список всех *.lc файлов в директории.
// Paths matched by dir/.tongueignore are left out.
func ListSources(dir string) ([]string, error) {
	var ignore *gitignore.GitIgnore
	ignorePath := filepath.Join(dir, IgnoreFile)
	if _, err := os.Stat(ignorePath); err == nil {
		if ignore, err = gitignore.CompileIgnoreFile(ignorePath); err != nil {
			return nil, fmt.Errorf("%s: %w", ignorePath, err)
		}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, SourceExt) {
			return nil
		}
		if ignore != nil {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			if ignore.MatchesPath(filepath.ToSlash(rel)) {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

type loaded struct {
	sources map[string]*source.Source
	errs    map[string]error
}

// loadAll читает файлы последовательно: Set не потокобезопасен.
func loadAll(set *source.Set, files []string, opts Options) loaded {
	done := opts.track("load")
	defer done("")
	l := loaded{
		sources: make(map[string]*source.Source, len(files)),
		errs:    make(map[string]error),
	}
	for _, path := range files {
		opts.emit(Event{File: path, Stage: StageLoad, Status: StatusQueued})
		src, err := opts.load(set, path)
		if err != nil {
			l.errs[path] = err
			continue
		}
		l.sources[path] = src
	}
	return l
}

// forEachFile runs fn for every file on a bounded errgroup. Results are
// written by index, so no locking is needed.
func forEachFile(ctx context.Context, files []string, opts Options, fn func(ctx context.Context, i int, path string) error) error {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return fn(gctx, i, path)
		})
	}
	return g.Wait()
}

// TokenizeDir токенизирует все *.lc файлы в директории параллельно.
// Each file gets its own bag.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.Set, []TokenizeDirResult, error) {
	files, err := ListSources(dir)
	if err != nil {
		return nil, nil, err
	}
	set := source.NewSetWithBase(dir, opts.loadOptions())
	if len(files) == 0 {
		return set, nil, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "tokenize_dir", trace.CurrentSpan(ctx)).WithExtra("dir", dir)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	l := loadAll(set, files, opts)
	results := make([]TokenizeDirResult, len(files))
	err = forEachFile(ctx, files, opts, func(ctx context.Context, i int, path string) error {
		bag := opts.newBag()
		results[i] = TokenizeDirResult{Path: path, Bag: bag}
		if loadErr, failed := l.errs[path]; failed {
			loadFailure(bag, path, loadErr)
			opts.emit(Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
			return nil
		}

		started := time.Now()
		opts.emit(Event{File: path, Stage: StageTokenize, Status: StatusWorking})
		src := l.sources[path]
		results[i].Source = src
		results[i].Tokens = TokenizeSource(ctx, src, bag, opts)
		opts.emit(Event{File: path, Stage: StageTokenize, Status: finalStatus(bag), Elapsed: time.Since(started)})
		return nil
	})
	return set, results, err
}

// ParseDir парсит все *.lc файлы в директории параллельно.
// The interner is shared between workers.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.Set, *source.Interner, []ParseDirResult, error) {
	files, err := ListSources(dir)
	if err != nil {
		return nil, nil, nil, err
	}
	set := source.NewSetWithBase(dir, opts.loadOptions())
	interner := source.NewInterner()
	if len(files) == 0 {
		return set, interner, nil, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "parse_dir", trace.CurrentSpan(ctx)).WithExtra("dir", dir)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	l := loadAll(set, files, opts)
	results := make([]ParseDirResult, len(files))
	err = forEachFile(ctx, files, opts, func(ctx context.Context, i int, path string) error {
		bag := opts.newBag()
		results[i] = ParseDirResult{Path: path, Bag: bag}
		if loadErr, failed := l.errs[path]; failed {
			loadFailure(bag, path, loadErr)
			opts.emit(Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
			return nil
		}

		started := time.Now()
		opts.emit(Event{File: path, Stage: StageParse, Status: StatusWorking})
		src := l.sources[path]
		results[i].Source = src
		results[i].Expr = ParseSource(ctx, src, bag, interner, opts)
		opts.emit(Event{File: path, Stage: StageParse, Status: finalStatus(bag), Elapsed: time.Since(started)})
		return nil
	})
	return set, interner, results, err
}

func finalStatus(bag *diag.Bag) Status {
	if bag.IsErr() {
		return StatusError
	}
	return StatusDone
}
