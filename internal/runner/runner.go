package runner

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"typo3update/internal/diag"
	"typo3update/internal/sniff"
	"typo3update/internal/source"
	"typo3update/internal/tokfile"
	"typo3update/internal/trace"
)

// Options configures a Runner.
type Options struct {
	// MaxDiagnostics bounds the bag of each file; <= 0 means the bag maximum.
	MaxDiagnostics int
	// Jobs limits parallel files in ProcessDir; <= 0 means GOMAXPROCS.
	Jobs     int
	Progress ProgressSink
}

// Runner processes token files with the sniffs produced by its factory.
type Runner struct {
	factory Factory
	opts    Options
}

// Result is the outcome of one file.
type Result struct {
	Path    string
	FileID  source.FileID
	Tokens  int
	Bag     *diag.Bag
	Err     error // load failure; Bag is empty then
	Elapsed time.Duration
}

// New creates a Runner.
func New(factory Factory, opts Options) *Runner {
	return &Runner{factory: factory, opts: opts}
}

// ProcessFile runs every token of the file through the sniffs registered for
// its kind, in stream order.
func (r *Runner) ProcessFile(ctx context.Context, fileSet *source.FileSet, id source.FileID) *Result {
	file := fileSet.Get(id)
	if file == nil {
		return &Result{FileID: id, Bag: diag.NewBag(r.opts.MaxDiagnostics), Err: fmt.Errorf("unknown file id %d", id)}
	}
	path := file.FormatPath("auto", fileSet.BaseDir())

	ctx, span := trace.StartSpan(ctx, trace.ScopeFile, "file:"+path)
	started := time.Now()

	bag := diag.NewBag(r.opts.MaxDiagnostics)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	registry := NewRegistry(r.factory()...)
	base := sniff.NewFile(id, path, file.Tokens, reporter)

	sniffs := registry.Sniffs()
	views := make([]*sniff.File, len(sniffs))
	for i, s := range sniffs {
		views[i] = base.For(s.Code())
	}

	tracer := trace.FromContext(ctx)
	for pos, tok := range file.Tokens {
		if ctx.Err() != nil {
			break
		}
		for _, idx := range registry.byKind[tok.Kind] {
			s := sniffs[idx]
			if tracer.Wants(trace.ScopeToken) {
				trace.Point(tracer, trace.ScopeToken, "dispatch", s.Code(), "pos", strconv.Itoa(pos))
			}
			runSniff(s, views[idx], pos, reporter)
		}
	}

	bag.Sort()
	if bag.Dropped() > 0 {
		trace.Point(tracer, trace.ScopeFile, diag.InternalLimit.ID(), path, "dropped", strconv.Itoa(bag.Dropped()))
	}
	span.WithExtra("tokens", strconv.Itoa(len(file.Tokens))).
		WithExtra("diagnostics", strconv.Itoa(bag.Len())).
		End("")

	return &Result{
		Path:    path,
		FileID:  id,
		Tokens:  len(file.Tokens),
		Bag:     bag,
		Elapsed: time.Since(started),
	}
}

// runSniff isolates a panicking sniff: the panic becomes an error diagnostic
// and processing continues with the next token.
func runSniff(s sniff.Sniff, f *sniff.File, pos int, reporter diag.Reporter) {
	defer func() {
		if rec := recover(); rec != nil {
			diag.ReportError(reporter, diag.InternalSniffPanic, f.Pos(pos),
				fmt.Sprintf("sniff %s panicked: %v", s.Code(), rec)).
				WithSniff(s.Code()).
				Emit()
		}
	}()
	s.Process(f, pos)
}

// ListDumps returns the sorted token dump files under dir.
func ListDumps(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && tokfile.IsDump(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// ProcessDir loads every dump under dir and processes the files in parallel.
// Results are ordered by path. A file that fails to load yields a Result with
// Err set; only cancellation aborts the whole run.
func (r *Runner) ProcessDir(ctx context.Context, dir string) (*source.FileSet, []*Result, error) {
	files, err := ListDumps(dir)
	if err != nil {
		return nil, nil, err
	}
	return r.ProcessFiles(ctx, dir, files)
}

// ProcessFiles is ProcessDir over an explicit file list.
func (r *Runner) ProcessFiles(ctx context.Context, baseDir string, files []string) (*source.FileSet, []*Result, error) {
	fileSet := source.NewFileSetWithBase(baseDir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	ctx, span := trace.StartSpan(ctx, trace.ScopeCommand, "process")
	defer span.End("")

	// FileSet не потокобезопасен: загружаем всё до запуска горутин
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	for i, path := range files {
		r.emit(Event{File: path, Status: StatusQueued})
		fileIDs[i], loadErrors[i] = fileSet.Load(path)
	}

	jobs := r.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErrors[i] != nil {
				results[i] = &Result{Path: path, Bag: diag.NewBag(r.opts.MaxDiagnostics), Err: loadErrors[i]}
				r.emit(Event{File: path, Status: StatusError, Err: loadErrors[i]})
				return nil
			}

			r.emit(Event{File: path, Status: StatusWorking})
			res := r.ProcessFile(gctx, fileSet, fileIDs[i])
			res.Path = path
			results[i] = res
			r.emit(Event{File: path, Status: StatusDone, Diagnostics: res.Bag.Len(), Elapsed: res.Elapsed})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, compact(results), err
	}
	return fileSet, results, nil
}

func (r *Runner) emit(ev Event) {
	if r.opts.Progress != nil {
		r.opts.Progress.OnEvent(ev)
	}
}

func compact(results []*Result) []*Result {
	out := results[:0]
	for _, res := range results {
		if res != nil {
			out = append(out, res)
		}
	}
	return out
}

// Diagnostics flattens the bags of results in order.
func Diagnostics(results []*Result) []*diag.Diagnostic {
	var out []*diag.Diagnostic
	for _, res := range results {
		if res == nil || res.Bag == nil {
			continue
		}
		out = append(out, res.Bag.Items()...)
	}
	return out
}
