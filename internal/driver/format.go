package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"runefmt/internal/config"
	"runefmt/internal/diag"
	"runefmt/internal/format"
	"runefmt/internal/source"
)

// Options configures one formatting run.
type Options struct {
	Config config.Config

	// Check: не трогать файлы, только отметить Changed.
	Check bool
	// Stdout: вернуть отформатированный текст в Result, файлы не трогать.
	Stdout bool

	// Jobs ограничивает параллелизм; <=0 — GOMAXPROCS.
	Jobs int

	// Cache — открытый дисковый кэш; nil отключает кэширование.
	Cache *Cache

	// Events, если задан, получает статус каждого файла по ходу прогона.
	// Канал закрывает вызывающая сторона после возврата FormatPaths.
	Events chan<- Event

	MaxDiagnostics int
}

// Result captures the outcome for a single file.
type Result struct {
	Path      string
	Changed   bool
	Formatted []byte
	Bag       *diag.Bag
	// FileSet резолвит span'ы диагностик; nil на кэш-хите (Bag тогда пуст).
	FileSet *source.FileSet
	Err     error
}

// ErrNoSourceFiles is returned when the path arguments match no .rn files.
var ErrNoSourceFiles = errors.New("format: no source files found")

// FormatPaths formats the given files and directories in parallel.
// Per-file failures land in Result.Err; the run keeps going past them.
func FormatPaths(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := CollectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoSourceFiles
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индекс на горутину уникален, мьютекс не нужен
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			emit(opts.Events, path, StatusWorking)
			results[i] = formatOne(path, opts)
			emit(opts.Events, path, resultStatus(results[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatOne(path string, opts Options) Result {
	result := Result{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		return result
	}

	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 256
	}
	bag := diag.NewBag(maxDiag)
	result.Bag = bag

	fingerprint := opts.Config.Fingerprint()
	key := CacheKey(fingerprint, data)

	var formatted []byte
	cached := false
	if opts.Cache != nil {
		var payload CachePayload
		if ok, getErr := opts.Cache.Get(key, &payload); getErr == nil && ok {
			formatted = payload.Output
			cached = true
		}
	}

	if !cached {
		// Changed сравнивается с сырыми байтами: файл с CRLF/BOM всегда
		// переписывается в нормализованном виде.
		normalized, flags := source.Normalize(data)
		fileSet := source.NewFileSet()
		sf := fileSet.Get(fileSet.Add(path, normalized, flags))
		result.FileSet = fileSet
		formatted, err = format.FormatSource(sf, format.Options{
			Config:   opts.Config,
			Reporter: &diag.BagReporter{Bag: bag},
		})
		if err != nil {
			result.Err = err
			return result
		}
		if bag.HasErrors() {
			result.Err = errors.New("format: parse errors present")
			return result
		}
		if opts.Cache != nil {
			// ошибка записи кэша не фатальна для прогона
			_ = opts.Cache.Put(key, &CachePayload{
				Schema: cacheSchemaVersion,
				Output: formatted,
			})
		}
	}

	result.Changed = !bytes.Equal(data, formatted)

	if opts.Check {
		return result
	}
	if opts.Stdout {
		result.Formatted = formatted
		return result
	}
	if result.Changed {
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}
		if writeErr := os.WriteFile(path, formatted, mode.Perm()); writeErr != nil {
			result.Err = writeErr
			result.Changed = false
		}
	}
	return result
}
