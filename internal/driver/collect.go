package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt — расширение файлов, которые форматтер считает своими.
const SourceExt = ".rn"

// CollectSourceFiles expands the given paths into a sorted, de-duplicated
// list of .rn files. Directories are walked recursively; explicit file
// arguments are accepted regardless of extension mismatch being an error
// elsewhere — non-.rn files are simply skipped.
func CollectSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				if strings.HasSuffix(path, SourceExt) {
					addFile(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		if filepath.Ext(p) == SourceExt {
			addFile(p)
		}
	}

	sort.Strings(files)
	return files, nil
}
