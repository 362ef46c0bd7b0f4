package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// inputExts are the AST export extensions picked up from directories.
var inputExts = map[string]struct{}{
	".json": {}, ".msgpack": {}, ".mp": {}, ".cbor": {},
}

// IsInput reports whether path has an AST export extension.
func IsInput(path string) bool {
	_, ok := inputExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ListInputs expands directories into the export files below them. Files
// named explicitly are kept whatever their extension. The result is
// deduplicated and sorted for a deterministic order.
func ListInputs(paths []string) ([]string, error) {
	seen := make(map[string]struct{}, len(paths))
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsInput(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// OutputPath is where the script for input lands under outDir.
func OutputPath(outDir, input string) string {
	base := filepath.Base(input)
	return filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+".py")
}

// checkCollisions rejects inputs that would write the same output file.
func checkCollisions(outDir string, files []string) error {
	owners := make(map[string]string, len(files))
	for _, f := range files {
		out := OutputPath(outDir, f)
		if prev, ok := owners[out]; ok {
			return fmt.Errorf("%s and %s both write %s", prev, f, out)
		}
		owners[out] = f
	}
	return nil
}
