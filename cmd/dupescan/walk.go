package main

import (
	"io/fs"
	"os"
	"path/filepath"

	"dupescan/engine"
)

// walkFiles collects one engine.File per regular file under root. This
// is the file-system traversal collaborator spec.md places explicitly
// out of the engine package's scope.
func walkFiles(root string) ([]*engine.File, error) {
	var files []*engine.File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// A single unreadable entry shouldn't abort the whole walk;
			// skip it and keep going.
			return nil
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, engine.NewFile(path, d.Name(), sizeOf))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// walkFolders collects one engine.File per directory under root, sized
// by the total size of every regular file it directly or transitively
// contains — the attribute the folders scan type buckets on.
func walkFolders(root string) ([]*engine.File, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	files := make([]*engine.File, 0, len(dirs))
	for _, dir := range dirs {
		dir := dir
		files = append(files, engine.NewFile(dir, filepath.Base(dir), func(string) (int64, error) {
			return dirSize(dir)
		}))
	}
	return files, nil
}

func dirSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})
	return total, err
}

func sizeOf(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
