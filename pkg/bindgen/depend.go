// pkg/bindgen/depend.go
package bindgen

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ReadDepends returns the rebuild triggers embedded in a generated file,
// resolved against the file's directory
func ReadDepends(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dir := filepath.Dir(path)
	var deps []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "package ") {
			break
		}
		dep, ok := strings.CutPrefix(line, DependPrefix)
		if !ok {
			continue
		}
		dep = filepath.FromSlash(strings.TrimSpace(dep))
		if !filepath.IsAbs(dep) {
			dep = filepath.Join(dir, dep)
		}
		deps = append(deps, dep)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return deps, nil
}

// Stale reports whether the artifact at path must be regenerated: it is
// missing, or one of its triggers is missing or newer than it. Reasons name
// each offending path.
func Stale(path string) (bool, []string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, []string{path + ": not generated"}, nil
	}
	if err != nil {
		return false, nil, err
	}

	deps, err := ReadDepends(path)
	if err != nil {
		return false, nil, err
	}

	var reasons []string
	for _, dep := range deps {
		mod, err := newest(dep)
		if errors.Is(err, fs.ErrNotExist) {
			reasons = append(reasons, dep+": missing")
			continue
		}
		if err != nil {
			return false, nil, err
		}
		if mod.After(info.ModTime()) {
			reasons = append(reasons, dep+": changed")
		}
	}
	return len(reasons) > 0, reasons, nil
}

// newest returns the latest modification time at or below p
func newest(p string) (time.Time, error) {
	info, err := os.Stat(p)
	if err != nil {
		return time.Time{}, err
	}
	if !info.IsDir() {
		return info.ModTime(), nil
	}

	latest := info.ModTime()
	err = filepath.WalkDir(p, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable entries do not make the artifact stale
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		if fi.ModTime().After(latest) {
			latest = fi.ModTime()
		}
		return nil
	})
	return latest, err
}
