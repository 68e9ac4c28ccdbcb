package scaffold

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
)

// ResolveTemplate returns the directory for template id under templatesDir.
// A missing template yields a *TemplateNotFoundError listing what exists.
func ResolveTemplate(templatesDir, id string) (string, error) {
	dir := filepath.Join(templatesDir, id)
	log.Debug("Resolving template", "template", id, "path", dir)

	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return dir, nil
	}

	available, _ := AvailableTemplates(templatesDir)
	return "", &TemplateNotFoundError{Template: id, Available: available}
}

// AvailableTemplates lists the template ids (sub-directories) in templatesDir, sorted.
func AvailableTemplates(templatesDir string) ([]string, error) {
	entries, err := os.ReadDir(templatesDir)
	if err != nil {
		return nil, fmt.Errorf("reading templates directory %s: %w", templatesDir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// copyTemplate recursively copies a template tree into outputDir.
func copyTemplate(templateDir, outputDir string) (*Result, error) {
	result := &Result{OutputDir: outputDir}
	skip, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, err
	}
	if err := copyDir(templateDir, outputDir, "", skip, &result.Files); err != nil {
		return nil, fmt.Errorf("copying %s to %s: %w", templateDir, outputDir, err)
	}
	return result, nil
}

// copyDir recursively copies src to dst. Symlinks are followed so the copy
// holds their contents. Copied file paths are appended to files relative to
// the top-level destination.
//
// Each level of src is listed before dst is created, and the entry at skip
// (the absolute top-level destination) is left out, so a destination nested
// inside src is never copied into itself.
func copyDir(src, dst, rel, skip string, files *[]string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		if abs, err := filepath.Abs(srcPath); err == nil && abs == skip {
			continue
		}
		dstPath := filepath.Join(dst, entry.Name())
		relPath := entry.Name()
		if rel != "" {
			relPath = rel + "/" + entry.Name()
		}

		info, err := os.Stat(srcPath)
		if err != nil {
			return err
		}

		switch {
		case info.IsDir():
			if err := copyDir(srcPath, dstPath, relPath, skip, files); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			if err := copyFile(srcPath, dstPath, info.Mode().Perm()); err != nil {
				return err
			}
			*files = append(*files, relPath)
		}
		// Sockets, devices, and pipes are skipped.
	}

	return nil
}

// copyFile copies a single file from src to dst with the given permissions.
func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	log.Debug("Copied file", "path", dst)
	return out.Close()
}
