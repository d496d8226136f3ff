// Package filename normalizes copier-part filenames into shell-safe on-disk
// names and computes the DOS 8.3 names the FAT12 writer requires.
package filename

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeChar = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)

// InvalidDosNameError is returned when a name's stem collapses to nothing
// under DOS 8.3 normalization.
type InvalidDosNameError struct {
	Name string
}

func (e *InvalidDosNameError) Error() string {
	return fmt.Sprintf("filename: %q has no valid DOS 8.3 stem", e.Name)
}

// SanitizeName replaces every character outside [A-Za-z0-9_.-] with an
// underscore. Used for output directory names derived from the ROM base
// name.
func SanitizeName(s string) string {
	return unsafeChar.ReplaceAllString(s, "_")
}

// tracker is the subset of workspace.Workspace that Normalize needs: the
// ability to swap one tracked path for another after a rename.
type tracker interface {
	Retrack(oldPath, newPath string)
}

// Normalize renames each part's on-disk file to a shell-safe name (same
// replacement rule as SanitizeName, applied only to the name portion; the
// extension is preserved) and updates ws's tracked set so deletion on close
// still targets the renamed file. It returns the resulting paths in input
// order; paths that were already shell-safe are returned unchanged.
func Normalize(paths []string, ws tracker) ([]string, error) {
	renamed := make([]string, len(paths))
	for i, p := range paths {
		dir := filepath.Dir(p)
		base := filepath.Base(p)
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)

		safeStem := SanitizeName(stem)
		safeExt := SanitizeName(strings.TrimPrefix(ext, "."))
		newBase := safeStem
		if safeExt != "" {
			newBase += "." + safeExt
		}
		newPath := filepath.Join(dir, newBase)

		if newPath != p {
			if err := os.Rename(p, newPath); err != nil {
				return nil, fmt.Errorf("filename: renaming %s: %w", p, err)
			}
			if ws != nil {
				ws.Retrack(p, newPath)
			}
		}
		renamed[i] = newPath
	}
	return renamed, nil
}

// DosName computes the 8.3 DOS name for s: uppercase, drop characters
// outside [A-Z0-9], split at the last '.', truncate stem to 8 and extension
// to 3 characters. Fails with InvalidDosNameError if the stem becomes empty.
func DosName(s string) (string, error) {
	upper := strings.ToUpper(s)

	idx := strings.LastIndex(upper, ".")
	var stemPart, extPart string
	if idx >= 0 {
		stemPart, extPart = upper[:idx], upper[idx+1:]
	} else {
		stemPart = upper
	}

	stem := dropInvalidDosChars(stemPart)
	if len(stem) > 8 {
		stem = stem[:8]
	}
	if stem == "" {
		return "", &InvalidDosNameError{Name: s}
	}

	ext := dropInvalidDosChars(extPart)
	if len(ext) > 3 {
		ext = ext[:3]
	}

	if ext == "" {
		return stem, nil
	}
	return stem + "." + ext, nil
}

func dropInvalidDosChars(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
