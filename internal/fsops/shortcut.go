package fsops

import (
	"fmt"
	"path/filepath"
)

// ShortcutFileName is the name of the catalog shortcut written into renamed folders.
const ShortcutFileName = "VN Shortcut.url"

// TextWriter writes small text files.
type TextWriter interface {
	WriteTextFile(path, content string) error
}

// WriteShortcut writes an Internet Shortcut pointing at url into folder.
func WriteShortcut(w TextWriter, folder, url string) (string, error) {
	path := filepath.Join(folder, ShortcutFileName)
	content := fmt.Sprintf("[InternetShortcut]\nURL=%s\n", url)
	if err := w.WriteTextFile(path, content); err != nil {
		return "", err
	}
	return path, nil
}
