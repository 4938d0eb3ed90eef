package widget

import (
	"bytes"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// File is a user-selected file as the widget sees it: a name, the type the
// host declared for it, and its content.
type File interface {
	Name() string
	Type() string
	Open() (io.ReadCloser, error)
}

// MemFile is a File held in memory.
type MemFile struct {
	FileName string
	MIMEType string
	Data     []byte
}

func (f MemFile) Name() string { return f.FileName }
func (f MemFile) Type() string { return f.MIMEType }

func (f MemFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.Data)), nil
}

type localFile struct {
	path     string
	mimeType string
}

// LocalFile wraps a file on disk. Its declared type comes from the extension
// alone, the way a browser fills File.type; the content is never inspected.
func LocalFile(path string) File {
	return localFile{path: path, mimeType: declaredType(path)}
}

func (f localFile) Name() string { return filepath.Base(f.path) }
func (f localFile) Type() string { return f.mimeType }

func (f localFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

// The system MIME table is not guaranteed to know .txt, so plain text
// extensions are resolved first.
var textExtensions = map[string]bool{
	".txt":  true,
	".text": true,
}

func declaredType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if textExtensions[ext] {
		return AcceptedFileType
	}
	t := mime.TypeByExtension(ext)
	if t == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(t)
	if err != nil {
		return ""
	}
	return mediaType
}
