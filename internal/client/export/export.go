package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/filex"
)

// Error is an export failure as shown to the user.
type Error struct {
	Err error
}

func (e *Error) Error() string { return "PDF Error: " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// FileName is "Premium-Notes-<unix millis>.pdf".
func FileName(now time.Time) string {
	return fmt.Sprintf("Premium-Notes-%d.pdf", now.UnixMilli())
}

// Exporter writes PDF snapshots of the note grid into a directory.
type Exporter struct {
	dir   string
	now   func() time.Time
	write func(path string, data []byte, perm os.FileMode) error
}

func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir, now: time.Now, write: filex.WriteFileAtomic}
}

// Export rasterises cards, wraps them in a PDF and returns the file path.
// A failed export leaves no file behind.
func (e *Exporter) Export(cards []Card) (string, error) {
	dir, err := filex.EnsureDir(e.dir)
	if err != nil {
		return "", &Error{Err: err}
	}

	doc, err := Document(Upscale(Rasterize(cards), Scale))
	if err != nil {
		return "", &Error{Err: err}
	}

	path := filepath.Join(dir, FileName(e.now()))
	if err := e.write(path, doc, 0o644); err != nil {
		return "", &Error{Err: err}
	}
	return path, nil
}
