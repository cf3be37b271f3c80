package excerpt

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ErrInvalidFile indicates a File that cannot be written into an [FS].
var ErrInvalidFile = errors.New("invalid file")

// File is a single generated artifact.
type File struct {
	// The relative path to which the generated file should be written.
	RelativePath string

	// Contents of the generated file.
	Data []byte

	// From is the list of jennies whose excerpts make up this File.
	From []NamedJenny
}

// FileMapper transforms a File, e.g. to add a license header or run a
// formatter. FileMappers run after a file has been fully rendered.
type FileMapper func(File) (File, error)

// Files is a set of Files with unique paths.
type Files []File

// Validate checks that every File has a non-empty relative path, and that no
// path occurs twice.
func (fl Files) Validate() error {
	var result *multierror.Error
	seen := make(map[string]bool, len(fl))
	for _, f := range fl {
		switch {
		case f.RelativePath == "":
			result = multierror.Append(result, fmt.Errorf("%w: empty path (from %s)", ErrInvalidFile, jennystack(f.From)))
		case filepath.IsAbs(f.RelativePath):
			result = multierror.Append(result, fmt.Errorf("%w: %s must be a relative path (from %s)", ErrInvalidFile, f.RelativePath, jennystack(f.From)))
		case seen[f.RelativePath]:
			result = multierror.Append(result, fmt.Errorf("%w: %s produced more than once", ErrInvalidFile, f.RelativePath))
		}
		seen[f.RelativePath] = true
	}
	return result.ErrorOrNil()
}

func jennystack(s []NamedJenny) string {
	if len(s) == 0 {
		return "<unknown>"
	}
	names := make([]string, len(s))
	for i, j := range s {
		names[i] = j.JennyName()
	}
	return strings.Join(names, ":")
}
