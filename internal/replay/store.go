// Package replay resolves replay artifacts written by the trading application
// on disk. Artifacts live at <root>/<SYMBOL MM-YY>/<YYYYMMDD>.<ext>.
package replay

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rxtech-lab/replay-miner/internal/contract"
	"github.com/rxtech-lab/replay-miner/pkg/errors"
)

// DefaultExtension is the extension of NinjaTrader 8 replay files.
const DefaultExtension = "nrd"

// Store answers whether the artifact for a contract and day exists.
type Store struct {
	root      string
	extension string
}

// DefaultRoot returns the NinjaTrader 8 replay directory of the current user.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeArtifactProbeFailed, "failed to resolve home directory", err)
	}

	return filepath.Join(home, "Documents", "NinjaTrader 8", "db", "replay"), nil
}

// NewStore creates a store rooted at root. An empty extension selects DefaultExtension.
func NewStore(root string, extension string) *Store {
	if extension == "" {
		extension = DefaultExtension
	}

	return &Store{
		root:      root,
		extension: extension,
	}
}

// Root returns the replay root directory.
func (s *Store) Root() string {
	return s.root
}

// ContractDir returns the directory holding the artifacts of c.
func (s *Store) ContractDir(c contract.Contract) string {
	return filepath.Join(s.root, c.String())
}

// FileName returns the artifact file name for day.
func (s *Store) FileName(day time.Time) string {
	return fmt.Sprintf("%s.%s", day.Format(contract.ArtifactLayout), s.extension)
}

// Path returns the artifact path for c and day.
func (s *Store) Path(c contract.Contract, day time.Time) string {
	return filepath.Join(s.ContractDir(c), s.FileName(day))
}

// Exists reports whether the artifact for c and day is on disk. A missing file
// is not an error; any other stat failure is.
func (s *Store) Exists(c contract.Contract, day time.Time) (bool, error) {
	_, err := os.Stat(s.Path(c, day))
	if err == nil {
		return true, nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, errors.Wrapf(errors.ErrCodeArtifactProbeFailed, err, "failed to stat artifact for %s on %s", c, day.Format(time.DateOnly))
}

// Count returns how many artifacts with the store's extension exist for c.
func (s *Store) Count(c contract.Contract) (int, error) {
	matches, err := filepath.Glob(filepath.Join(s.ContractDir(c), "*."+s.extension))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeArtifactProbeFailed, "failed to list artifacts", err)
	}

	return len(matches), nil
}
