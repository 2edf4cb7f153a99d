package replay

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/replay-miner/internal/contract"
	"github.com/rxtech-lab/replay-miner/internal/logger"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	root  string
	store *Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	s.root = s.T().TempDir()
	s.store = NewStore(s.root, "")
}

func (s *StoreTestSuite) writeArtifact(c contract.Contract, day time.Time) {
	path := s.store.Path(c, day)
	s.Require().NoError(os.MkdirAll(filepath.Dir(path), 0755))
	s.Require().NoError(os.WriteFile(path, []byte("replay"), 0644))
}

func (s *StoreTestSuite) TestPathNaming() {
	c := contract.MustParse("MNQ 03-26")
	day := contract.Date(2026, time.March, 5)

	s.Equal(filepath.Join(s.root, "MNQ 03-26", "20260305.nrd"), s.store.Path(c, day))
	s.Equal("20260305.nrd", s.store.FileName(day))
	s.Equal(filepath.Join(s.root, "MNQ 03-26"), s.store.ContractDir(c))
	s.Equal(s.root, s.store.Root())
}

func (s *StoreTestSuite) TestCustomExtension() {
	store := NewStore(s.root, "bin")
	s.Equal("20251219.bin", store.FileName(contract.Date(2025, time.December, 19)))
}

func (s *StoreTestSuite) TestExists() {
	c := contract.MustParse("ES 12-25")
	day := contract.Date(2025, time.December, 18)

	exists, err := s.store.Exists(c, day)
	s.NoError(err)
	s.False(exists)

	s.writeArtifact(c, day)

	exists, err = s.store.Exists(c, day)
	s.NoError(err)
	s.True(exists)

	exists, err = s.store.Exists(contract.MustParse("ES 09-25"), day)
	s.NoError(err)
	s.False(exists)
}

func (s *StoreTestSuite) TestCount() {
	c := contract.MustParse("ES 12-25")

	count, err := s.store.Count(c)
	s.NoError(err)
	s.Equal(0, count)

	s.writeArtifact(c, contract.Date(2025, time.December, 18))
	s.writeArtifact(c, contract.Date(2025, time.December, 17))
	s.Require().NoError(os.WriteFile(filepath.Join(s.store.ContractDir(c), "notes.txt"), nil, 0644))

	count, err = s.store.Count(c)
	s.NoError(err)
	s.Equal(2, count)
}

func (s *StoreTestSuite) TestDefaultRoot() {
	root, err := DefaultRoot()
	s.NoError(err)
	s.Contains(root, filepath.Join("NinjaTrader 8", "db", "replay"))
}

func (s *StoreTestSuite) TestWatchSignalsNewArtifact() {
	c := contract.MustParse("MNQ 03-26")
	s.Require().NoError(os.MkdirAll(s.store.ContractDir(c), 0755))

	w, err := s.store.Watch(c, logger.NewNopLogger())
	s.Require().NoError(err)
	defer w.Close()

	s.writeArtifact(c, contract.Date(2026, time.March, 5))

	select {
	case <-w.Wake():
	case <-time.After(2 * time.Second):
		s.Fail("expected a wake signal for the new artifact")
	}
}

func (s *StoreTestSuite) TestWatchFollowsLateContractDirectory() {
	c := contract.MustParse("MNQ 12-25")

	w, err := s.store.Watch(c, logger.NewNopLogger())
	s.Require().NoError(err)
	defer w.Close()

	s.Require().NoError(os.MkdirAll(s.store.ContractDir(c), 0755))

	select {
	case <-w.Wake():
	case <-time.After(2 * time.Second):
		s.Fail("expected a wake signal when the contract directory appears")
	}
}

func (s *StoreTestSuite) TestWatchMissingRoot() {
	store := NewStore(filepath.Join(s.root, "missing"), "")

	_, err := store.Watch(contract.MustParse("MNQ 03-26"), logger.NewNopLogger())
	s.Error(err)
}

func (s *StoreTestSuite) TestCloseIsIdempotent() {
	w, err := s.store.Watch(contract.MustParse("MNQ 03-26"), logger.NewNopLogger())
	s.Require().NoError(err)

	s.NoError(w.Close())
	s.NoError(w.Close())
}
