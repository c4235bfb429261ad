package banks

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

// Service provides in-memory lookup over the bank registry, backed by a
// CSV file on disk.
type Service struct {
	banks []model.Bank
	byID  map[string]model.Bank
}

// NewService creates a Service from a slice of banks.
func NewService(banks []model.Bank) *Service {
	byID := make(map[string]model.Bank, len(banks))
	for _, b := range banks {
		byID[b.ID] = b
	}
	return &Service{banks: banks, byID: byID}
}

// Load reads banks.csv from a project directory.
func Load(dir string) (*Service, error) {
	path := filepath.Join(dir, "banks.csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bank registry: %w", err)
	}
	defer f.Close()

	bs, err := ReadBanks(f)
	if err != nil {
		return nil, fmt.Errorf("reading bank registry: %w", err)
	}
	return NewService(bs), nil
}

// All returns every registered bank.
func (s *Service) All() []model.Bank {
	return s.banks
}

// Get returns a bank by ID.
func (s *Service) Get(id string) (model.Bank, bool) {
	b, ok := s.byID[id]
	return b, ok
}

// Exists reports whether a bank ID is registered.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Register adds a new bank or updates an existing one, reporting which it
// did so the caller can emit the matching bank-registered/bank-updated
// event.
func (s *Service) Register(b model.Bank) (updated bool) {
	if _, exists := s.byID[b.ID]; exists {
		updated = true
		for i, existing := range s.banks {
			if existing.ID == b.ID {
				s.banks[i] = b
				break
			}
		}
	} else {
		s.banks = append(s.banks, b)
	}
	s.byID[b.ID] = b
	return updated
}

// Save writes the bank registry to banks.csv under dir.
func (s *Service) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating project dir: %w", err)
	}

	path := filepath.Join(dir, "banks.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating bank registry file: %w", err)
	}
	defer f.Close()

	if err := WriteBanks(f, s.banks); err != nil {
		return fmt.Errorf("writing bank registry: %w", err)
	}
	return nil
}
