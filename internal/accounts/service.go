package accounts

import (
	"fmt"
	"os"
	"strings"

	"github.com/belegwerk-dev/belegwerk/internal/model"
)

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byCode   map[string]model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	byCode := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byCode[a.Code] = a
	}
	return &Service{accounts: accounts, byCode: byCode}
}

// Load reads an accounts.csv file. A missing file is not an error: the
// chart is optional and its absence returns a nil Service.
func Load(path string) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by code.
func (s *Service) Get(code string) (model.Account, bool) {
	a, ok := s.byCode[code]
	return a, ok
}

// ChartText renders the chart as "code - name" lines for prompt injection.
func (s *Service) ChartText() string {
	lines := make([]string, len(s.accounts))
	for i, a := range s.accounts {
		lines[i] = a.Label()
	}
	return strings.Join(lines, "\n")
}

// Save writes the chart of accounts to path.
func (s *Service) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}

// DefaultChart returns a starter chart with common Swiss SME expense accounts.
func DefaultChart() []model.Account {
	return []model.Account{
		{Code: "4000", Name: "Materialaufwand"},
		{Code: "4400", Name: "Einkauf Dienstleistungen"},
		{Code: "6000", Name: "Raumaufwand"},
		{Code: "6100", Name: "Unterhalt und Reparaturen"},
		{Code: "6200", Name: "Fahrzeugaufwand"},
		{Code: "6300", Name: "Versicherungen"},
		{Code: "6500", Name: "Verwaltungsaufwand"},
		{Code: "6570", Name: "Informatikaufwand"},
		{Code: "6600", Name: "Werbeaufwand"},
	}
}
