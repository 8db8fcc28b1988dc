package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"geolocations/internal/dataset"
)

var (
	ErrInvalidCode = errors.New("invalid code")
	ErrNotFound    = errors.New("resource not found")
)

// Dataset is the read side of the geo-locations snapshot; *dataset.Store implements it.
type Dataset interface {
	Countries(ctx context.Context) ([]dataset.Record, error)
	CountryByCode(ctx context.Context, code string) (dataset.Record, error)
	Currencies(ctx context.Context) ([]dataset.Record, error)
	CurrencyByCountryCode(ctx context.Context, countryCode string) (dataset.Record, error)
	CurrencyByCode(ctx context.Context, currencyCode string) (dataset.Record, error)
	Flags(ctx context.Context) (dataset.Record, error)
	FlagByCountryCode(ctx context.Context, countryCode string) (dataset.Record, error)
	States(ctx context.Context, countryCode string) (dataset.Record, error)
	Cities(ctx context.Context, countryCode, stateCode string) (dataset.Record, error)
	Complete(ctx context.Context, countryCode string) (*dataset.Complete, error)
	Ping(ctx context.Context) error
}

// GeoService defines the lookups served over HTTP.
// Codes are validated and upper-cased before they reach the dataset.
type GeoService interface {
	Countries(ctx context.Context) ([]dataset.Record, error)
	Country(ctx context.Context, code string) (dataset.Record, error)
	Currencies(ctx context.Context) ([]dataset.Record, error)
	CurrencyByCountry(ctx context.Context, countryCode string) (dataset.Record, error)
	Currency(ctx context.Context, currencyCode string) (dataset.Record, error)
	Flags(ctx context.Context) (dataset.Record, error)
	Flag(ctx context.Context, countryCode string) (dataset.Record, error)
	States(ctx context.Context, countryCode string) (dataset.Record, error)

	// Cities returns the id -> name map of one state.
	Cities(ctx context.Context, countryCode, stateCode string) (dataset.Record, error)

	// Complete returns the country with its currency, flag and locations.
	Complete(ctx context.Context, countryCode string) (*dataset.Complete, error)

	// Ping reports whether the dataset is readable.
	Ping(ctx context.Context) error
}

type geoService struct {
	data Dataset
}

// NewGeoService constructs a new GeoService.
func NewGeoService(data Dataset) GeoService {
	return &geoService{data: data}
}

func (s *geoService) Countries(ctx context.Context) ([]dataset.Record, error) {
	out, err := s.data.Countries(ctx)
	return out, translate(err)
}

func (s *geoService) Country(ctx context.Context, code string) (dataset.Record, error) {
	cc, err := countryCode(code)
	if err != nil {
		return nil, err
	}
	out, err := s.data.CountryByCode(ctx, cc)
	return out, translate(err)
}

func (s *geoService) Currencies(ctx context.Context) ([]dataset.Record, error) {
	out, err := s.data.Currencies(ctx)
	return out, translate(err)
}

func (s *geoService) CurrencyByCountry(ctx context.Context, code string) (dataset.Record, error) {
	cc, err := countryCode(code)
	if err != nil {
		return nil, err
	}
	out, err := s.data.CurrencyByCountryCode(ctx, cc)
	return out, translate(err)
}

func (s *geoService) Currency(ctx context.Context, code string) (dataset.Record, error) {
	cur, err := currencyCode(code)
	if err != nil {
		return nil, err
	}
	out, err := s.data.CurrencyByCode(ctx, cur)
	return out, translate(err)
}

func (s *geoService) Flags(ctx context.Context) (dataset.Record, error) {
	out, err := s.data.Flags(ctx)
	return out, translate(err)
}

func (s *geoService) Flag(ctx context.Context, code string) (dataset.Record, error) {
	cc, err := countryCode(code)
	if err != nil {
		return nil, err
	}
	out, err := s.data.FlagByCountryCode(ctx, cc)
	return out, translate(err)
}

func (s *geoService) States(ctx context.Context, code string) (dataset.Record, error) {
	cc, err := countryCode(code)
	if err != nil {
		return nil, err
	}
	out, err := s.data.States(ctx, cc)
	return out, translate(err)
}

func (s *geoService) Cities(ctx context.Context, code, state string) (dataset.Record, error) {
	cc, err := countryCode(code)
	if err != nil {
		return nil, err
	}
	sc, err := stateCode(state)
	if err != nil {
		return nil, err
	}
	out, err := s.data.Cities(ctx, cc, sc)
	return out, translate(err)
}

func (s *geoService) Complete(ctx context.Context, code string) (*dataset.Complete, error) {
	cc, err := countryCode(code)
	if err != nil {
		return nil, err
	}
	out, err := s.data.Complete(ctx, cc)
	return out, translate(err)
}

func (s *geoService) Ping(ctx context.Context) error {
	return s.data.Ping(ctx)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, dataset.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("dataset: %w", err)
	}
}

func countryCode(s string) (string, error) {
	if len(s) != 2 || !isLetters(s) {
		return "", fmt.Errorf("%w: country code %q", ErrInvalidCode, s)
	}
	return strings.ToUpper(s), nil
}

func currencyCode(s string) (string, error) {
	if len(s) != 3 || !isLetters(s) {
		return "", fmt.Errorf("%w: currency code %q", ErrInvalidCode, s)
	}
	return strings.ToUpper(s), nil
}

// stateCode accepts ISO 3166-2 subdivision suffixes such as "CA", "01" or "ENG".
func stateCode(s string) (string, error) {
	if s == "" || len(s) > 8 {
		return "", fmt.Errorf("%w: state code %q", ErrInvalidCode, s)
	}
	for _, r := range s {
		if !isLetter(r) && !(r >= '0' && r <= '9') && r != '-' {
			return "", fmt.Errorf("%w: state code %q", ErrInvalidCode, s)
		}
	}
	return strings.ToUpper(s), nil
}

func isLetters(s string) bool {
	for _, r := range s {
		if !isLetter(r) {
			return false
		}
	}
	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
