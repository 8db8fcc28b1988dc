package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Dataset file keys.
const (
	CountriesKey  = "countries.json"
	CurrenciesKey = "currencies.json"
	FlagsKey      = "flags.json"
)

// LocationsKey returns the key of the per-country states and cities file.
func LocationsKey(countryCode string) string {
	return "locations/" + countryCode + ".json"
}

// ErrNotFound is returned when the requested country, currency, flag, state or city list does not exist.
var ErrNotFound = errors.New("not found")

// Record is one JSON object of the dataset, passed through without a schema.
type Record map[string]any

// Complete aggregates everything known about one country.
// Currency, Flag and Locations are nil when the dataset has no entry for them.
type Complete struct {
	Country   Record `json:"country"`
	Currency  Record `json:"currency"`
	Flag      Record `json:"flag"`
	Locations Record `json:"locations"`
}

// Store answers geo-locations lookups from a Source.
// Each file is decoded on first use and kept for the lifetime of the Store.
// Failed loads are not remembered, so a later call retries.
type Store struct {
	src Source

	mu         sync.Mutex
	countries  []Record
	currencies []Record
	flags      Record
	locations  map[string]Record
}

// New creates a Store reading from src.
func New(src Source) *Store {
	return &Store{
		src:       src,
		locations: make(map[string]Record),
	}
}

func (s *Store) load(ctx context.Context, key string, out any) error {
	rc, err := s.src.Open(ctx, key)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return err
		}
		return fmt.Errorf("open %s: %w", key, err)
	}
	defer rc.Close()

	if err := json.NewDecoder(rc).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Countries returns every country.
func (s *Store) Countries(ctx context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.countries == nil {
		var countries []Record
		if err := s.load(ctx, CountriesKey, &countries); err != nil {
			return nil, fmt.Errorf("load countries: %w", err)
		}
		if countries == nil {
			countries = []Record{}
		}
		s.countries = countries
	}
	return s.countries, nil
}

// CountryByCode returns the country whose "code" equals code.
func (s *Store) CountryByCode(ctx context.Context, code string) (Record, error) {
	countries, err := s.Countries(ctx)
	if err != nil {
		return nil, err
	}
	return findBy(countries, "code", code)
}

// CountryByName returns the first country whose "name" matches case-insensitively.
func (s *Store) CountryByName(ctx context.Context, name string) (Record, error) {
	countries, err := s.Countries(ctx)
	if err != nil {
		return nil, err
	}
	return findBy(countries, "name", name)
}

// Currencies returns every currency entry (one per country).
func (s *Store) Currencies(ctx context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currencies == nil {
		var currencies []Record
		if err := s.load(ctx, CurrenciesKey, &currencies); err != nil {
			return nil, fmt.Errorf("load currencies: %w", err)
		}
		if currencies == nil {
			currencies = []Record{}
		}
		s.currencies = currencies
	}
	return s.currencies, nil
}

// CurrencyByCountryCode returns the currency entry of a country.
func (s *Store) CurrencyByCountryCode(ctx context.Context, countryCode string) (Record, error) {
	currencies, err := s.Currencies(ctx)
	if err != nil {
		return nil, err
	}
	return findBy(currencies, "country_code", countryCode)
}

// CurrencyByCode returns the first entry using the currency; shared currencies such as EUR
// appear once per country.
func (s *Store) CurrencyByCode(ctx context.Context, currencyCode string) (Record, error) {
	currencies, err := s.Currencies(ctx)
	if err != nil {
		return nil, err
	}
	return findBy(currencies, "currency_code", currencyCode)
}

// Flags returns every flag keyed by country code.
func (s *Store) Flags(ctx context.Context) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.flags == nil {
		var flags Record
		if err := s.load(ctx, FlagsKey, &flags); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
		if flags == nil {
			flags = Record{}
		}
		s.flags = flags
	}
	return s.flags, nil
}

// FlagByCountryCode returns the flag of one country.
func (s *Store) FlagByCountryCode(ctx context.Context, countryCode string) (Record, error) {
	flags, err := s.Flags(ctx)
	if err != nil {
		return nil, err
	}
	flag, ok := flags[strings.ToUpper(countryCode)].(map[string]any)
	if !ok {
		return nil, ErrNotFound
	}
	return Record(flag), nil
}

// Locations returns the whole locations file of a country.
func (s *Store) Locations(ctx context.Context, countryCode string) (Record, error) {
	code := strings.ToUpper(countryCode)

	s.mu.Lock()
	defer s.mu.Unlock()

	if loc, ok := s.locations[code]; ok {
		return loc, nil
	}

	var loc Record
	if err := s.load(ctx, LocationsKey(code), &loc); err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load locations for %s: %w", code, err)
	}
	if loc == nil {
		return nil, ErrNotFound
	}
	// code may alias a caller's reused buffer (fiber path params); the map key must own its bytes.
	s.locations[strings.Clone(code)] = loc
	return loc, nil
}

// States returns the states of a country keyed by state code.
// Each value is an array of [id, name, cities].
func (s *Store) States(ctx context.Context, countryCode string) (Record, error) {
	loc, err := s.Locations(ctx, countryCode)
	if err != nil {
		return nil, err
	}
	states, ok := loc["states"].(map[string]any)
	if !ok {
		return nil, ErrNotFound
	}
	return Record(states), nil
}

// Cities returns the cities of a state keyed by city id.
func (s *Store) Cities(ctx context.Context, countryCode, stateCode string) (Record, error) {
	states, err := s.States(ctx, countryCode)
	if err != nil {
		return nil, err
	}
	state, ok := states[strings.ToUpper(stateCode)].([]any)
	if !ok || len(state) < 3 {
		return nil, ErrNotFound
	}
	cities, ok := state[2].(map[string]any)
	if !ok {
		return nil, ErrNotFound
	}
	return Record(cities), nil
}

// Complete returns the country together with its currency, flag and locations.
// Only a missing country is an error.
func (s *Store) Complete(ctx context.Context, countryCode string) (*Complete, error) {
	country, err := s.CountryByCode(ctx, countryCode)
	if err != nil {
		return nil, err
	}

	out := &Complete{Country: country}
	if out.Currency, err = optional(s.CurrencyByCountryCode(ctx, countryCode)); err != nil {
		return nil, err
	}
	if out.Flag, err = optional(s.FlagByCountryCode(ctx, countryCode)); err != nil {
		return nil, err
	}
	if out.Locations, err = optional(s.Locations(ctx, countryCode)); err != nil {
		return nil, err
	}
	return out, nil
}

// Ping checks that the country list can be read.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.Countries(ctx)
	return err
}

// findBy matches case-insensitively so "us" and "US" address the same country.
func findBy(records []Record, field, value string) (Record, error) {
	for _, r := range records {
		if v, ok := r[field].(string); ok && strings.EqualFold(v, value) {
			return r, nil
		}
	}
	return nil, ErrNotFound
}

func optional(r Record, err error) (Record, error) {
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return r, err
}
