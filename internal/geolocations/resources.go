package geolocations

import (
	"context"
	"strings"
)

// Resource paths. Identifiers are inserted verbatim; callers pass well-formed codes.

func countriesPath() string { return "/countries" }
func countryPath(code string) string { return "/countries/" + code }
func currenciesPath() string { return "/currencies" }
func currencyPath(code string) string { return "/currencies/" + code }
func flagsPath() string { return "/flags" }
func flagPath(countryCode string) string { return "/flags/" + countryCode }
func completePath(code string) string { return "/complete/" + code }

func currencyByCountryPath(countryCode string) string {
	return "/currencies/country/" + countryCode
}

func statesPath(countryCode string) string {
	return "/locations/" + countryCode + "/states"
}

func citiesPath(countryCode, stateCode string) string {
	return "/locations/" + countryCode + "/states/" + stateCode + "/cities"
}

// ListCountries returns every country.
func (c *Client) ListCountries(ctx context.Context) (List, error) {
	return c.getList(ctx, "ListCountries", countriesPath())
}

// CountryByCode returns the country with the given ISO code (e.g. "US").
func (c *Client) CountryByCode(ctx context.Context, code string) (Object, error) {
	return c.getObject(ctx, "CountryByCode", countryPath(code))
}

// CountryByName fetches the full country list and returns the first entry whose name
// matches case-insensitively. found is false when nothing matches; that is not an error.
func (c *Client) CountryByName(ctx context.Context, name string) (country Object, found bool, err error) {
	countries, err := c.ListCountries(ctx)
	if err != nil {
		return nil, false, err
	}
	country, found = countries.Find(func(o Object) bool {
		n, ok := o.String("name")
		return ok && strings.EqualFold(n, name)
	})
	return country, found, nil
}

// ListCurrencies returns every currency entry.
func (c *Client) ListCurrencies(ctx context.Context) (List, error) {
	return c.getList(ctx, "ListCurrencies", currenciesPath())
}

// CurrencyByCountryCode returns the currency used by a country.
func (c *Client) CurrencyByCountryCode(ctx context.Context, countryCode string) (Object, error) {
	return c.getObject(ctx, "CurrencyByCountryCode", currencyByCountryPath(countryCode))
}

// CurrencyByCode returns a currency by its ISO 4217 code (e.g. "USD").
func (c *Client) CurrencyByCode(ctx context.Context, currencyCode string) (Object, error) {
	return c.getObject(ctx, "CurrencyByCode", currencyPath(currencyCode))
}

// ListFlags returns all flags keyed by country code.
func (c *Client) ListFlags(ctx context.Context) (Object, error) {
	return c.getObject(ctx, "ListFlags", flagsPath())
}

// FlagByCountryCode returns the flag of one country.
func (c *Client) FlagByCountryCode(ctx context.Context, countryCode string) (Object, error) {
	return c.getObject(ctx, "FlagByCountryCode", flagPath(countryCode))
}

// StatesByCountryCode returns the states of a country keyed by state code.
func (c *Client) StatesByCountryCode(ctx context.Context, countryCode string) (Object, error) {
	return c.getObject(ctx, "StatesByCountryCode", statesPath(countryCode))
}

// CitiesByState returns the cities of one state keyed by city id.
func (c *Client) CitiesByState(ctx context.Context, countryCode, stateCode string) (Object, error) {
	return c.getObject(ctx, "CitiesByState", citiesPath(countryCode, stateCode))
}

// CompleteByCountryCode returns the aggregate country, currency, flag and locations record.
func (c *Client) CompleteByCountryCode(ctx context.Context, countryCode string) (Object, error) {
	return c.getObject(ctx, "CompleteByCountryCode", completePath(countryCode))
}
