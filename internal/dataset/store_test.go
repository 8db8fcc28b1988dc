package dataset

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"unsafe"

	"geolocations/internal/config"
	"geolocations/internal/dataset/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleStore() *Store {
	return New(NewFSSource(SampleFS()))
}

func TestStore_Countries(t *testing.T) {
	ctx := context.Background()
	s := sampleStore()

	countries, err := s.Countries(ctx)
	require.NoError(t, err)
	assert.Len(t, countries, 6)

	us, err := s.CountryByCode(ctx, "US")
	require.NoError(t, err)
	assert.Equal(t, "United States", us["name"])

	lower, err := s.CountryByCode(ctx, "us")
	require.NoError(t, err)
	assert.Equal(t, us, lower)

	_, err = s.CountryByCode(ctx, "ZZ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_CountryByName(t *testing.T) {
	ctx := context.Background()
	s := sampleStore()

	a, err := s.CountryByName(ctx, "United Arab Emirates")
	require.NoError(t, err)
	b, err := s.CountryByName(ctx, "united arab emirates")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, "AE", a["code"])

	_, err = s.CountryByName(ctx, "Nonexistent Land")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Currencies(t *testing.T) {
	ctx := context.Background()
	s := sampleStore()

	fr, err := s.CurrencyByCountryCode(ctx, "FR")
	require.NoError(t, err)
	assert.Equal(t, "EUR", fr["currency_code"])
	assert.Equal(t, "Euro", fr["currency_name"])

	usd, err := s.CurrencyByCode(ctx, "USD")
	require.NoError(t, err)
	assert.Equal(t, "US", usd["country_code"])

	_, err = s.CurrencyByCode(ctx, "XXX")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Flags(t *testing.T) {
	ctx := context.Background()
	s := sampleStore()

	flags, err := s.Flags(ctx)
	require.NoError(t, err)
	assert.Contains(t, flags, "JP")

	jp, err := s.FlagByCountryCode(ctx, "JP")
	require.NoError(t, err)
	assert.Equal(t, "Japan", jp["name"])
	assert.Equal(t, "https://flagcdn.com/jp.svg", jp["svg_url"])

	_, err = s.FlagByCountryCode(ctx, "ZZ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_StatesAndCities(t *testing.T) {
	ctx := context.Background()
	s := sampleStore()

	states, err := s.States(ctx, "US")
	require.NoError(t, err)
	assert.Len(t, states, 4)
	ca, ok := states["CA"].([]any)
	require.True(t, ok)
	assert.Equal(t, "California", ca[1])

	cities, err := s.Cities(ctx, "US", "CA")
	require.NoError(t, err)
	assert.Equal(t, "Los Angeles", cities["1"])
	assert.Equal(t, "San Francisco", cities["2"])

	_, err = s.Cities(ctx, "US", "ZZ")
	assert.ErrorIs(t, err, ErrNotFound)

	// No locations file for France in the sample.
	_, err = s.States(ctx, "FR")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.States(ctx, "../countries")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Cities_MalformedState(t *testing.T) {
	fsys := fstest.MapFS{
		"locations/XX.json": {Data: []byte(`{"states":{"AA":[1,"Short"],"BB":[2,"Bad",["x"]]},"other":1}`)},
		"locations/YY.json": {Data: []byte(`{"country_code":"YY"}`)},
	}
	s := New(NewFSSource(fsys))
	ctx := context.Background()

	_, err := s.Cities(ctx, "XX", "AA")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Cities(ctx, "XX", "BB")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.States(ctx, "YY")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Complete(t *testing.T) {
	ctx := context.Background()
	s := sampleStore()

	in, err := s.Complete(ctx, "IN")
	require.NoError(t, err)
	assert.Equal(t, "India", in.Country["name"])
	assert.Equal(t, "Indian Rupee", in.Currency["currency_name"])
	assert.Equal(t, "🇮🇳", in.Flag["emoji"])
	states, ok := in.Locations["states"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, states, 3)

	// France has a currency and flag but no locations file.
	fr, err := s.Complete(ctx, "FR")
	require.NoError(t, err)
	assert.NotNil(t, fr.Currency)
	assert.Nil(t, fr.Locations)

	_, err = s.Complete(ctx, "ZZ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_MemoizesFiles(t *testing.T) {
	ctx := context.Background()
	src := new(mocks.MockSource)
	src.On("Open", mock.Anything, CountriesKey).
		Return(func(context.Context, string) io.ReadCloser {
			return io.NopCloser(strings.NewReader(`[{"code":"US","name":"United States"}]`))
		}, nil).Once()

	s := New(src)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := s.CountryByCode(ctx, "US")
			assert.NoError(t, err)
			assert.Equal(t, "United States", c["name"])
		}()
	}
	wg.Wait()

	src.AssertExpectations(t)
	src.AssertNumberOfCalls(t, "Open", 1)
}

func TestStore_LoadErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("source failure is retried on next call", func(t *testing.T) {
		src := new(mocks.MockSource)
		src.On("Open", mock.Anything, CurrenciesKey).Return(nil, errors.New("bucket offline")).Once()
		src.On("Open", mock.Anything, CurrenciesKey).
			Return(func(context.Context, string) io.ReadCloser {
				return io.NopCloser(strings.NewReader(`[]`))
			}, nil).Once()

		s := New(src)

		_, err := s.Currencies(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load currencies: open currencies.json: bucket offline")
		assert.NotErrorIs(t, err, ErrNotFound)

		currencies, err := s.Currencies(ctx)
		require.NoError(t, err)
		assert.Empty(t, currencies)
		src.AssertExpectations(t)
	})

	t.Run("malformed file", func(t *testing.T) {
		s := New(NewFSSource(fstest.MapFS{FlagsKey: {Data: []byte(`{"US":`)}}))

		_, err := s.Flags(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode flags.json")
	})

	t.Run("missing file", func(t *testing.T) {
		s := New(NewFSSource(fstest.MapFS{}))

		err := s.Ping(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrObjectNotFound)
	})
}

func TestNewDirSource(t *testing.T) {
	dir := t.TempDir()

	src, err := NewDirSource(dir)
	require.NoError(t, err)

	_, err = src.Open(context.Background(), "countries.json")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	_, err = NewDirSource(dir + "/missing")
	assert.Error(t, err)
}

func TestFSSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFSSource(SampleFS()).Open(ctx, CountriesKey)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSource(t *testing.T) {
	src, err := NewSource(config.DatasetConfig{Source: "embedded"})
	require.NoError(t, err)
	rc, err := src.Open(context.Background(), FlagsKey)
	require.NoError(t, err)
	rc.Close()

	_, err = NewSource(config.DatasetConfig{Source: "dir", Dir: t.TempDir()})
	assert.NoError(t, err)

	_, err = NewSource(config.DatasetConfig{Source: "minio"})
	assert.ErrorContains(t, err, "minio endpoint is required")

	_, err = NewSource(config.DatasetConfig{Source: "ftp"})
	assert.ErrorContains(t, err, `unknown dataset source "ftp"`)
}

func TestStore_LocationsKeyOwnsItsBytes(t *testing.T) {
	s := sampleStore()

	// Mimics a path parameter that aliases a request buffer later reused for another request.
	buf := []byte("US")
	code := unsafe.String(&buf[0], len(buf))

	_, err := s.Locations(context.Background(), code)
	require.NoError(t, err)
	copy(buf, "IN")

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Contains(t, s.locations, "US")
	assert.NotContains(t, s.locations, "IN")
}
