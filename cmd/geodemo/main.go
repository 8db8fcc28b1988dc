package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strconv"

	_ "github.com/joho/godotenv/autoload"

	"geolocations/internal/config"
	"geolocations/internal/geolocations"
	"geolocations/internal/otel"
)

func main() {
	cfg := config.Load()
	logger := cfg.Log.NewLogger()

	ctx := context.Background()
	shutdownTracing, err := otel.Init(ctx, "geodemo", logger)
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	client := geolocations.New(cfg.Client.UseCDN,
		geolocations.WithAPIBaseURL(cfg.Client.APIBaseURL),
		geolocations.WithCDNBaseURL(cfg.Client.CDNBaseURL),
		geolocations.WithBaseURL(cfg.Client.BaseURLOverride),
		geolocations.WithTimeout(cfg.Client.RequestTimeout()),
		geolocations.WithLogger(logger),
	)

	os.Exit(finish(ctx, logger, client, run(ctx, client, os.Stdout), shutdownTracing))
}

// finish logs the demo outcome, flushes tracing exactly once and returns the process exit code.
func finish(ctx context.Context, logger *slog.Logger, client *geolocations.Client, runErr error, shutdownTracing func(context.Context) error) int {
	code := 0
	if runErr != nil {
		logger.Error("demo failed", "base_url", client.BaseURL(), "error", runErr)
		code = 1
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("tracer shutdown", "error", err)
	}
	return code
}

// run calls every client operation in turn and prints the results to w.
func run(ctx context.Context, client *geolocations.Client, w io.Writer) error {
	fmt.Fprintln(w, "*** Geo-Locations Go Client Demo ***")
	fmt.Fprintln(w)

	countries, err := client.ListCountries(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, ">>> Total countries in the database: %d\n", len(countries))

	us, err := client.CountryByCode(ctx, "US")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\n>>> Country information for US:")
	printJSON(w, us)

	uae, found, err := client.CountryByName(ctx, "United Arab Emirates")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\n>>> Country information for UAE:")
	if found {
		printJSON(w, uae)
	} else {
		fmt.Fprintln(w, "not found")
	}

	eur, err := client.CurrencyByCountryCode(ctx, "FR")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\n>>> Currency for France:")
	printJSON(w, eur)

	usd, err := client.CurrencyByCode(ctx, "USD")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\n>>> USD Currency information:")
	printJSON(w, usd)

	jp, err := client.FlagByCountryCode(ctx, "JP")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\n>>> Flag information for Japan:")
	fmt.Fprintf(w, "Name: %s\n", field(jp, "name"))
	fmt.Fprintf(w, "Code: %s\n", field(jp, "code"))
	fmt.Fprintf(w, "Emoji: %s\n", field(jp, "emoji"))
	fmt.Fprintf(w, "SVG URL: %s\n", field(jp, "svg_url"))

	states, err := client.StatesByCountryCode(ctx, "US")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n>>> Number of states in US: %d\n", len(states))
	fmt.Fprintln(w, "First few states:")
	for _, code := range firstKeys(states, 3) {
		name := "<unknown>"
		if entry, ok := states.Array(code); ok && len(entry) > 1 {
			if s, ok := entry[1].(string); ok {
				name = s
			}
		}
		fmt.Fprintf(w, "%s: %s\n", code, name)
	}

	cities, err := client.CitiesByState(ctx, "US", "CA")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\n>>> Cities in California:")
	for _, id := range firstKeys(cities, 5) {
		fmt.Fprintf(w, "%s: %s\n", id, field(cities, id))
	}

	india, err := client.CompleteByCountryCode(ctx, "IN")
	if err != nil {
		return err
	}
	country, _ := india.Object("country")
	currency, _ := india.Object("currency")
	flag, _ := india.Object("flag")
	locations, _ := india.Object("locations")
	indiaStates, _ := locations.Object("states")

	fmt.Fprintln(w, "\n>>> Complete information for India:")
	fmt.Fprintf(w, "Country: %s\n", field(country, "name"))
	fmt.Fprintf(w, "Currency: %s\n", field(currency, "currency_name"))
	fmt.Fprintf(w, "Flag: %s\n", field(flag, "emoji"))
	fmt.Fprintf(w, "Number of states: %d\n", len(indiaStates))

	fmt.Fprintln(w, "\n*** Demo Complete ***")
	return nil
}

func field(o geolocations.Object, key string) string {
	if s, ok := o.String(key); ok {
		return s
	}
	return "<missing>"
}

func printJSON(w io.Writer, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "%v\n", v)
		return
	}
	fmt.Fprintln(w, string(b))
}

// firstKeys returns up to n keys of o, numeric keys in numeric order and the rest lexically.
func firstKeys(o geolocations.Object, n int) []string {
	keys := slices.SortedFunc(maps.Keys(o), func(a, b string) int {
		ai, aErr := strconv.Atoi(a)
		bi, bErr := strconv.Atoi(b)
		switch {
		case aErr == nil && bErr == nil:
			return ai - bi
		case aErr == nil:
			return -1
		case bErr == nil:
			return 1
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
