package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"geolocations/internal/service"
)

// RegisterRoutes attaches the geo-locations routes under prefix ("" or e.g. "/api")
// and the health probes at the root of app.
func RegisterRoutes(app *fiber.App, prefix string, svc service.GeoService) {
	app.Get("/health", HealthCheck(svc))
	app.Get("/healthz", LivenessProbe())

	api := app.Group(prefix)

	api.Get("/countries", ListCountries(svc))
	api.Get("/countries/:code", GetCountry(svc))

	// Registered before /currencies/:code.
	api.Get("/currencies/country/:code", GetCurrencyByCountry(svc))
	api.Get("/currencies", ListCurrencies(svc))
	api.Get("/currencies/:code", GetCurrency(svc))

	api.Get("/flags", ListFlags(svc))
	api.Get("/flags/:code", GetFlag(svc))

	api.Get("/locations/:code/states", ListStates(svc))
	api.Get("/locations/:code/states/:state/cities", ListCities(svc))

	api.Get("/complete/:code", GetComplete(svc))
}

// HealthCheck reports whether the dataset can be read.
//
//	@Summary	Readiness probe
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Failure	503	{object}	errorPayload
//	@Router		/health [get]
func HealthCheck(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := svc.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dataset unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListCountries godoc
//
//	@Summary	List all countries
//	@Tags		countries
//	@Produce	json
//	@Success	200	{array}		object
//	@Failure	500	{object}	errorPayload
//	@Router		/countries [get]
func ListCountries(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.Countries(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// GetCountry godoc
//
//	@Summary	Country by ISO 3166-1 alpha-2 code
//	@Tags		countries
//	@Produce	json
//	@Param		code	path		string	true	"country code"
//	@Success	200		{object}	object
//	@Failure	400		{object}	errorPayload
//	@Failure	404		{object}	errorPayload
//	@Router		/countries/{code} [get]
func GetCountry(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.Country(c.UserContext(), c.Params("code"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// ListCurrencies godoc
//
//	@Summary	List all currencies
//	@Tags		currencies
//	@Produce	json
//	@Success	200	{array}		object
//	@Failure	500	{object}	errorPayload
//	@Router		/currencies [get]
func ListCurrencies(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.Currencies(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// GetCurrencyByCountry godoc
//
//	@Summary	Currency used by a country
//	@Tags		currencies
//	@Produce	json
//	@Param		code	path		string	true	"country code"
//	@Success	200		{object}	object
//	@Failure	400		{object}	errorPayload
//	@Failure	404		{object}	errorPayload
//	@Router		/currencies/country/{code} [get]
func GetCurrencyByCountry(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.CurrencyByCountry(c.UserContext(), c.Params("code"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// GetCurrency godoc
//
//	@Summary	Currency by ISO 4217 code
//	@Tags		currencies
//	@Produce	json
//	@Param		code	path		string	true	"currency code"
//	@Success	200		{object}	object
//	@Failure	400		{object}	errorPayload
//	@Failure	404		{object}	errorPayload
//	@Router		/currencies/{code} [get]
func GetCurrency(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.Currency(c.UserContext(), c.Params("code"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// ListFlags godoc
//
//	@Summary	All flags keyed by country code
//	@Tags		flags
//	@Produce	json
//	@Success	200	{object}	object
//	@Failure	500	{object}	errorPayload
//	@Router		/flags [get]
func ListFlags(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.Flags(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// GetFlag godoc
//
//	@Summary	Flag of a country
//	@Tags		flags
//	@Produce	json
//	@Param		code	path		string	true	"country code"
//	@Success	200		{object}	object
//	@Failure	400		{object}	errorPayload
//	@Failure	404		{object}	errorPayload
//	@Router		/flags/{code} [get]
func GetFlag(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.Flag(c.UserContext(), c.Params("code"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// ListStates godoc
//
//	@Summary	States of a country keyed by state code
//	@Tags		locations
//	@Produce	json
//	@Param		code	path		string	true	"country code"
//	@Success	200		{object}	object
//	@Failure	400		{object}	errorPayload
//	@Failure	404		{object}	errorPayload
//	@Router		/locations/{code}/states [get]
func ListStates(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.States(c.UserContext(), c.Params("code"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// ListCities godoc
//
//	@Summary	Cities of a state keyed by city id
//	@Tags		locations
//	@Produce	json
//	@Param		code	path		string	true	"country code"
//	@Param		state	path		string	true	"state code"
//	@Success	200		{object}	object
//	@Failure	400		{object}	errorPayload
//	@Failure	404		{object}	errorPayload
//	@Router		/locations/{code}/states/{state}/cities [get]
func ListCities(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.Cities(c.UserContext(), c.Params("code"), c.Params("state"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// GetComplete godoc
//
//	@Summary	Country with currency, flag and locations
//	@Tags		complete
//	@Produce	json
//	@Param		code	path		string	true	"country code"
//	@Success	200		{object}	dataset.Complete
//	@Failure	400		{object}	errorPayload
//	@Failure	404		{object}	errorPayload
//	@Router		/complete/{code} [get]
func GetComplete(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.Complete(c.UserContext(), c.Params("code"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}
