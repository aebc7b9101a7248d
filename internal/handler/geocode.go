package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/izzy358/wrap-careers/internal/geocode"
	"github.com/izzy358/wrap-careers/internal/server"

	"github.com/pkg/errors"
)

type forwardGeocoder interface {
	Forward(location string) (geocode.Coordinates, error)
}

// GeocodeHandler resolves a free-text location to coordinates, caching
// results so repeat lookups skip the provider.
func GeocodeHandler(svr server.Server, geocoder forwardGeocoder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var geocodeRq struct {
			Location string `json:"location"`
		}
		if err := json.NewDecoder(r.Body).Decode(&geocodeRq); err != nil || geocodeRq.Location == "" {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "Location is required"})
			return
		}
		if svr.GetConfig().OpenCageAPIKey == "" {
			svr.Log(errors.New("geocode requested with no provider key configured"), "OPENCAGE_API_KEY is not set")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Server configuration error"})
			return
		}

		cacheKey := "geocode:" + strings.ToLower(strings.TrimSpace(geocodeRq.Location))
		if cached, ok := svr.CacheGet(cacheKey); ok {
			var coordinates geocode.Coordinates
			if err := json.Unmarshal(cached, &coordinates); err == nil {
				svr.JSON(w, http.StatusOK, coordinates)
				return
			}
		}

		coordinates, err := geocoder.Forward(geocodeRq.Location)
		if err == geocode.ErrNotFound {
			svr.JSON(w, http.StatusNotFound, map[string]string{"error": "Location not found"})
			return
		}
		if err != nil {
			svr.Log(err, "unable to geocode location "+geocodeRq.Location)
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to geocode location"})
			return
		}

		if out, err := json.Marshal(coordinates); err == nil {
			svr.CacheSet(cacheKey, out)
		}
		svr.JSON(w, http.StatusOK, coordinates)
	}
}
