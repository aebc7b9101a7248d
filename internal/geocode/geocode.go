package geocode

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when the provider has no match for the query.
var ErrNotFound = errors.New("location not found")

type Client struct {
	apiKey string
	uri    string
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func NewClient(apiKey, uri string) Client {
	return Client{apiKey: apiKey, uri: uri}
}

// Forward resolves a free-text location to coordinates via the OpenCage API.
func (c Client) Forward(location string) (Coordinates, error) {
	res, err := http.Get(fmt.Sprintf("%s?q=%s&key=%s&limit=1", c.uri, url.QueryEscape(location), c.apiKey))
	if err != nil {
		return Coordinates{}, errors.Wrapf(err, "unable to call opencage for location %#v", location)
	}
	defer res.Body.Close()
	var meta struct {
		Results []struct {
			Geometry Coordinates `json:"geometry"`
		} `json:"results"`
	}
	if err := json.NewDecoder(res.Body).Decode(&meta); err != nil {
		return Coordinates{}, errors.Wrapf(err, "unable to parse opencage response for location %#v", location)
	}
	if len(meta.Results) == 0 {
		return Coordinates{}, ErrNotFound
	}
	return meta.Results[0].Geometry, nil
}
