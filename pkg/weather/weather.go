package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

const weatherURL = "http://api.openweathermap.org/data/2.5/weather"

type Report struct {
	City        string
	Description string
	TempC       int
}

type IWeather interface {
	Current(ctx context.Context, city string) (*Report, error)
}

type weatherClient struct {
	apiKey     string
	httpClient *http.Client
}

func New() (IWeather, error) {
	apiKey := os.Getenv("OPENWEATHER_API_KEY")
	if apiKey == "" {
		return nil, errors.New("openweathermap API key is required")
	}

	return &weatherClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}, nil
}

type weatherResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Message string `json:"message"`
}

func (c *weatherClient) Current(ctx context.Context, city string) (*Report, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, weatherURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body weatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		if body.Message != "" {
			return nil, fmt.Errorf("weather service: %s", body.Message)
		}
		return nil, fmt.Errorf("weather API error: %s", resp.Status)
	}

	if len(body.Weather) == 0 {
		return nil, errors.New("weather service returned no conditions")
	}

	return &Report{
		City:        city,
		Description: body.Weather[0].Description,
		TempC:       int(body.Main.Temp),
	}, nil
}
