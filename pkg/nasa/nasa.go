package nasa

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

const apodURL = "https://api.nasa.gov/planetary/apod"

type Picture struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	URL         string `json:"url"`
}

type IApod interface {
	PictureOfTheDay(ctx context.Context) (*Picture, error)
}

type apodClient struct {
	apiKey     string
	httpClient *http.Client
}

func New() (IApod, error) {
	apiKey := os.Getenv("NASA_API_KEY")
	if apiKey == "" {
		return nil, errors.New("NASA API key is required")
	}

	return &apodClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 7 * time.Second},
	}, nil
}

func (c *apodClient) PictureOfTheDay(ctx context.Context) (*Picture, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apodURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NASA APOD API error: %s", resp.Status)
	}

	var picture Picture
	if err := json.NewDecoder(resp.Body).Decode(&picture); err != nil {
		return nil, err
	}

	return &picture, nil
}
