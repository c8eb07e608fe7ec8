package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"time"
)

const triviaURL = "https://opentdb.com/api.php?amount=1"

type ITrivia interface {
	Question(ctx context.Context) (string, error)
}

type triviaClient struct {
	httpClient *http.Client
}

func New() ITrivia {
	return &triviaClient{
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

type triviaResponse struct {
	Results []struct {
		Question string `json:"question"`
	} `json:"results"`
}

func (c *triviaClient) Question(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, triviaURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("trivia API error: %s", resp.Status)
	}

	var body triviaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}

	if len(body.Results) == 0 {
		return "", errors.New("trivia service returned no questions")
	}

	// Questions arrive HTML-escaped.
	return html.UnescapeString(body.Results[0].Question), nil
}
