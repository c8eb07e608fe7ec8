package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

const (
	headlinesURL = "https://newsapi.org/v2/top-headlines"
	headlineMax  = 3
	defaultTopic = "technology"
)

type INews interface {
	// TopHeadlines returns up to three headline titles for the topic,
	// defaulting the topic to technology when empty.
	TopHeadlines(ctx context.Context, topic string) ([]string, error)
}

type newsClient struct {
	apiKey     string
	httpClient *http.Client
}

func New() (INews, error) {
	apiKey := os.Getenv("NEWS_API_KEY")
	if apiKey == "" {
		return nil, errors.New("news API key is required")
	}

	return &newsClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 7 * time.Second},
	}, nil
}

type headlinesResponse struct {
	Articles []struct {
		Title string `json:"title"`
	} `json:"articles"`
}

func (c *newsClient) TopHeadlines(ctx context.Context, topic string) ([]string, error) {
	if topic == "" {
		topic = defaultTopic
	}

	params := url.Values{}
	params.Set("q", topic)
	params.Set("apiKey", c.apiKey)
	params.Set("language", "en")
	params.Set("pageSize", strconv.Itoa(headlineMax))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, headlinesURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news API error: %s", resp.Status)
	}

	var body headlinesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	headlines := make([]string, 0, len(body.Articles))
	for _, article := range body.Articles {
		headlines = append(headlines, article.Title)
	}

	return headlines, nil
}
