package images

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
	searchURL = "https://www.googleapis.com/customsearch/v1"
	// PageSize is the hard cap the Custom Search API puts on one page.
	PageSize = 10
)

type Image struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
}

type ISearch interface {
	// Search returns up to count images starting at the 1-based
	// startIndex, or an empty slice when the query has no results.
	Search(ctx context.Context, query string, startIndex, count int) ([]Image, error)
}

type searchClient struct {
	apiKey     string
	cx         string
	httpClient *http.Client
}

func New() (ISearch, error) {
	apiKey := os.Getenv("GOOGLE_SEARCH_API_KEY")
	cx := os.Getenv("GOOGLE_SEARCH_CX")
	if apiKey == "" || cx == "" {
		return nil, errors.New("google image search API key and CX are required")
	}

	return &searchClient{
		apiKey:     apiKey,
		cx:         cx,
		httpClient: &http.Client{Timeout: 7 * time.Second},
	}, nil
}

type searchResponse struct {
	Items []struct {
		Link  string `json:"link"`
		Title string `json:"title"`
		Image struct {
			ThumbnailLink string `json:"thumbnailLink"`
		} `json:"image"`
	} `json:"items"`
}

func (c *searchClient) Search(ctx context.Context, query string, startIndex, count int) ([]Image, error) {
	if count > PageSize {
		count = PageSize
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("cx", c.cx)
	params.Set("key", c.apiKey)
	params.Set("searchType", "image")
	params.Set("num", strconv.Itoa(count))
	params.Set("start", strconv.Itoa(startIndex))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image search API error: %s", resp.Status)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	images := make([]Image, 0, len(body.Items))
	for _, item := range body.Items {
		thumbnail := item.Image.ThumbnailLink
		if thumbnail == "" {
			thumbnail = item.Link
		}
		images = append(images, Image{
			URL:       item.Link,
			Title:     item.Title,
			Thumbnail: thumbnail,
		})
	}

	return images, nil
}
