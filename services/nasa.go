package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"

	"github.com/rs/zerolog/log"

	"github.com/satelitear/backend/config"
	"github.com/satelitear/backend/errs"
)

const apodProviderName = "NASA APOD"

// maximum redirects followed on the provider call
const apodMaxRedirects = 3

var apodDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// apodRaw mirrors the provider's payload field names.
type apodRaw struct {
	Title        string  `json:"title"`
	Explanation  string  `json:"explanation"`
	Date         string  `json:"date"`
	MediaType    string  `json:"media_type"`
	URL          string  `json:"url"`
	HDURL        *string `json:"hdurl"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Copyright    *string `json:"copyright"`
}

// APOD is the stable internal contract returned to callers. Optional fields
// are pointers without omitempty so absent values serialize as explicit
// nulls rather than disappearing.
type APOD struct {
	Title        string  `json:"title"`
	Explanation  string  `json:"explanation"`
	Date         string  `json:"date"`
	MediaType    string  `json:"mediaType"`
	URL          string  `json:"url"`
	HDURL        *string `json:"hdUrl"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	Copyright    *string `json:"copyright"`
}

// APODClient proxies the Astronomy Picture of the Day provider. The API key
// stays inside the client; it is never part of a response or log line.
type APODClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewAPODClient(cfg *config.Config) *APODClient {
	return &APODClient{
		apiKey:  cfg.NasaAPIKey,
		baseURL: cfg.NasaAPODURL,
		httpClient: &http.Client{
			Timeout: cfg.NasaTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= apodMaxRedirects {
					return fmt.Errorf("stopped after %d redirects", apodMaxRedirects)
				}
				return nil
			},
		},
	}
}

// Fetch retrieves the picture of the day, optionally for a past date given as
// YYYY-MM-DD. Single round trip, no retry: any upstream failure is surfaced
// immediately with the provider's status code.
func (c *APODClient) Fetch(ctx context.Context, date string) (*APOD, error) {
	if c.apiKey == "" {
		return nil, errs.NewProviderNotConfiguredError(apodProviderName)
	}

	if date != "" && !apodDatePattern.MatchString(date) {
		return nil, errs.NewInvalidFieldError("date", "must be in YYYY-MM-DD format")
	}

	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errs.NewProviderUnavailableError(apodProviderName, err)
	}

	query := endpoint.Query()
	query.Set("api_key", c.apiKey)
	if date != "" {
		query.Set("date", date)
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errs.NewProviderUnavailableError(apodProviderName, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewProviderUnavailableError(apodProviderName, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewProviderUnavailableError(apodProviderName, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Warn().
			Int("status", resp.StatusCode).
			Str("date", date).
			Msg("APOD provider returned non-success status")
		return nil, errs.NewProviderStatusError(apodProviderName, resp.StatusCode)
	}

	var raw apodRaw
	if err := json.Unmarshal(bodyBytes, &raw); err != nil {
		return nil, errs.NewProviderUnavailableError(apodProviderName, fmt.Errorf("failed to parse provider response: %w", err))
	}

	return &APOD{
		Title:        raw.Title,
		Explanation:  raw.Explanation,
		Date:         raw.Date,
		MediaType:    raw.MediaType,
		URL:          raw.URL,
		HDURL:        raw.HDURL,
		ThumbnailURL: raw.ThumbnailURL,
		Copyright:    raw.Copyright,
	}, nil
}
