package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const defaultRequestTimeout = 2 * time.Second

// HTTPClient talks to the travel provider's REST API.
// Every request carries a bounded timeout so a slow provider can never stall
// the write path indefinitely.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// HTTPClientOption configures an HTTPClient.
type HTTPClientOption func(*HTTPClient)

// WithRequestTimeout overrides the default per-request timeout.
func WithRequestTimeout(timeout time.Duration) HTTPClientOption {
	return func(c *HTTPClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) HTTPClientOption {
	return func(c *HTTPClient) {
		c.httpClient = httpClient
	}
}

// NewHTTPClient creates a provider client against the given base URL.
func NewHTTPClient(baseURL string, options ...HTTPClientOption) *HTTPClient {
	client := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// ValidateOffer asks the provider whether the offer is still bookable.
func (c *HTTPClient) ValidateOffer(ctx context.Context, offerID string) (OfferValidation, error) {
	endpoint := fmt.Sprintf("%s/offers/%s/validation", c.baseURL, url.PathEscape(offerID))

	var validation OfferValidation
	if err := c.getJSON(ctx, endpoint, &validation); err != nil {
		return OfferValidation{}, err
	}

	return validation, nil
}

// SearchOffers queries the provider's offer inventory.
func (c *HTTPClient) SearchOffers(ctx context.Context, criteria SearchCriteria) ([]Offer, error) {
	query := url.Values{}

	if criteria.Departure != "" {
		query.Set("departure", criteria.Departure)
	}

	if criteria.Destination != "" {
		query.Set("destination", criteria.Destination)
	}

	if criteria.DepartDate != "" {
		query.Set("depart_date", criteria.DepartDate)
	}

	if criteria.ReturnDate != "" {
		query.Set("return_date", criteria.ReturnDate)
	}

	if criteria.Adults > 0 {
		query.Set("adults", strconv.FormatUint(uint64(criteria.Adults), 10))
	}

	endpoint := c.baseURL + "/offers"
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var offers []Offer
	if err := c.getJSON(ctx, endpoint, &offers); err != nil {
		return nil, err
	}

	return offers, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, endpoint string, target any) error {
	request, buildErr := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if buildErr != nil {
		return errors.Join(ErrProviderRequestFailed, buildErr)
	}

	request.Header.Set("Accept", "application/json")

	response, doErr := c.httpClient.Do(request)
	if doErr != nil {
		return errors.Join(ErrProviderRequestFailed, doErr)
	}
	defer response.Body.Close() //nolint:errcheck

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrProviderRequestFailed, response.StatusCode)
	}

	if decodeErr := jsoniter.ConfigFastest.NewDecoder(response.Body).Decode(target); decodeErr != nil {
		return errors.Join(ErrProviderRequestFailed, decodeErr)
	}

	return nil
}
