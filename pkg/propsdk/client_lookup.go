package propsdk

import (
	"context"
	"net/url"
)

// Cities returns the city list for a state. The response is a bare JSON
// array; an unknown state yields an empty list, not an error.
func (c *Client) Cities(ctx context.Context, state string) ([]string, error) {
	var cities []string
	if err := c.getRaw(ctx, "/api/cities/"+url.PathEscape(state), &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// SearchSuggestions returns live-search completions for q. Queries under
// two characters come back empty from the backend.
func (c *Client) SearchSuggestions(ctx context.Context, q string) ([]string, error) {
	var suggestions []string
	path := "/api/search-suggestions?q=" + url.QueryEscape(q)
	if err := c.getRaw(ctx, path, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// postalResult mirrors the postal proxy's response shape.
type postalResult struct {
	Status      string       `json:"Status"`
	PostOffices []PostOffice `json:"PostOffice"`
}

// PincodeLookup resolves a 6-digit pincode to its post offices via the
// backend's postal proxy.
func (c *Client) PincodeLookup(ctx context.Context, pincode string) ([]PostOffice, error) {
	return c.postal(ctx, "/postal/pincode/"+url.PathEscape(pincode))
}

// PostOfficeLookup searches post offices by name via the backend's postal
// proxy.
func (c *Client) PostOfficeLookup(ctx context.Context, term string) ([]PostOffice, error) {
	return c.postal(ctx, "/postal/postoffice/"+url.PathEscape(term))
}

func (c *Client) postal(ctx context.Context, path string) ([]PostOffice, error) {
	var results []postalResult
	if err := c.getRaw(ctx, path, &results); err != nil {
		return nil, err
	}
	var offices []PostOffice
	for _, r := range results {
		offices = append(offices, r.PostOffices...)
	}
	return offices, nil
}
