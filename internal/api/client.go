// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"syscall"

	"resty.dev/v3"

	apimodel "github.com/eric-lim-idexx/sorted-json-diff/internal/api/model"
	pkgmodel "github.com/eric-lim-idexx/sorted-json-diff/pkg/model"
)

// Client talks to a running sjd API server; the CLI uses it when a compare is
// delegated with --server.
type Client struct {
	endpoint string
	resty    *resty.Client
}

func NewClient(endpoint string, clientID string) *Client {
	client := resty.New()

	if clientID != "" {
		client.SetHeader("Client-ID", clientID)
	}

	return &Client{
		endpoint: endpoint,
		resty:    client,
	}
}

func (c *Client) Compare(req apimodel.CompareRequest) (*apimodel.CompareResponse, error) {
	var result apimodel.CompareResponse

	resp, err := c.resty.R().
		SetContentType("application/json").
		SetBody(&req).
		SetResult(&result).
		Post(c.endpoint + CompareRoute)
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			return nil, fmt.Errorf("no sjd server reachable at %s", c.endpoint)
		}
		return nil, err
	}

	//nolint:errcheck
	defer resp.Body.Close()

	switch resp.StatusCode() {
	case http.StatusOK:
		return &result, nil
	case http.StatusBadRequest:
		var apiErr apimodel.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			return nil, fmt.Errorf("comparison rejected: %s", resp.String())
		}
		return nil, apiErr
	default:
		return nil, fmt.Errorf("unexpected status code from the sjd server: %d - %s", resp.StatusCode(), resp.String())
	}
}

func (c *Client) Rules() ([]pkgmodel.SortRule, error) {
	var rules []pkgmodel.SortRule

	resp, err := c.resty.R().
		SetResult(&rules).
		Get(c.endpoint + RulesRoute)
	if err != nil {
		return nil, err
	}

	//nolint:errcheck
	defer resp.Body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from the sjd server: %d", resp.StatusCode())
	}
	return rules, nil
}

func (c *Client) Healthy() bool {
	resp, err := c.resty.R().Get(c.endpoint + HealthRoute)
	if err != nil {
		return false
	}

	//nolint:errcheck
	defer resp.Body.Close()

	return resp.StatusCode() == http.StatusOK
}
