package licensestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tusharj/bizbill-api/internal/license"
)

// Client talks to the hosted license record store over HTTP. Records are
// documents keyed by vendor phone number; the store enforces the
// first-bind-wins rule on its side and answers 409 when a conditional
// device write loses.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a license store client for the given base URL. The API
// key is optional for stores that allow anonymous reads.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type recordDocument struct {
	LicenseKey string `json:"license_key"`
	DeviceID   string `json:"device_id,omitempty"`
	ExpiresAt  string `json:"expires_at,omitempty"`
	Revoked    bool   `json:"revoked,omitempty"`
}

// Get fetches the license record for a vendor phone number.
func (c *Client) Get(ctx context.Context, vendorPhone string) (*license.Record, error) {
	endpoint := c.baseURL + "/licenses/" + url.PathEscape(vendorPhone)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, license.ErrNotFound
	case resp.StatusCode == http.StatusForbidden:
		return nil, license.ErrPermissionDenied
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("license store error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var doc recordDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return &license.Record{
		LicenseKey: doc.LicenseKey,
		DeviceID:   doc.DeviceID,
		ExpiresAt:  doc.ExpiresAt,
		Revoked:    doc.Revoked,
	}, nil
}

// BindDevice asks the store to set device_id on the record, conditional on
// no device being bound yet.
func (c *Client) BindDevice(ctx context.Context, vendorPhone, deviceID string) error {
	endpoint := c.baseURL + "/licenses/" + url.PathEscape(vendorPhone) + "/device"

	payload, err := json.Marshal(map[string]string{"device_id": deviceID})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return license.ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return license.ErrAlreadyBound
	case resp.StatusCode == http.StatusForbidden:
		return license.ErrPermissionDenied
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("license store error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
}
