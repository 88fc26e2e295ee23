package licensestore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tusharj/bizbill-api/internal/license"
)

func TestGetReturnsRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/licenses/9876543210" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-API-Key"); got != "secret" {
			t.Errorf("expected api key header, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"license_key": "ABC-123",
			"device_id":   "dev_x_1",
			"expires_at":  "2030-01-01",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	rec, err := c.Get(context.Background(), "9876543210")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.LicenseKey != "ABC-123" || rec.DeviceID != "dev_x_1" || rec.ExpiresAt != "2030-01-01" || rec.Revoked {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestGetMapsStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", http.StatusNotFound, license.ErrNotFound},
		{"forbidden", http.StatusForbidden, license.ErrPermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "")
			_, err := c.Get(context.Background(), "555")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestBindDeviceSendsConditionalWrite(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		if r.URL.Path != "/licenses/555/device" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if err := c.BindDevice(context.Background(), "555", "dev_a_1"); err != nil {
		t.Fatalf("BindDevice failed: %v", err)
	}
	if gotBody["device_id"] != "dev_a_1" {
		t.Fatalf("expected device_id in payload, got %v", gotBody)
	}
}

func TestBindDeviceMapsStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"lost the race", http.StatusConflict, license.ErrAlreadyBound},
		{"write denied", http.StatusForbidden, license.ErrPermissionDenied},
		{"record gone", http.StatusNotFound, license.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "")
			err := c.BindDevice(context.Background(), "555", "dev_a_1")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
