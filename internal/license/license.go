package license

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Storage keys, shared with the original single-device installs.
const (
	keyLocalLicense = "license_info"
	keyDeviceID     = "device_id_cached"
)

// Sentinel errors a RecordStore implementation reports back to the protocol.
var (
	ErrNotFound         = errors.New("license record not found")
	ErrAlreadyBound     = errors.New("license already bound to a device")
	ErrPermissionDenied = errors.New("license store write denied")
)

// Record is the authoritative license document, keyed remotely by vendor
// phone number. DeviceID transitions from empty to set exactly once through
// this protocol; revocation and expiry are administered out of band.
type Record struct {
	LicenseKey string `json:"license_key"`
	DeviceID   string `json:"device_id,omitempty"`
	ExpiresAt  string `json:"expires_at,omitempty"` // ISO date
	Revoked    bool   `json:"revoked,omitempty"`
}

// Credentials is the locally cached activation, never trusted without a
// remote re-check.
type Credentials struct {
	VendorPhone string `json:"vendorPhone"`
	LicenseKey  string `json:"licenseKey"`
}

// Status is the single result shape for every validation outcome. The
// protocol never returns an error to its caller: policy rejections and
// infrastructure failures both land here as a reason string.
type Status struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// RecordStore is the remote, authoritative license record store.
type RecordStore interface {
	// Get returns the record for a vendor phone, or ErrNotFound.
	Get(ctx context.Context, vendorPhone string) (*Record, error)
	// BindDevice writes deviceID into the record only if no device is
	// currently bound. Returns ErrAlreadyBound when the conditional write
	// loses, ErrPermissionDenied when the store refuses the write.
	BindDevice(ctx context.Context, vendorPhone, deviceID string) error
}

// KeyValueStore is the durable local key-value persistence used for the
// credential cache and the generated device token.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Service runs the validation and device-binding protocol. Construct one at
// startup and inject the collaborators; it holds no global state.
type Service struct {
	store   RecordStore
	kv      KeyValueStore
	devices *DeviceIdentity
	log     *logrus.Logger
	now     func() time.Time
}

func NewService(store RecordStore, kv KeyValueStore, devices *DeviceIdentity, log *logrus.Logger) *Service {
	return &Service{
		store:   store,
		kv:      kv,
		devices: devices,
		log:     log,
		now:     time.Now,
	}
}

// ValidateAndBind is the activation path: checks the remote record against
// the supplied credentials, binds this device on first use, and caches the
// credentials locally on success.
func (s *Service) ValidateAndBind(ctx context.Context, vendorPhone, licenseKey string) Status {
	deviceID, err := s.devices.EnsureDeviceID(ctx)
	if err != nil {
		return s.failure("ValidateAndBind", err)
	}

	rec, err := s.store.Get(ctx, vendorPhone)
	if errors.Is(err, ErrNotFound) {
		return Status{OK: false, Reason: "License not found"}
	}
	if err != nil {
		return s.failure("ValidateAndBind", err)
	}

	if rec.Revoked {
		return Status{OK: false, Reason: "License revoked"}
	}
	if isExpired(rec.ExpiresAt, s.now()) {
		return Status{OK: false, Reason: "License expired"}
	}
	if rec.LicenseKey == "" || rec.LicenseKey != licenseKey {
		return Status{OK: false, Reason: "Invalid license key"}
	}

	if rec.DeviceID == "" {
		if err := s.store.BindDevice(ctx, vendorPhone, deviceID); err != nil {
			switch {
			case errors.Is(err, ErrAlreadyBound):
				// Another device won the first-bind race.
				return Status{OK: false, Reason: "License already used on another device"}
			case errors.Is(err, ErrPermissionDenied) || strings.Contains(strings.ToLower(err.Error()), "permission"):
				return Status{OK: false, Reason: "Write denied while binding device. Update store rules or bind device_id manually."}
			default:
				return Status{OK: false, Reason: "Failed to bind device: " + err.Error()}
			}
		}
	} else if rec.DeviceID != deviceID {
		return Status{OK: false, Reason: "License already used on another device"}
	}

	if err := s.saveCredentials(ctx, Credentials{VendorPhone: vendorPhone, LicenseKey: licenseKey}); err != nil {
		return s.failure("ValidateAndBind", err)
	}
	return Status{OK: true}
}

// CheckStatus is the cold-start re-validation path: it re-checks the cached
// credentials against the remote record without requiring re-entry. With no
// cache present it answers immediately, without touching the store.
func (s *Service) CheckStatus(ctx context.Context) Status {
	creds, ok, err := s.loadCredentials(ctx)
	if err != nil {
		return s.failure("CheckStatus", err)
	}
	if !ok {
		return Status{OK: false, Reason: "No license saved"}
	}

	deviceID, err := s.devices.EnsureDeviceID(ctx)
	if err != nil {
		return s.failure("CheckStatus", err)
	}

	rec, err := s.store.Get(ctx, creds.VendorPhone)
	if errors.Is(err, ErrNotFound) {
		return Status{OK: false, Reason: "License not found"}
	}
	if err != nil {
		return s.failure("CheckStatus", err)
	}

	if rec.Revoked {
		return Status{OK: false, Reason: "License revoked"}
	}
	if isExpired(rec.ExpiresAt, s.now()) {
		return Status{OK: false, Reason: "License expired"}
	}
	if rec.LicenseKey == "" || rec.LicenseKey != creds.LicenseKey {
		return Status{OK: false, Reason: "License key mismatch"}
	}
	if rec.DeviceID != "" && rec.DeviceID != deviceID {
		return Status{OK: false, Reason: "Device mismatch"}
	}
	return Status{OK: true}
}

// Credentials returns the locally cached activation, if any.
func (s *Service) Credentials(ctx context.Context) (*Credentials, error) {
	creds, ok, err := s.loadCredentials(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &creds, nil
}

// ClearCredentials drops the local cache, forcing re-activation.
func (s *Service) ClearCredentials(ctx context.Context) error {
	return s.kv.Set(ctx, keyLocalLicense, "")
}

// DeviceID exposes the resolved device identity for session claims.
func (s *Service) DeviceID(ctx context.Context) (string, error) {
	return s.devices.EnsureDeviceID(ctx)
}

func (s *Service) failure(op string, err error) Status {
	if s.log != nil {
		s.log.WithFields(logrus.Fields{
			"module":   "license",
			"funcName": op,
		}).Error(err.Error())
	}
	return Status{OK: false, Reason: err.Error()}
}

func (s *Service) loadCredentials(ctx context.Context) (Credentials, bool, error) {
	raw, ok, err := s.kv.Get(ctx, keyLocalLicense)
	if err != nil {
		return Credentials{}, false, err
	}
	if !ok || raw == "" {
		return Credentials{}, false, nil
	}
	var creds Credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return Credentials{}, false, err
	}
	return creds, true, nil
}

func (s *Service) saveCredentials(ctx context.Context, creds Credentials) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, keyLocalLicense, string(raw))
}

// isExpired treats an absent or unparseable expiry as not expired, matching
// the lenient date handling of existing license records.
func isExpired(expiresAt string, now time.Time) bool {
	if expiresAt == "" {
		return false
	}
	exp, err := parseISODate(expiresAt)
	if err != nil {
		return false
	}
	return now.After(exp)
}

func parseISODate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
