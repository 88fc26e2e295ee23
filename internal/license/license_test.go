package license

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type fakeKV struct {
	values map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: make(map[string]string)}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeKV) Set(ctx context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

type fakeStore struct {
	t       *testing.T
	records map[string]*Record
	getErr  error
	bindErr error
	// when set, any call fails the test
	mustNotBeQueried bool
}

func (f *fakeStore) Get(ctx context.Context, vendorPhone string) (*Record, error) {
	if f.mustNotBeQueried {
		f.t.Fatalf("store queried when no local license is saved")
	}
	if f.getErr != nil {
		return nil, f.getErr
	}
	rec, ok := f.records[vendorPhone]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeStore) BindDevice(ctx context.Context, vendorPhone, deviceID string) error {
	if f.mustNotBeQueried {
		f.t.Fatalf("store written when no local license is saved")
	}
	if f.bindErr != nil {
		return f.bindErr
	}
	rec, ok := f.records[vendorPhone]
	if !ok {
		return ErrNotFound
	}
	if rec.DeviceID != "" {
		return ErrAlreadyBound
	}
	rec.DeviceID = deviceID
	return nil
}

func newTestService(t *testing.T, store *fakeStore, kv *fakeKV) *Service {
	t.Helper()
	devices := NewDeviceIdentity(kv)
	// force the generated-token path so the identity is under test control
	devices.machineIDFiles = nil
	return NewService(store, kv, devices, nil)
}

func seedCache(t *testing.T, kv *fakeKV, vendorPhone, licenseKey string) {
	t.Helper()
	raw, err := json.Marshal(Credentials{VendorPhone: vendorPhone, LicenseKey: licenseKey})
	if err != nil {
		t.Fatalf("marshal credentials: %v", err)
	}
	kv.values[keyLocalLicense] = string(raw)
}

func TestCheckStatus_NoLocalCacheSkipsStore(t *testing.T) {
	kv := newFakeKV()
	store := &fakeStore{t: t, mustNotBeQueried: true}
	svc := newTestService(t, store, kv)

	got := svc.CheckStatus(context.Background())
	if got.OK || got.Reason != "No license saved" {
		t.Fatalf("expected {ok:false, reason:%q}, got %+v", "No license saved", got)
	}
}

func TestCheckStatus_Revoked(t *testing.T) {
	kv := newFakeKV()
	seedCache(t, kv, "9800000001", "KEY-1")
	store := &fakeStore{t: t, records: map[string]*Record{
		"9800000001": {LicenseKey: "KEY-1", Revoked: true},
	}}
	svc := newTestService(t, store, kv)

	got := svc.CheckStatus(context.Background())
	if got.OK || got.Reason != "License revoked" {
		t.Fatalf("expected revoked rejection, got %+v", got)
	}
}

func TestCheckStatus_Expired(t *testing.T) {
	kv := newFakeKV()
	seedCache(t, kv, "9800000001", "KEY-1")
	store := &fakeStore{t: t, records: map[string]*Record{
		"9800000001": {LicenseKey: "KEY-1", ExpiresAt: "2024-01-01"},
	}}
	svc := newTestService(t, store, kv)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	got := svc.CheckStatus(context.Background())
	if got.OK || got.Reason != "License expired" {
		t.Fatalf("expected expired rejection, got %+v", got)
	}

	// A future expiry passes.
	store.records["9800000001"].ExpiresAt = "2099-12-31"
	got = svc.CheckStatus(context.Background())
	if !got.OK {
		t.Fatalf("expected ok with future expiry, got %+v", got)
	}
}

func TestCheckStatus_BoundToThisDevice(t *testing.T) {
	kv := newFakeKV()
	seedCache(t, kv, "9800000001", "KEY-1")
	store := &fakeStore{t: t, records: map[string]*Record{
		"9800000001": {LicenseKey: "KEY-1"},
	}}
	svc := newTestService(t, store, kv)

	deviceID, err := svc.DeviceID(context.Background())
	if err != nil {
		t.Fatalf("device id: %v", err)
	}
	store.records["9800000001"].DeviceID = deviceID

	got := svc.CheckStatus(context.Background())
	if !got.OK {
		t.Fatalf("expected ok for matching device, got %+v", got)
	}
}

func TestCheckStatus_DeviceMismatch(t *testing.T) {
	kv := newFakeKV()
	seedCache(t, kv, "9800000001", "KEY-1")
	store := &fakeStore{t: t, records: map[string]*Record{
		"9800000001": {LicenseKey: "KEY-1", DeviceID: "someone-elses-device"},
	}}
	svc := newTestService(t, store, kv)

	got := svc.CheckStatus(context.Background())
	if got.OK || got.Reason != "Device mismatch" {
		t.Fatalf("expected device mismatch, got %+v", got)
	}
}

func TestCheckStatus_KeyMismatch(t *testing.T) {
	kv := newFakeKV()
	seedCache(t, kv, "9800000001", "OLD-KEY")
	store := &fakeStore{t: t, records: map[string]*Record{
		"9800000001": {LicenseKey: "ROTATED-KEY"},
	}}
	svc := newTestService(t, store, kv)

	got := svc.CheckStatus(context.Background())
	if got.OK || got.Reason != "License key mismatch" {
		t.Fatalf("expected key mismatch, got %+v", got)
	}
}

func TestCheckStatus_StoreErrorBecomesReason(t *testing.T) {
	kv := newFakeKV()
	seedCache(t, kv, "9800000001", "KEY-1")
	store := &fakeStore{t: t, getErr: errors.New("connection refused")}
	svc := newTestService(t, store, kv)

	got := svc.CheckStatus(context.Background())
	if got.OK || got.Reason != "connection refused" {
		t.Fatalf("expected infrastructure reason, got %+v", got)
	}
}

func TestValidateAndBind_BindsUnboundRecordAndCaches(t *testing.T) {
	kv := newFakeKV()
	store := &fakeStore{t: t, records: map[string]*Record{
		"9800000001": {LicenseKey: "KEY-1"},
	}}
	svc := newTestService(t, store, kv)

	got := svc.ValidateAndBind(context.Background(), "9800000001", "KEY-1")
	if !got.OK {
		t.Fatalf("expected ok, got %+v", got)
	}

	deviceID, err := svc.DeviceID(context.Background())
	if err != nil {
		t.Fatalf("device id: %v", err)
	}
	if store.records["9800000001"].DeviceID != deviceID {
		t.Fatalf("expected record bound to %q, got %q", deviceID, store.records["9800000001"].DeviceID)
	}

	creds, err := svc.Credentials(context.Background())
	if err != nil {
		t.Fatalf("credentials: %v", err)
	}
	if creds == nil || creds.VendorPhone != "9800000001" || creds.LicenseKey != "KEY-1" {
		t.Fatalf("expected cached credentials, got %+v", creds)
	}

	// Re-activation on the already-bound device succeeds without rebinding.
	got = svc.ValidateAndBind(context.Background(), "9800000001", "KEY-1")
	if !got.OK {
		t.Fatalf("expected ok on re-activation, got %+v", got)
	}
}

func TestValidateAndBind_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		record *Record
		key    string
		reason string
	}{
		{"missing record", nil, "KEY-1", "License not found"},
		{"revoked", &Record{LicenseKey: "KEY-1", Revoked: true}, "KEY-1", "License revoked"},
		{"wrong key", &Record{LicenseKey: "KEY-1"}, "key-1", "Invalid license key"},
		{"empty remote key", &Record{}, "KEY-1", "Invalid license key"},
		{"bound elsewhere", &Record{LicenseKey: "KEY-1", DeviceID: "other"}, "KEY-1", "License already used on another device"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kv := newFakeKV()
			store := &fakeStore{t: t, records: map[string]*Record{}}
			if tc.record != nil {
				store.records["9800000001"] = tc.record
			}
			svc := newTestService(t, store, kv)

			got := svc.ValidateAndBind(context.Background(), "9800000001", tc.key)
			if got.OK || got.Reason != tc.reason {
				t.Fatalf("expected reason %q, got %+v", tc.reason, got)
			}
			if _, ok := kv.values[keyLocalLicense]; ok {
				t.Fatalf("credentials must not be cached on rejection")
			}
		})
	}
}

func TestValidateAndBind_LosingTheBindRace(t *testing.T) {
	kv := newFakeKV()
	store := &fakeStore{t: t, records: map[string]*Record{
		"9800000001": {LicenseKey: "KEY-1"},
	}}
	// The record looks unbound, but the conditional write loses.
	store.bindErr = ErrAlreadyBound
	svc := newTestService(t, store, kv)

	got := svc.ValidateAndBind(context.Background(), "9800000001", "KEY-1")
	if got.OK || got.Reason != "License already used on another device" {
		t.Fatalf("expected race loser rejection, got %+v", got)
	}
}

func TestValidateAndBind_WriteFailures(t *testing.T) {
	cases := []struct {
		name    string
		bindErr error
		reason  string
	}{
		{"permission sentinel", ErrPermissionDenied, "Write denied while binding device. Update store rules or bind device_id manually."},
		{"permission in message", errors.New("PERMISSION_DENIED: missing rights"), "Write denied while binding device. Update store rules or bind device_id manually."},
		{"other write failure", errors.New("i/o timeout"), "Failed to bind device: i/o timeout"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kv := newFakeKV()
			store := &fakeStore{t: t, records: map[string]*Record{
				"9800000001": {LicenseKey: "KEY-1"},
			}}
			store.bindErr = tc.bindErr
			svc := newTestService(t, store, kv)

			got := svc.ValidateAndBind(context.Background(), "9800000001", "KEY-1")
			if got.OK || got.Reason != tc.reason {
				t.Fatalf("expected reason %q, got %+v", tc.reason, got)
			}
		})
	}
}

func TestEnsureDeviceID_StableAcrossCalls(t *testing.T) {
	kv := newFakeKV()
	devices := NewDeviceIdentity(kv)
	devices.machineIDFiles = nil

	first, err := devices.EnsureDeviceID(context.Background())
	if err != nil {
		t.Fatalf("first resolution: %v", err)
	}
	if first == "" {
		t.Fatalf("expected a generated device id")
	}

	// A fresh DeviceIdentity over the same persistence sees the same token.
	again := NewDeviceIdentity(kv)
	again.machineIDFiles = nil
	second, err := again.EnsureDeviceID(context.Background())
	if err != nil {
		t.Fatalf("second resolution: %v", err)
	}
	if first != second {
		t.Fatalf("device id not stable: %q vs %q", first, second)
	}
}

func TestClearCredentials(t *testing.T) {
	kv := newFakeKV()
	seedCache(t, kv, "9800000001", "KEY-1")
	store := &fakeStore{t: t, records: map[string]*Record{}}
	svc := newTestService(t, store, kv)

	if err := svc.ClearCredentials(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got := svc.CheckStatus(context.Background())
	if got.OK || got.Reason != "No license saved" {
		t.Fatalf("expected cleared cache, got %+v", got)
	}
}
