package license

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default locations of a stable machine identifier on Linux installs.
var defaultMachineIDFiles = []string{
	"/etc/machine-id",
	"/var/lib/dbus/machine-id",
}

// DeviceIdentity resolves a stable per-install device identifier: a
// platform-native machine id when available, otherwise a generated token
// persisted in the local key-value store for the life of the install.
type DeviceIdentity struct {
	kv             KeyValueStore
	machineIDFiles []string
}

func NewDeviceIdentity(kv KeyValueStore) *DeviceIdentity {
	return &DeviceIdentity{kv: kv, machineIDFiles: defaultMachineIDFiles}
}

// EnsureDeviceID returns the same identifier on every call across restarts.
// The generated fallback is collision-resistant, not cryptographic; that is
// enough for a single-device binding check.
func (d *DeviceIdentity) EnsureDeviceID(ctx context.Context) (string, error) {
	for _, path := range d.machineIDFiles {
		if data, err := os.ReadFile(path); err == nil {
			if id := strings.TrimSpace(string(data)); id != "" {
				return id, nil
			}
		}
	}

	cached, ok, err := d.kv.Get(ctx, keyDeviceID)
	if err != nil {
		return "", err
	}
	if ok && cached != "" {
		return cached, nil
	}

	generated := fmt.Sprintf("dev_%s_%d",
		strings.ReplaceAll(uuid.New().String(), "-", ""),
		time.Now().UnixMilli(),
	)
	if err := d.kv.Set(ctx, keyDeviceID, generated); err != nil {
		return "", err
	}
	return generated, nil
}
