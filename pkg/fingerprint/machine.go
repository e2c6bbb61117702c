package fingerprint

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/denisbrodbeck/machineid"
)

// MachineSource hashes the OS machine id with host characteristics. The machine id is
// app-scoped through machineid.ProtectedID so the raw value never leaves the host.
type MachineSource struct {
	AppID string

	machineID func(appID string) (string, error)
	hostname  func() (string, error)
}

func NewMachineSource(appID string) *MachineSource {
	return &MachineSource{AppID: appID, machineID: machineid.ProtectedID, hostname: os.Hostname}
}

func (m *MachineSource) Fingerprint(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id, err := m.machineID(m.AppID)
	if err != nil {
		return "", fmt.Errorf("read machine id: %w", err)
	}

	host, _ := m.hostname()

	signals := []string{
		id,
		runtime.GOOS,
		runtime.GOARCH,
		fmt.Sprintf("cpu=%d", runtime.NumCPU()),
		"locale=" + locale(),
		"tz=" + zoneName(),
		"host=" + host,
	}

	sum := sha256.Sum256([]byte(strings.Join(signals, "|")))
	return hex.EncodeToString(sum[:]), nil
}

// zoneName is the configured location name, not the current abbreviation or offset,
// which both change at daylight saving transitions.
func zoneName() string {
	if tz := os.Getenv("TZ"); tz != "" {
		return strings.TrimPrefix(tz, ":")
	}
	return time.Local.String()
}

func locale() string {
	for _, k := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return "C"
}
