//go:build !nogpu

package render

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// openNoopDevice opens a device on the noop backend for tests.
func openNoopDevice(t *testing.T) *Device {
	t.Helper()
	dev, err := openDevice(noop.API{})
	if err != nil {
		t.Fatalf("openDevice on noop failed: %v", err)
	}
	t.Cleanup(dev.Close)
	return dev
}

func TestOpenDeviceNoop(t *testing.T) {
	dev := openNoopDevice(t)
	if dev.device == nil {
		t.Error("expected non-nil device")
	}
	if dev.queue == nil {
		t.Error("expected non-nil queue")
	}
	if dev.external {
		t.Error("opened device must not be marked external")
	}
}

func TestDeviceCloseIdempotent(t *testing.T) {
	dev, err := openDevice(noop.API{})
	if err != nil {
		t.Fatalf("openDevice failed: %v", err)
	}
	dev.Close()
	dev.Close()
}

// plainProvider implements gpucontext.DeviceProvider without exposing HAL
// handles.
type plainProvider struct{}

func (plainProvider) Device() gpucontext.Device  { return nil }
func (plainProvider) Queue() gpucontext.Queue    { return nil }
func (plainProvider) Adapter() gpucontext.Adapter { return nil }
func (plainProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// halBackedProvider additionally exposes HAL handles, like a gogpu host
// window does.
type halBackedProvider struct {
	plainProvider
	device hal.Device
	queue  hal.Queue
}

func (p *halBackedProvider) HalDevice() any { return p.device }
func (p *halBackedProvider) HalQueue() any  { return p.queue }

func TestDeviceFromProviderRejectsPlain(t *testing.T) {
	_, err := deviceFromProvider(plainProvider{})
	if !errors.Is(err, ErrNoProvider) {
		t.Errorf("expected ErrNoProvider for a provider without HAL handles, got %v", err)
	}
}

func TestDeviceFromProviderNilHandles(t *testing.T) {
	_, err := deviceFromProvider(&halBackedProvider{})
	if !errors.Is(err, ErrNoProvider) {
		t.Errorf("expected ErrNoProvider for nil HAL handles, got %v", err)
	}
}

func TestDeviceFromProviderShared(t *testing.T) {
	dev := openNoopDevice(t)

	shared, err := deviceFromProvider(&halBackedProvider{device: dev.device, queue: dev.queue})
	if err != nil {
		t.Fatalf("deviceFromProvider failed: %v", err)
	}
	if !shared.external {
		t.Error("provider-backed device must be marked external")
	}
	if shared.Name() != "" {
		t.Errorf("shared device name = %q, want empty", shared.Name())
	}

	// Closing the shared wrapper must leave the host's device alive.
	shared.Close()
	fence, err := dev.device.CreateFence()
	if err != nil {
		t.Fatalf("host device unusable after shared Close: %v", err)
	}
	dev.device.DestroyFence(fence)
}
