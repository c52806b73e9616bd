// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/grid"
)

// DeviceHandle provides GPU device access from a host application.
//
// When the grid renderer runs inside a larger GPU application, the host
// implements DeviceHandle and passes it via WithDeviceProvider, so both
// share one device and queue instead of fighting over the adapter. The
// provider must additionally expose the HAL handles through HalDevice()
// any and HalQueue() any, returning hal.Device and hal.Queue.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, keeping the
// renderer compatible with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// halAPI is the slice of a HAL backend the renderer needs to open a
// device. Both registered backends (hal.GetBackend) and test backends
// such as hal/noop satisfy it.
type halAPI interface {
	CreateInstance(*hal.InstanceDescriptor) (hal.Instance, error)
}

// Device bundles the HAL objects a renderer draws with. When external is
// set the device belongs to a host application and Close leaves it alone.
type Device struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	external bool
	name     string
}

// openDevice opens a device on the given backend, preferring discrete
// over integrated adapters.
func openDevice(api halAPI) (*Device, error) {
	instance, err := api.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("render: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapters
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("render: open device: %w", err)
	}
	d := &Device{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		name:     selected.Info.Name,
	}
	grid.Logger().Debug("render: device opened", "adapter", d.name)
	return d, nil
}

// defaultDevice opens a device on the default backend (Vulkan).
func defaultDevice() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, ErrNoBackend
	}
	return openDevice(backend)
}

// deviceFromProvider adopts a shared device from a host application. The
// provider must expose the underlying HAL handles.
func deviceFromProvider(provider DeviceHandle) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoProvider)
	}
	grid.Logger().Debug("render: using shared device")
	return &Device{device: device, queue: queue, external: true}, nil
}

// Name returns the adapter name, or "" for shared devices.
func (d *Device) Name() string { return d.name }

// Close destroys the device and instance unless they are owned by a host
// application. Safe to call more than once.
func (d *Device) Close() {
	if d.external {
		return
	}
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
		d.queue = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}
