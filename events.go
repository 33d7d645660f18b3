package irecovery

import (
	"github.com/libimobiledevice/libirecovery/internal/config"
	"github.com/libimobiledevice/libirecovery/internal/hotplug"
)

// globalMonitor is the library-global hot-plug state: first
// DeviceEventSubscribe starts its worker, last DeviceEventUnsubscribe
// stops it. The poll interval comes from internal/config.Conf, so
// LIBIRECOVERY_HOTPLUG_POLL_INTERVAL_MS tunes it without a rebuild.
var globalMonitor = hotplug.New(defaultDiscoverer(), config.Conf.HotplugPollInterval)

// DeviceEventContext is an opaque handle returned by
// DeviceEventSubscribe.
type DeviceEventContext struct {
	listener *hotplug.Listener
}

// DeviceEventCallback receives device-add and device-remove
// transitions observed by the hot-plug monitor.
type DeviceEventCallback func(hotplug.Event)

// DeviceEventSubscribe registers cb for hot-plug notifications.
func DeviceEventSubscribe(cb DeviceEventCallback) *DeviceEventContext {
	l := globalMonitor.Subscribe(func(ev hotplug.Event) { cb(ev) })
	return &DeviceEventContext{listener: l}
}

// DeviceEventUnsubscribe removes ctx's subscription.
func DeviceEventUnsubscribe(ctx *DeviceEventContext) {
	if ctx == nil {
		return
	}
	globalMonitor.Unsubscribe(ctx.listener)
}
