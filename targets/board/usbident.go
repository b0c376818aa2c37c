//go:build rp2040 || rp2350

package board

import (
	"machine/usb/descriptor"

	"github.com/puckawayjeff/pi-key/core"
)

// applyUSBIdentity rewrites idVendor and idProduct in the CDC+HID
// device descriptor. Both are little-endian, at offsets 8 and 10. Must
// run before the host reads the descriptor, so Boot calls it ahead of
// the serial init.
func applyUSBIdentity(cfg *core.Config) {
	dev := descriptor.CDCHID.Device
	if len(dev) < 12 {
		return
	}
	dev[8] = byte(cfg.USBVendorID)
	dev[9] = byte(cfg.USBVendorID >> 8)
	dev[10] = byte(cfg.USBProductID)
	dev[11] = byte(cfg.USBProductID >> 8)
}
