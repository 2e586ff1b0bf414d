package device

import (
	"fmt"
	"strconv"
	"strings"
)

// Model identifies a supported keyboard by its USB vendor and product ids,
// lower-case hex without padding beyond four digits.
type Model struct {
	Name    string
	Vendor  string
	Product string
}

// SupportedModels lists the keyboards the daemon knows how to drive.
func SupportedModels() []Model {
	return []Model{
		{Name: "Microsoft SideWinder X4", Vendor: "045e", Product: "0768"},
		{Name: "Microsoft SideWinder X6", Vendor: "045e", Product: "074b"},
	}
}

// modelForHID matches a kernel HID_ID string (bus:vendor:product, fields in
// zero-padded hex, e.g. "0003:0000045E:00000768") against the supported
// models.
func modelForHID(hid string) (Model, bool) {
	parts := strings.Split(strings.TrimSpace(hid), ":")
	if len(parts) != 3 {
		return Model{}, false
	}

	vendor, err := strconv.ParseUint(parts[1], 16, 32)
	if err != nil {
		return Model{}, false
	}
	product, err := strconv.ParseUint(parts[2], 16, 32)
	if err != nil {
		return Model{}, false
	}

	key := fmt.Sprintf("%04x:%04x", vendor, product)
	for _, m := range SupportedModels() {
		if key == m.Vendor+":"+m.Product {
			return m, true
		}
	}
	return Model{}, false
}
