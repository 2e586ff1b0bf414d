// Package device watches udev for supported SideWinder keyboards and serves
// as the daemon's capture collaborator.
//
// The lifecycle layer only sees a blocking per-iteration call; everything
// udev-specific (netlink subscription, hidraw matching, sysfs lookups) stays
// in here.
package device
