package config

const (
	defaultUser          = "root"
	defaultProfile       = 1
	defaultCaptureDelays = true
	defaultPIDFile       = "/var/run/sidewinderd.pid"
)
