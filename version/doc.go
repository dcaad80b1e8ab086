// Package version reports the build of a flinker service. The values feed
// the service version of the telemetry resource when the configuration
// leaves it unset.
//
// Set them at link time:
//
//	go build -ldflags "-X github.com/kbukum/flinker/version.Version=1.4.0"
package version
