// Package buildinfo carries version metadata injected at link time:
//
//	go build -ldflags "-X github.com/budget-cli/budget/internal/buildinfo.Version=v1.0.0"
package buildinfo

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
