package config

import "embed"

// ConfigCMD carries assets embedded at the repository root down into
// the commands.
type ConfigCMD struct {
	Views embed.FS
}
