package core

import (
	"fmt"

	"go.uber.org/zap"
)

// Version identifies the running engine build. It is resolved once at
// startup and read by the periodic version log task.
var Version string

const NoVersion = "no_version_info"

// SetVersion resolves the engine version, preferring the value injected by
// the build flag over the one from the config file.
func SetVersion(c *Conf, versionByBuildFlag string) {
	switch {
	case versionByBuildFlag != "":
		Version = versionByBuildFlag
	case c.Version != "":
		Version = c.Version
	default:
		Version = NoVersion
	}
	zap.L().Info(fmt.Sprintf("engine version is %s", Version))
}
