// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("debug", false)

	v.SetDefault("main.name", "schoolcheck")
	v.SetDefault("main.log.enabled", true)
	v.SetDefault("main.log.path", "schoolcheck.log")
	v.SetDefault("main.log.maxsize", 100)
	v.SetDefault("main.log.maxbackups", 3)
	v.SetDefault("main.log.maxage", 28)

	v.SetDefault("check.schooltype", "ebtedaei dore 1")
	v.SetDefault("check.occupants", 0)
	v.SetDefault("check.ztolerance", 1.0)
	v.SetDefault("check.workers", 0)
	v.SetDefault("check.rulesfile", "")
}
