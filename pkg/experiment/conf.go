package experiment

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/tajo2025/perfsweep/pkg/conf"
)

// ExUsage is exit code for command line usage errors (sysexits.h).
const ExUsage = 64

// DumpConfigFlag name includes dash to exclude it from dumping.
var dumpConfigFlag = conf.NewBoolFlag("config-dump", "Dump configuration as environment script.", false)

// Configure handles configuration parsing and dumping based on config-* flags.
// Note: exits if configuration dump was requested or flags cannot be parsed.
func Configure() {
	err := conf.ParseFlags()
	if err != nil {
		logrus.Errorf("Cannot parse flags: %q", err.Error())
		os.Exit(ExUsage)
	}
	logrus.SetLevel(conf.LogLevel())

	if dumpConfigFlag.Value() {
		fmt.Println(conf.DumpConfig())
		os.Exit(0)
	}
}
