package conf

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

// EnvPrefix is prepended to upper-cased flag names to form environment variable names.
const EnvPrefix = "PERFSWEEP"

var (
	app = kingpin.New("perfsweep", "No help available")
	// Default flags and values.
	logLevelFlag = NewStringFlag(
		"log",
		"Log level: debug, info, warn, error, fatal, panic",
		"info",
	)
	envFileFlag = NewStringFlag(
		"env_file",
		"File with PERFSWEEP_* variables loaded before parsing; missing file is ignored",
		".env",
	)
	isEnvParsed = false
)

// SetHelp sets the help message for the CLI.
// We need to expose this function so other packages can set the app help.
func SetHelp(help string) {
	app.Help = help
}

// SetAppName sets application name for CLI output.
// We need to expose this function so other packages can set the app name.
func SetAppName(name string) {
	app.Name = name
}

// AppName returns specified app name.
func AppName() string {
	return app.Name
}

// LogLevel returns configured logLevel from input option or env variable.
// If it cannot parse the log level, it returns default value.
func LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(logLevelFlag.Value())
	if err == nil {
		return level
	}

	level, err = logrus.ParseLevel(logLevelFlag.defaultValue)
	if err == nil {
		return level
	}

	// Programmer error.
	panic(errors.Wrap(err, "parsing log level failed"))
}

// LoadEnvFile exports variables from env file which are not set yet. Missing file is not an error.
// Returns whether file was loaded.
func LoadEnvFile(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		return false, errors.Wrapf(err, "cannot load env file %q", path)
	}
	return true, nil
}

func parse(args []string) error {
	for _, flag := range definedFlags {
		flag.reset()
	}
	_, err := app.Parse(args)
	return err
}

// ParseFlags parse both the command line flags of the process and environment variables.
// Env file pointed by env_file is loaded in between, so values from it override neither
// command line nor already exported variables.
func ParseFlags() error {
	return ParseArgs(os.Args[1:])
}

// ParseArgs is like ParseFlags but takes arguments explicitly.
func ParseArgs(args []string) error {
	if err := parse(args); err != nil {
		return errors.Wrapf(err, "could not parse command line flags")
	}
	isEnvParsed = true

	loaded, err := LoadEnvFile(envFileFlag.Value())
	if err != nil {
		return err
	}
	if !loaded {
		return nil
	}
	if err := parse(args); err != nil {
		return errors.Wrapf(err, "could not parse flags with env file %q", envFileFlag.Value())
	}
	return nil
}

// flagDefinition describes current state of one flag.
type flagDefinition struct {
	Name, Value, Default, Help string
}

// getFlagsDefinition returns current, default, keys and description for every flag.
// Notes: order is important because it logically groups flags.
func getFlagsDefinition() (flags []flagDefinition) {
	for _, flag := range app.Model().Flags {
		// Skip kingpin builtin flags that aren't compatible with environment based configuration.
		if strings.Contains(flag.Name, "-") {
			continue
		}

		value := flag.Value.String()
		if defined, ok := definedFlags[flag.Name]; ok {
			value = defined.valueString()
		}

		flags = append(flags, flagDefinition{
			Name:    flag.Name,
			Help:    flag.Help,
			Default: strings.Join(flag.Default, ","),
			Value:   value,
		})
	}

	return flags
}

// DumpConfig dumps environment based configuration with current values of flags.
// Includes "allexport" directives for bash.
func DumpConfig() string {
	buffer := &bytes.Buffer{}

	buffer.WriteString("# Export are values.\n")
	buffer.WriteString("set -o allexport\n")

	for _, fd := range getFlagsDefinition() {
		fmt.Fprintf(buffer, "\n# %s\n", fd.Help)
		if fd.Default != "" {
			fmt.Fprintf(buffer, "# Default: %s\n", fd.Default)
		}
		fmt.Fprintf(buffer, "%s=%q\n", envName(fd.Name), fd.Value)
	}

	buffer.WriteString("set +o allexport")
	return buffer.String()
}
