package conf

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("membench", "No help available")

	// Default flags and values.
	logLevelFlag = NewStringFlag(
		"log",
		"Log level for membench: debug, info, warn, error, fatal, panic",
		"error", // Default Error log level.
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

// Command registers a kingpin command on the application. Commands are how the
// CLI declares its re-exec entry points next to the plain flag surface.
func Command(name string, help string) *kingpin.CmdClause {
	return app.Command(name, help)
}

// ParseArgs parses command line flags and environment variables and returns
// the name of the selected command (empty when no commands are registered).
func ParseArgs() (string, error) {
	command, err := app.Parse(os.Args[1:])
	if err != nil {
		return "", errors.Wrapf(err, "could not parse command line flags")
	}

	isEnvParsed = true
	return command, nil
}

// ParseEnv parse the environment for arguments.
func ParseEnv() error {
	_, err := app.Parse([]string{})
	if err == nil {
		isEnvParsed = true
		return nil
	}

	return errors.Wrapf(err, "could not parse environment flags")
}

// getFlagsDefinition returns name, current value, default and description for
// every registered flag.
// Note: flags are returned in registration order because it logically groups them.
func getFlagsDefinition() (flags []struct{ Name, Value, Default, Help string }) {
	for _, name := range flagNames {
		// Flags with a dash in the name (like config-dump) are not compatible
		// with environment based configuration and are skipped.
		if strings.Contains(name, "-") {
			continue
		}

		flag := definedFlags[name]
		flags = append(flags, struct{ Name, Value, Default, Help string }{
			Name:    name,
			Value:   flag.stringValue(),
			Default: flag.stringDefault(),
			Help:    flag.help(),
		})
	}

	return flags
}

// DumpConfig dumps environment based configuration with current values of flags.
func DumpConfig() string {
	return DumpConfigMap(nil)
}

// DumpConfigMap dumps environment based configuration with current values
// overwritten by given flagMap. Includes "allexport" directives for bash.
func DumpConfigMap(flagMap map[string]string) string {
	buffer := &bytes.Buffer{}

	buffer.WriteString("# Export are values.\n")
	buffer.WriteString("set -o allexport\n")

	for _, fd := range getFlagsDefinition() {
		fmt.Fprintf(buffer, "\n# %s\n", fd.Help)
		if fd.Default != "" {
			fmt.Fprintf(buffer, "# Default: %s\n", fd.Default)
		}

		// Override current values with provided from flagMap.
		value := fd.Value
		if mapValue, ok := flagMap[fd.Name]; ok {
			value = mapValue
		}

		fmt.Fprintf(buffer, "%s=%v\n", envName(fd.Name), value)
	}

	buffer.WriteString("set +o allexport")
	return buffer.String()
}

// GetFlags returns flags as map with current values.
func GetFlags() map[string]string {
	flagsMap := map[string]string{}
	for _, flag := range getFlagsDefinition() {
		flagsMap[flag.Name] = flag.Value
	}
	return flagsMap
}

// EnvAssignments renders every registered flag as a NAME=value shell
// assignment. Child processes of the application are spawned with these
// prefixed to their command line, so a flag given to the parent reaches
// every descendant through the environment.
func EnvAssignments() []string {
	var assignments []string
	for _, fd := range getFlagsDefinition() {
		assignments = append(assignments, fmt.Sprintf("%s=%q", envName(fd.Name), fd.Value))
	}
	return assignments
}
