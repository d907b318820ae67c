// conf is a helper for membench configuration for both command line interface
// and environment variables.
// It gives ability to register arguments which will be fetched from
// CLI input OR environment variable.
// By default it registers following options:
// <MEMBENCH_LOG> --log <Log level for membench: debug, info, warn, error, fatal, panic> Default: error
//
// When `ParseArgs` is executed, the arguments from both CLI and Env are parsed.
// In case of --help option - it prints help.
// It's recommended to run it only once, so that `conf` has all the needed
// options from the system registered. The help option will then show the whole
// overview of the membench configuration.
package conf
