package config

import (
	"io"

	"github.com/spf13/pflag"
)

type fileFlags struct {
	config string
	env    string
}

// scanFileFlags picks -c/--config and --env-file out of args. Those files
// are read before the remaining flags apply, so args are parsed once onto a
// scratch Config just to find them.
func scanFileFlags(args []string) (fileFlags, error) {
	var files fileFlags
	scratch := &Config{}
	fs := newFlagSet(scratch, &files)
	fs.SetOutput(io.Discard)
	err := fs.Parse(args)
	return files, err
}

// parseFlags populates Config fields from command-line flags. Defaults are
// the values already in config, so flags win over every other layer.
func parseFlags(args []string, config *Config) error {
	var files fileFlags
	return newFlagSet(config, &files).Parse(args)
}

// newFlagSet binds the supported flags:
//
//	-c, --config           JSON config file
//	    --env-file         dotenv file (default .env)
//	-a, --http-address     REST bind address
//	-g, --grpc-address     gRPC health bind address
//	    --storage          storage backend (postgres|memory)
//	-d, --database-dsn     PostgreSQL DSN
//	-s, --secret-key       JWT HMAC secret key
//	-t, --token-validity   token lifetime (e.g. 1h)
//	    --bcrypt-cost      bcrypt work factor
//	    --debug            expose internal error causes
//	    --log-level        debug|info|warn|error
//	    --s3-user, --s3-password, --s3-bucket, --s3-region, --s3-endpoint
func newFlagSet(config *Config, files *fileFlags) *pflag.FlagSet {
	fs := pflag.NewFlagSet("gophblog", pflag.ContinueOnError)

	fs.StringVarP(&files.config, "config", "c", "", "path to JSON config file")
	fs.StringVar(&files.env, "env-file", ".env", "path to dotenv file")

	fs.StringVarP(&config.HTTPAddress, "http-address", "a", config.HTTPAddress, "address and port to run the REST API")
	fs.StringVarP(&config.GRPCAddress, "grpc-address", "g", config.GRPCAddress, "address and port of the gRPC health service")
	fs.StringVar(&config.StorageBackend, "storage", config.StorageBackend, "storage backend (postgres|memory)")
	fs.StringVarP(&config.DatabaseDSN, "database-dsn", "d", config.DatabaseDSN, "database DSN")
	fs.StringVarP(&config.SecretKey, "secret-key", "s", config.SecretKey, "secret key")
	fs.DurationVarP(&config.TokenValidityDuration, "token-validity", "t", config.TokenValidityDuration, "token validity duration")
	fs.IntVar(&config.BcryptCost, "bcrypt-cost", config.BcryptCost, "bcrypt cost")
	fs.BoolVar(&config.Debug, "debug", config.Debug, "include internal error causes in responses")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")

	fs.StringVar(&config.S3RootUser, "s3-user", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "s3-password", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "s3-bucket", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "s3-region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "s3-endpoint", config.S3BaseEndpoint, "S3 base endpoint")

	return fs
}

// PrintUsage writes the flag reference to w.
func PrintUsage(w io.Writer) {
	cfg := &Config{}
	cfg.LoadDefaults()
	var files fileFlags
	fs := newFlagSet(cfg, &files)
	fs.SetOutput(w)
	fs.PrintDefaults()
}
