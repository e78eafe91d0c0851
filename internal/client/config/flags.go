package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/flagx"
)

var (
	valueFlags = []string{"-d", "-a", "-k", "-t", "-s", "-r", "-u", "-p", "-b", "-g", "-l", "-e", "-i", "-f", "-z", "-v"}
	boolFlags  = []string{"-m", "-q"}
)

// parseFlags populates Config fields from command-line flags. os.Args is
// filtered with flagx.FilterArgs so -c/-config and unknown flags are ignored.
// It panics on malformed values.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], valueFlags, boolFlags...)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "Postgres DSN of the remote store")
	fs.StringVar(&cfg.AuthURL, "a", cfg.AuthURL, "base URL of the auth API")
	fs.StringVar(&cfg.AnonKey, "k", cfg.AnonKey, "anon API key")
	fs.StringVar(&cfg.RedirectURL, "t", cfg.RedirectURL, "password reset redirect URL")
	fs.StringVar(&cfg.StorageEndpoint, "s", cfg.StorageEndpoint, "S3 endpoint")
	fs.StringVar(&cfg.StorageRegion, "r", cfg.StorageRegion, "S3 region")
	fs.StringVar(&cfg.StorageAccessKey, "u", cfg.StorageAccessKey, "S3 access key")
	fs.StringVar(&cfg.StorageSecretKey, "p", cfg.StorageSecretKey, "S3 secret key")
	fs.StringVar(&cfg.StorageBucket, "b", cfg.StorageBucket, "image bucket")
	fs.StringVar(&cfg.StoragePublicURL, "g", cfg.StoragePublicURL, "public URL prefix of stored objects")
	fs.StringVar(&cfg.CachePath, "l", cfg.CachePath, "local cache file")
	fs.StringVar(&cfg.ExportDir, "e", cfg.ExportDir, "export directory")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.LogFile, "f", cfg.LogFile, "log file")
	fs.StringVar(&cfg.LogBackend, "z", cfg.LogBackend, "log backend (zap|slog)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.MigrateRemote, "m", cfg.MigrateRemote, "apply remote schema migrations")
	fs.BoolVar(&cfg.SealPINs, "q", cfg.SealPINs, "store note PINs as argon2id digests")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
