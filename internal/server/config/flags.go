package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/duoledger/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC health bind address, "" disables it
//	-d string   PostgreSQL DSN, or memory:// for the in-process store
//	-s string   session token HMAC secret
//	-u string   public base URL used in verification links
//	-n string   notifier backend: log, smtp, s3
//	-l string   log format: json, text, zerolog
//	-w string   directory with static pages
//	-p          production mode (Secure cookies)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, so -c/-config handled by parseJson does not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-g", "-d", "-s", "-u", "-n", "-l", "-w", "-p"}, "-p")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run the HTTP server")
	fs.StringVar(&config.HealthAddrGRPC, "g", config.HealthAddrGRPC, "address and port of the gRPC health service")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.BaseURL, "u", config.BaseURL, "public base URL")
	fs.StringVar(&config.Notifier, "n", config.Notifier, "notifier backend (log, smtp, s3)")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format (json, text, zerolog)")
	fs.StringVar(&config.StaticDir, "w", config.StaticDir, "static pages directory")
	fs.BoolVar(&config.Production, "p", config.Production, "production mode")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
