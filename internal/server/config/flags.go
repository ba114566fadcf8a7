package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/timecapsule/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-k string   storage key prefix for attachments
//	-l int      attachment download URL expiry, minutes
//	-m int      max attachment size, bytes
//	-n int      max attachments per capsule
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - The expiry flag is accepted as an integer in minutes and then converted
//     to a time.Duration value.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-u", "-p", "-b", "-g", "-e", "-k", "-l", "-m", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.StorageKeyPrefix, "k", config.StorageKeyPrefix, "storage key prefix for attachments")
	urlExpiry := fs.Int("l", int(config.AttachmentURLExpiry.Minutes()), "attachment url expiry (in minutes)")
	fs.Int64Var(&config.MaxAttachmentSize, "m", config.MaxAttachmentSize, "max attachment size (in bytes)")
	fs.IntVar(&config.MaxAttachmentCount, "n", config.MaxAttachmentCount, "max attachments per capsule")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AttachmentURLExpiry = time.Duration(*urlExpiry) * time.Minute
}
