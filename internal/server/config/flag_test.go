package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_OverridesDefaults(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"server",
		"-a", ":9090",
		"-d", "postgres://u:p@localhost:5432/caps",
		"-u", "minio",
		"-p", "miniopass",
		"-b", "bucket2",
		"-g", "eu-west-1",
		"-e", "http://minio:9000/",
		"-k", "attachments/",
		"-l", "60",
		"-m", "1048576",
		"-n", "5",
	}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, ":9090", c.EndpointAddrHTTP)
	assert.Equal(t, "postgres://u:p@localhost:5432/caps", c.DatabaseDSN)
	assert.Equal(t, "minio", c.S3RootUser)
	assert.Equal(t, "miniopass", c.S3RootPassword)
	assert.Equal(t, "bucket2", c.S3Bucket)
	assert.Equal(t, "eu-west-1", c.S3Region)
	assert.Equal(t, "http://minio:9000/", c.S3BaseEndpoint)
	assert.Equal(t, "attachments/", c.StorageKeyPrefix)
	assert.Equal(t, 60*time.Minute, c.AttachmentURLExpiry)
	assert.Equal(t, int64(1048576), c.MaxAttachmentSize)
	assert.Equal(t, 5, c.MaxAttachmentCount)
}

func TestParseFlags_UnknownFlagsIgnored(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"server", "-z", "whatever", "-a", ":7070"}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, ":7070", c.EndpointAddrHTTP)
}
