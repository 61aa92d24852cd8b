package config

import "fmt"

type HTTP struct {
	Port uint32 `env:"PORT" envDefault:"3000"`
	// CORSOrigins is passed to the fiber cors middleware.
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`
	AccessLog   bool   `env:"HTTP_ACCESS_LOG" envDefault:"true"`
}

func (h HTTP) Addr() string {
	return fmt.Sprintf(":%d", h.Port)
}

type Upload struct {
	Dir         string `env:"UPLOAD_DIR" envDefault:"uploads"`
	MaxFileSize int64  `env:"UPLOAD_MAX_FILE_SIZE" envDefault:"5242880"`
}

// BodyLimit leaves room for the multipart envelope around a maximum-size file,
// so oversized files reach the handler and get a JSON error.
func (u Upload) BodyLimit() int {
	return int(u.MaxFileSize) + 1<<20
}
