package sqlite

import (
	"strings"

	"github.com/teenjuna/vec/codec"
)

type Config struct {
	file  string
	codec codec.Codec[CaseResult]
}

type ConfigFunc = func(c *Config)

func WithFile(file string) ConfigFunc {
	return func(c *Config) {
		c.File(file)
	}
}

func WithCodec(codec codec.Codec[CaseResult]) ConfigFunc {
	return func(c *Config) {
		c.Codec(codec)
	}
}

func (c *Config) File(file string) {
	file = strings.TrimSpace(file)
	if file == "" {
		panic("file can't be blank")
	}
	if strings.Contains(file, "?") {
		panic("file can't contain ?")
	}
	c.file = file
}

func (c *Config) Codec(codec codec.Codec[CaseResult]) {
	if codec == nil {
		panic("codec can't be nil")
	}
	c.codec = codec
}
