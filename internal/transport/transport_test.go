package transport

import (
	"testing"

	"github.com/rileyhilliard/ferry/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestCommonArgs(t *testing.T) {
	o := DefaultOptions()

	assert.Equal(t, []string{
		"-p", "2222",
		"-o", "BatchMode=no",
		"-o", "StrictHostKeyChecking=accept-new",
	}, o.CommonArgs("-p", 2222))
}

func TestCommonArgs_ExtraOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Transport.ExtraOptions = []string{"ConnectTimeout=10"}
	o := FromConfig(cfg)

	assert.Equal(t, []string{
		"-P", "22",
		"-o", "BatchMode=no",
		"-o", "StrictHostKeyChecking=accept-new",
		"-o", "ConnectTimeout=10",
	}, o.CommonArgs("-P", 22))
}

func TestLocaleOrDefault(t *testing.T) {
	assert.Equal(t, "C", Options{}.LocaleOrDefault())
	assert.Equal(t, "C.UTF-8", Options{Locale: "C.UTF-8"}.LocaleOrDefault())
}
