package main

import (
	"bytes"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/readable_hash"
	"go.uber.org/zap/zaptest"
)

// fakeFlags answers flag lookups from a map; absent names are unset.
type fakeFlags map[string]interface{}

func (flags fakeFlags) IsSet(name string) bool {
	_, ok := flags[name]
	return ok
}

func (flags fakeFlags) String(name string) string {
	value, _ := flags[name].(string)
	return value
}

func (flags fakeFlags) Int(name string) int {
	value, _ := flags[name].(int)
	return value
}

func (flags fakeFlags) Bool(name string) bool {
	value, _ := flags[name].(bool)
	return value
}

const testConfig = `
model: english-v1
hasher: sha256
words: 4
separator: "-"
`

func TestConfig_Layers(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, "english", cfg.Model)
	assert.Equal(t, 6, cfg.Words)
	require.NoError(t, cfg.validate())

	configPath := path.Join(t.TempDir(), "readable_hash.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(testConfig), 0644))
	require.NoError(t, loadConfigFile(configPath, &cfg))
	assert.Equal(t, "english-v1", cfg.Model)
	assert.Equal(t, "sha256", cfg.Hasher)
	assert.Equal(t, 4, cfg.Words)
	assert.Equal(t, 6, cfg.BytesPerWord)
	assert.Equal(t, "-", cfg.Separator)

	applyCLIOverrides(fakeFlags{"words": 2, "target-len": 7,
		"naive": false}, &cfg)
	assert.Equal(t, 2, cfg.Words)
	assert.Equal(t, 7, cfg.TargetLen)
	assert.Equal(t, "sha256", cfg.Hasher)
	assert.False(t, cfg.Naive)

	assert.Equal(t, readable_hash.HashOptions{
		Words: 2, BytesPerWord: 6, TargetLen: 7, Separator: "-",
	}, cfg.hashOptions())
}

func TestConfig_Errors(t *testing.T) {
	cfg := defaultConfig()
	assert.Error(t, loadConfigFile(path.Join(t.TempDir(), "missing"), &cfg))

	badPath := path.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("words: [1"), 0644))
	assert.Error(t, loadConfigFile(badPath, &cfg))

	for _, broken := range []func(cfg *Config){
		func(cfg *Config) { cfg.Words = 0 },
		func(cfg *Config) { cfg.BytesPerWord = -1 },
		func(cfg *Config) { cfg.TargetLen = -3 },
		func(cfg *Config) { cfg.Naive, cfg.Sentences = true, true },
	} {
		cfg := defaultConfig()
		broken(&cfg)
		assert.Error(t, cfg.validate())
	}
}

func TestHashAll(t *testing.T) {
	cfg := defaultConfig()
	hash, err := newHashFunc(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, hashAll([]string{"hello"}, hash, &out))
	assert.Equal(t, "again heaven action golden culture olive\n", out.String())

	cfg.Naive = true
	cfg.Hasher = "sha256"
	hash, err = newHashFunc(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	out.Reset()
	require.NoError(t, hashLines(strings.NewReader("hello\r\nhello\n"), hash,
		&out))
	naive := readable_hash.NaiveReadableHash("hello", nil)
	assert.Equal(t, naive+"\n"+naive+"\n", out.String())

	cfg.Hasher = "md5"
	_, err = newHashFunc(cfg, zaptest.NewLogger(t))
	assert.Error(t, err)
}
