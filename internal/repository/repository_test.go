package repository

import (
	"testing"

	"github.com/jphacks/hs-2501/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestNewRepositoryFactory(t *testing.T) {
	memCfg := &config.Config{Store: config.StoreConfig{Backend: config.BackendMemory}}
	repo, cleanup, err := New(memCfg)
	assert.NoError(t, err)
	assert.NotNil(t, repo)
	assert.NotNil(t, cleanup)
	cleanup()

	fileCfg := &config.Config{Store: config.StoreConfig{Backend: config.BackendFile, DataDir: t.TempDir()}}
	repo, cleanup, err = New(fileCfg)
	assert.NoError(t, err)
	assert.NotNil(t, repo)
	assert.NotNil(t, cleanup)
	cleanup()

	badCfg := &config.Config{Store: config.StoreConfig{Backend: "carrier-pigeon"}}
	_, _, err = New(badCfg)
	assert.Error(t, err)
}
