package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, 0.1, cfg.LLM.Temperature)
	assert.Equal(t, defaultLLMTimeout, cfg.LLM.Timeout)
	assert.Equal(t, defaultMLTimeout, cfg.ML.Timeout)
	assert.Equal(t, "ML", cfg.Scoring.MLMode)
	assert.False(t, cfg.Scoring.EnrichExplanations)
	assert.Equal(t, defaultResultTTL, cfg.Scoring.ResultTTL)
}

func TestFromViper_EnvOverrides(t *testing.T) {
	t.Setenv("ML_BASE_URL", "http://classifier:5000")
	t.Setenv("LLM_SERVER", "http://ollama:11434")
	t.Setenv("DB_HOST", "oracle-db")

	v := viper.New()
	setDefaults(v)
	v.Set("ml.base_url", "http://localhost:5000")
	v.Set("db.port", 1521)

	cfg := fromViper(v)

	assert.Equal(t, "http://classifier:5000", cfg.ML.BaseURL)
	assert.Equal(t, "http://ollama:11434", cfg.LLM.ServerURL)
	assert.Equal(t, "oracle-db", cfg.DB.Host)
	assert.Equal(t, 1521, cfg.DB.Port)
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{DB: DBConfig{Host: "db", Port: 1521, User: "scott", Password: "tiger", DBName: "CAREER"}}
	assert.Equal(t, "oracle://scott:tiger@db:1521/CAREER", cfg.GetDSN())
}
