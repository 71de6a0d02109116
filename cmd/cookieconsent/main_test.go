package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/cookieconsent/pkg/consent"
	"github.com/umputun/cookieconsent/pkg/domain"
	"github.com/umputun/cookieconsent/pkg/repository"
)

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	opts := Opts{
		Config: "non-existent-config.yml",
	}

	err := run(ctx, opts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: configPath})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_ServerStartStop(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("DB_PATH", tmpDir)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wd, err := os.Getwd()
	require.NoError(t, err)
	opts := Opts{Config: filepath.Join(wd, "testdata", "test_config.yml")}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- run(ctx, opts)
	}()

	// wait for server to start
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:18765/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	resp, err := http.Post("http://127.0.0.1:18765/api/v1/consent/accept-all", "", http.NoBody)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"phase":"hidden"}`, string(body))

	// shutdown
	cancel()
	select {
	case err := <-serverErr:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server shutdown timeout")
	}

	// decision survives the restart
	var out bytes.Buffer
	repos, err := repository.NewRepositories(context.Background(),
		repository.Config{DSN: "file:" + filepath.Join(tmpDir, "consent.db"), MaxOpenConns: 1})
	require.NoError(t, err)
	defer repos.Close()
	require.NoError(t, showDecision(context.Background(), &out, consent.NewStore(repos.Setting, ""), repos.Setting))
	assert.Contains(t, out.String(), "analytics: true")
	assert.Contains(t, out.String(), "marketing: true")
}

func TestRun_Show(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "consent.db")

	ctx := context.Background()
	err := run(ctx, Opts{DB: dsn, Show: true})
	require.NoError(t, err)
}

func TestShowDecision(t *testing.T) {
	ctx := context.Background()
	repos, err := repository.NewRepositories(ctx, repository.Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	defer repos.Close()
	store := consent.NewStore(repos.Setting, "")

	t.Run("undecided", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, showDecision(ctx, &out, store, repos.Setting))
		assert.Equal(t, "no consent decision recorded\n", out.String())
	})

	t.Run("decided", func(t *testing.T) {
		decided := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, store.Save(ctx, domain.NewConsentRecord(domain.Preferences{Analytics: true}, decided)))

		var out bytes.Buffer
		require.NoError(t, showDecision(ctx, &out, store, repos.Setting))
		assert.Contains(t, out.String(), "necessary: true\nanalytics: true\nmarketing: false\n")
		assert.Contains(t, out.String(), "decided at: 2024-01-01T00:00:00Z\n")
		assert.Contains(t, out.String(), "stored at: ")
	})

	t.Run("every category listed in order", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.RejectAllRecord(time.Now())))

		var out bytes.Buffer
		require.NoError(t, showDecision(ctx, &out, store, repos.Setting))
		assert.True(t, strings.HasPrefix(out.String(), "necessary: true\nanalytics: false\nmarketing: false\ndecided at: "),
			out.String())
	})

	t.Run("record without decision time", func(t *testing.T) {
		require.NoError(t, repos.Setting.SetSetting(ctx, store.Key(), `{"necessary":true,"marketing":true}`))

		var out bytes.Buffer
		require.NoError(t, showDecision(ctx, &out, store, repos.Setting))
		assert.Contains(t, out.String(), "marketing: true\ndecided at: unknown\n")
		assert.NotContains(t, out.String(), "0001-01-01")
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		cfg, err := loadConfig(Opts{})
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:8080", cfg.Server.Listen)
		assert.Equal(t, "cookieConsent", cfg.Consent.StorageKey)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := loadConfig(Opts{DB: "file:x.db", Listen: ":9999"})
		require.NoError(t, err)
		assert.Equal(t, "file:x.db", cfg.Database.DSN)
		assert.Equal(t, ":9999", cfg.Server.Listen)
	})
}

func TestSetupLog(t *testing.T) {
	t.Run("debug mode enabled", func(t *testing.T) {
		SetupLog(true)
	})

	t.Run("debug mode disabled", func(t *testing.T) {
		SetupLog(false)
	})

	t.Run("with secrets", func(t *testing.T) {
		SetupLog(true, "secret1", "secret2")
	})
}
