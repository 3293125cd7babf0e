package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPublic = `
log:
  level: debug
http:
  addr: ":8080"
jwt_ttl: 24h
posts_per_page: 20
search_limit: 50
media:
  backend: fs
  root: ./media
  max_size_bytes: 10485760
  allowed_image_mime_types: [image/jpeg, image/png]
boards:
  - slug: b
    name: Random
`

func writeConfig(t *testing.T, public string, env string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public.yaml"), []byte(public), 0o600))
	if env != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	}
	return dir
}

func TestMustLoad(t *testing.T) {
	t.Setenv("JWT_KEY", "secret")
	t.Setenv("PG_HOST", "db.internal")
	dir := writeConfig(t, validPublic, "")

	cfg := MustLoad(dir)

	assert.Equal(t, "secret", cfg.JwtKey())
	assert.Equal(t, 24*time.Hour, cfg.JwtTTL())
	assert.Equal(t, "db.internal", cfg.Private.Pg.Host)
	assert.Equal(t, 5432, cfg.Private.Pg.Port)
	assert.Equal(t, 20, cfg.Public.PostsPerPage)
	assert.Equal(t, 50, cfg.Public.UserActivityLimit)
	assert.Equal(t, "/media", cfg.Public.Media.URLPrefix)
	assert.Equal(t, 10*time.Second, cfg.Public.HTTP.ReadTimeout)
	require.Len(t, cfg.Public.Boards, 1)
	assert.Equal(t, "b", cfg.Public.Boards[0].Slug)
}

func TestMustLoad_EnvFile(t *testing.T) {
	// godotenv does not override variables already set, so make sure JWT_KEY only comes from the file
	t.Setenv("JWT_KEY", "")
	require.NoError(t, os.Unsetenv("JWT_KEY"))
	dir := writeConfig(t, validPublic, "JWT_KEY=from-file\nPG_DBNAME=boards\n")
	t.Cleanup(func() {
		os.Unsetenv("PG_DBNAME")
	})

	cfg := MustLoad(dir)

	assert.Equal(t, "from-file", cfg.JwtKey())
	assert.Equal(t, "boards", cfg.Private.Pg.Dbname)
}

func TestMustLoad_RequiredFields(t *testing.T) {
	t.Setenv("JWT_KEY", "secret")
	// search_limit is intentionally missing
	dir := writeConfig(t, "http:\n  addr: ':8080'\njwt_ttl: 1h\nposts_per_page: 20\n", "")

	assert.Panics(t, func() { MustLoad(dir) })
}

func TestMustLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_KEY", "")
	require.NoError(t, os.Unsetenv("JWT_KEY"))
	dir := writeConfig(t, validPublic, "")

	assert.Panics(t, func() { MustLoad(dir) })
}

func TestMustLoad_MissingFile(t *testing.T) {
	assert.Panics(t, func() { MustLoad(t.TempDir()) })
}
