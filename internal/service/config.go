package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/model"
)

const (
	ConfigSessionToken     = "session_token"
	ConfigSessionTokenType = "session_token_type"
)

func SetConfig(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	_, err := db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func DeleteConfig(db *sql.DB, keys ...string) error {
	for _, key := range keys {
		key = strings.TrimSpace(strings.ToLower(key))
		if _, err := db.Exec(`DELETE FROM app_config WHERE key = ?`, key); err != nil {
			return fmt.Errorf("delete config %q: %w", key, err)
		}
	}
	return nil
}

// ConfigTokenStore persists the session bearer token in app_config.
type ConfigTokenStore struct {
	DB *sql.DB
}

func (s ConfigTokenStore) LoadToken(_ context.Context) (model.Token, bool, error) {
	access, ok, err := GetConfig(s.DB, ConfigSessionToken)
	if err != nil || !ok || access == "" {
		return model.Token{}, false, err
	}
	tokenType, _, err := GetConfig(s.DB, ConfigSessionTokenType)
	if err != nil {
		return model.Token{}, false, err
	}
	return model.Token{AccessToken: access, TokenType: tokenType}, true, nil
}

func (s ConfigTokenStore) SaveToken(_ context.Context, tok model.Token) error {
	if strings.TrimSpace(tok.AccessToken) == "" {
		return fmt.Errorf("access token is required")
	}
	if err := SetConfig(s.DB, ConfigSessionToken, tok.AccessToken); err != nil {
		return err
	}
	return SetConfig(s.DB, ConfigSessionTokenType, tok.TokenType)
}

func (s ConfigTokenStore) ClearToken(_ context.Context) error {
	return DeleteConfig(s.DB, ConfigSessionToken, ConfigSessionTokenType)
}
