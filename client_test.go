package codex

import (
	"context"
	"errors"
	"testing"
)

func TestNew_NoAddress(t *testing.T) {
	_, err := New()
	if err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithRedis("localhost:6379", "secret")(cfg)
	if cfg.addrs[0] != "localhost:6379" {
		t.Errorf("addr = %q, want localhost:6379", cfg.addrs[0])
	}
	if cfg.password != "secret" {
		t.Errorf("password = %q, want secret", cfg.password)
	}

	cfg2 := &clientConfig{}
	WithRedisCluster([]string{"n1:6379", "n2:6379"}, "pass")(cfg2)
	if len(cfg2.addrs) != 2 {
		t.Errorf("addrs = %d, want 2", len(cfg2.addrs))
	}

	WithRedisAuth("reader", 3)(cfg2)
	if cfg2.username != "reader" || cfg2.db != 3 {
		t.Errorf("auth = (%q, %d), want (reader, 3)", cfg2.username, cfg2.db)
	}

	WithOracle("sk-test")(cfg2)
	WithOracleModels("gpt-4o-mini", "", "")(cfg2)
	WithOracleVoice("nova")(cfg2)
	if cfg2.oracleAPIKey != "sk-test" {
		t.Errorf("oracleAPIKey = %q, want sk-test", cfg2.oracleAPIKey)
	}
	if cfg2.completionModel != "gpt-4o-mini" {
		t.Errorf("completionModel = %q, want gpt-4o-mini", cfg2.completionModel)
	}
	if cfg2.voice != "nova" {
		t.Errorf("voice = %q, want nova", cfg2.voice)
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{store: nil}
	c.Close()
}

func TestClient_OracleNotConfigured(t *testing.T) {
	cfg := &clientConfig{logger: nil}
	c := wireClient(nil, cfg)

	_, err := c.Consult(context.Background(), "what is the pleroma", "")
	if !errors.Is(err, ErrOracleNotConfigured) {
		t.Fatalf("err = %v, want ErrOracleNotConfigured", err)
	}
	if _, err := c.Sigil(context.Background(), "a sigil"); !errors.Is(err, ErrOracleNotConfigured) {
		t.Fatalf("err = %v, want ErrOracleNotConfigured", err)
	}
}
