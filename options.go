package codex

import "go.uber.org/zap"

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int

	oracleAPIKey    string
	oracleBaseURL   string
	completionModel string
	imageModel      string
	speechModel     string
	voice           string

	logger *zap.Logger
}

// Default oracle models, overridable via WithOracleModels.
const (
	defaultCompletionModel = "gpt-4o"
	defaultImageModel      = "dall-e-3"
	defaultSpeechModel     = "tts-1"
	defaultVoice           = "alloy"
)

// WithRedis connects to a single Redis instance.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithRedisCluster connects to a Redis cluster.
func WithRedisCluster(addrs []string, password string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
		c.password = password
	}
}

// WithRedisAuth sets the ACL username and logical database.
func WithRedisAuth(username string, db int) Option {
	return func(c *clientConfig) {
		c.username = username
		c.db = db
	}
}

// WithOracle enables the generative oracle. Without this option the oracle
// operations return ErrOracleNotConfigured.
func WithOracle(apiKey string) Option {
	return func(c *clientConfig) {
		c.oracleAPIKey = apiKey
	}
}

// WithOracleBaseURL points the oracle at an OpenAI-compatible endpoint.
func WithOracleBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.oracleBaseURL = url
	}
}

// WithOracleModels overrides the default completion, image and speech
// models. Empty strings keep the defaults.
func WithOracleModels(completion, image, speech string) Option {
	return func(c *clientConfig) {
		c.completionModel = completion
		c.imageModel = image
		c.speechModel = speech
	}
}

// WithOracleVoice sets the speech synthesis voice.
func WithOracleVoice(voice string) Option {
	return func(c *clientConfig) {
		c.voice = voice
	}
}

// WithLogger sets the logger used by the oracle provider. Defaults to a
// no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
