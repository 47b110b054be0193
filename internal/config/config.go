package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"    validate:"required"`
	Execution ExecutionConfig `mapstructure:"execution" validate:"required"`
	Interview InterviewConfig `mapstructure:"interview" validate:"required"`
	Cache     CacheConfig     `mapstructure:"cache"     validate:"required"`
}

// ServerConfig contains all HTTP server related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// OpenAIConfig contains all settings for the remote assistant service.
type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key" validate:"required"`
	Model  string `mapstructure:"model"   validate:"required"`

	// AssistantConfigFile is where the IDs of the interviewer and validator
	// assistants are cached between restarts.
	AssistantConfigFile string `mapstructure:"assistant_config_file" validate:"required"`
}

// ExecutionConfig contains the tunables for the asynchronous execution
// layer: the worker pool, the request retry policy and the run polling
// recovery policy. All values must be positive.
type ExecutionConfig struct {
	// WorkerCount caps how many blocking remote calls may execute
	// concurrently, system wide.
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`

	// QueueSize is the buffer of the pool's job queue. Submissions beyond
	// WorkerCount in-flight calls wait here in FIFO order.
	QueueSize int `mapstructure:"queue_size" validate:"required,gt=0"`

	// MaxRequestRetries is the number of attempts a single remote call is
	// given before the executor gives up. A value of 1 means a single
	// attempt with no retries.
	MaxRequestRetries int `mapstructure:"max_request_retries" validate:"required,gt=0"`

	// BaseTimeoutSeconds is the deadline of the first attempt; attempt n
	// (zero-based) is given BaseTimeoutSeconds*(n+1).
	BaseTimeoutSeconds int `mapstructure:"base_timeout_seconds" validate:"required,gt=0"`

	// MaxRunRetries is the recreation budget of one run-poll session,
	// shared between failed-status recovery and wall-clock recovery.
	MaxRunRetries int `mapstructure:"max_run_retries" validate:"required,gt=0"`

	// RunTimeoutSeconds is the wall-clock window a single run gets before
	// it is considered stuck. The window restarts on every recreation.
	RunTimeoutSeconds int `mapstructure:"run_timeout_seconds" validate:"required,gt=0"`

	// PollIntervalSeconds is the sleep between run status reads.
	PollIntervalSeconds int `mapstructure:"poll_interval_seconds" validate:"required,gt=0"`
}

// InterviewConfig contains the interview flow settings.
type InterviewConfig struct {
	MinQuestions    int    `mapstructure:"min_questions"    validate:"required,gt=0"`
	MaxQuestions    int    `mapstructure:"max_questions"    validate:"required,gtefield=MinQuestions"`
	DefaultLanguage string `mapstructure:"default_language" validate:"required"`
}

// CacheConfig contains settings for the local portfolio validation cache.
type CacheConfig struct {
	Dir        string `mapstructure:"dir"          validate:"required"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"required,gt=0"`
}
