package model

// Config is the complete application configuration
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Index     IndexConfig     `yaml:"index"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Synthesis SynthesisConfig `yaml:"synthesis"`
	Debate    DebateConfig    `yaml:"debate"`
	Server    ServerConfig    `yaml:"server"`
	Output    OutputConfig    `yaml:"output"`
}

// DataConfig locates the raw and processed document directories
type DataConfig struct {
	PapersDir      string `yaml:"papers_dir"`      // Raw PDF papers
	TranscriptsDir string `yaml:"transcripts_dir"` // Raw WebVTT caption tracks
	ProcessedDir   string `yaml:"processed_dir"`   // Normalized text output
}

// IndexConfig configures the vector index
type IndexConfig struct {
	Path       string `yaml:"path"`       // SQLite database file
	Collection string `yaml:"collection"` // Collection name
	TopK       int    `yaml:"top_k"`      // Default retrieval depth
}

// EmbeddingConfig configures the embedding provider
type EmbeddingConfig struct {
	Provider string `yaml:"provider"` // "openai" or "ollama"
	Model    string `yaml:"model"`    // Model name (provider-specific)
	APIKey   string `yaml:"api_key,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Timeout  int    `yaml:"timeout"`   // Seconds per embedding request
	CacheDir string `yaml:"cache_dir"` // Disk layer of the embedding cache ("" disables)
}

// LLMConfig configures the text-completion provider
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai", "anthropic" or "ollama"
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // Seconds per completion call
	MaxTokens int    `yaml:"max_tokens"`
}

// SynthesisConfig tunes the answer synthesizer
type SynthesisConfig struct {
	// Mode selects the strategy: "mapreduce" or "single"
	Mode string `yaml:"mode"`
	// ChunkBudget caps characters submitted per map-stage call
	ChunkBudget int `yaml:"chunk_budget"`
	// ContextBudget caps the combined context in single-call mode
	ContextBudget int `yaml:"context_budget"`
	// MapWorkers bounds map-stage parallelism (1 = sequential)
	MapWorkers int `yaml:"map_workers"`
	// RequestsPerSecond rate-limits completion-service calls
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// DebateConfig tunes the debate generator
type DebateConfig struct {
	// ContextBudget caps characters of answer context in the debate prompt
	ContextBudget int `yaml:"context_budget"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// OutputConfig controls CLI verbosity
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			PapersDir:      "data/raw_papers",
			TranscriptsDir: "data/transcripts",
			ProcessedDir:   "data/processed",
		},
		Index: IndexConfig{
			Path:       "data/index.db",
			Collection: "research_knowledge",
			TopK:       3,
		},
		Embedding: EmbeddingConfig{
			Provider: "ollama",
			Timeout:  30,
			CacheDir: "data/embedding_cache",
		},
		LLM: LLMConfig{
			Provider:  "ollama",
			Model:     "mistral",
			Timeout:   120,
			MaxTokens: 1024,
		},
		Synthesis: SynthesisConfig{
			Mode:              "mapreduce",
			ChunkBudget:       4000,
			ContextBudget:     8000,
			MapWorkers:        1,
			RequestsPerSecond: 1,
		},
		Debate: DebateConfig{
			ContextBudget: 3500,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
	}
}
