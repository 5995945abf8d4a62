package config

import (
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Qdrant   QdrantConfig
	LLM      LLMConfig
	Scoring  ScoringConfig
	Limits   LimitsConfig
	Storage  StorageConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

// LLMConfig selects the generative/embedding provider and its models.
type LLMConfig struct {
	Provider       string
	GeminiAPIKey   string
	GeminiModel    string
	EmbedModel     string
	RequestTimeout time.Duration
	MaxRetries     int
}

// ScoringConfig holds the four aggregation weights. They are expected to sum
// to 1.0; Load normalizes them when they do not.
type ScoringConfig struct {
	WeightSkillsMatch         float64
	WeightExperienceRelevance float64
	WeightSemanticSimilarity  float64
	WeightResumeQuality       float64
}

// LimitsConfig bounds the amount of text sent per prompt.
type LimitsConfig struct {
	QualityResumeChars    int
	SuggestionResumeChars int
	SuggestionJobChars    int
	BulletJobChars        int
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_analyzer"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "analyzed_jobs"),
		},
		LLM: LLMConfig{
			Provider:       getEnv("LLM_PROVIDER", "gemini"),
			GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
			GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EmbedModel:     getEnv("EMBEDDING_MODEL", "text-embedding-004"),
			RequestTimeout: getEnvAsDuration("LLM_REQUEST_TIMEOUT", "60s"),
			MaxRetries:     getEnvAsInt("LLM_MAX_RETRIES", 3),
		},
		Scoring: ScoringConfig{
			WeightSkillsMatch:         getEnvAsFloat("WEIGHT_SKILLS_MATCH", 0.40),
			WeightExperienceRelevance: getEnvAsFloat("WEIGHT_EXPERIENCE_RELEVANCE", 0.30),
			WeightSemanticSimilarity:  getEnvAsFloat("WEIGHT_SEMANTIC_SIMILARITY", 0.20),
			WeightResumeQuality:       getEnvAsFloat("WEIGHT_RESUME_QUALITY", 0.10),
		},
		Limits: LimitsConfig{
			QualityResumeChars:    getEnvAsInt("LIMIT_QUALITY_RESUME_CHARS", 3000),
			SuggestionResumeChars: getEnvAsInt("LIMIT_SUGGESTION_RESUME_CHARS", 2000),
			SuggestionJobChars:    getEnvAsInt("LIMIT_SUGGESTION_JOB_CHARS", 2000),
			BulletJobChars:        getEnvAsInt("LIMIT_BULLET_JOB_CHARS", 1500),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 3),
		},
	}

	cfg.Scoring.Normalize()

	return cfg
}

// Normalize rescales the weights so they sum to 1.0. Misconfigured weights
// would otherwise push the overall score outside [0,100].
func (s *ScoringConfig) Normalize() {
	sum := s.WeightSkillsMatch + s.WeightExperienceRelevance +
		s.WeightSemanticSimilarity + s.WeightResumeQuality

	if sum <= 0 {
		log.Println("⚠️  Scoring weights sum to zero or less, falling back to defaults")
		s.WeightSkillsMatch = 0.40
		s.WeightExperienceRelevance = 0.30
		s.WeightSemanticSimilarity = 0.20
		s.WeightResumeQuality = 0.10
		return
	}

	if math.Abs(sum-1.0) > 0.01 {
		log.Printf("⚠️  Scoring weights sum to %.3f, normalizing to 1.0\n", sum)
		s.WeightSkillsMatch /= sum
		s.WeightExperienceRelevance /= sum
		s.WeightSemanticSimilarity /= sum
		s.WeightResumeQuality /= sum
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
