package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is built once in main from the environment and passed by
// reference into the services that need it. Nothing below cmd reads the
// process environment directly.
type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	BlobBasePath string

	// Reasoning service (OpenAI-compatible, Groq in the reference
	// deployment). Keys are an ordered failover list: tried strictly in
	// this order, one attempt each.
	LLMBaseURL     string
	LLMModel       string
	LLMAPIKeys     []string
	LLMTemperature float64

	// Transcription backend: local model when WhisperModelPath is set,
	// cloud API otherwise (reusing the first LLM key).
	WhisperModelPath  string
	WhisperBinary     string
	WhisperCloudModel string

	// Optional acoustic analyzer for long-pause detection; empty disables
	// it (zero pauses reported).
	AnalyzerURL string

	// Rubric definition file; empty selects the built-in set.
	RubricPath string

	// Fixed placeholder until project grading is wired to a real source.
	ProjectScore float64

	AuthSecret       string
	AssessorUser     string
	AssessorPassHash string // bcrypt

	CORSOrigins []string
}

func FromEnv() Config {
	return Config{
		HTTPAddr:          envOr("HTTP_ADDR", ":8080"),
		DBDriver:          envOr("DB_DRIVER", "sqlite"),
		DBDSN:             envOr("DB_DSN", ""),
		BlobBasePath:      envOr("BLOB_BASE_PATH", "./data"),
		LLMBaseURL:        envOr("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
		LLMModel:          envOr("LLM_MODEL", "llama-3.3-70b-versatile"),
		LLMAPIKeys:        csv("LLM_API_KEYS"),
		LLMTemperature:    envFloat("LLM_TEMPERATURE", 0.1),
		WhisperModelPath:  os.Getenv("WHISPER_MODEL_PATH"),
		WhisperBinary:     envOr("WHISPER_BINARY", "whisper-cli"),
		WhisperCloudModel: envOr("WHISPER_CLOUD_MODEL", "whisper-large-v3-turbo"),
		AnalyzerURL:       os.Getenv("ANALYZER_URL"),
		RubricPath:        os.Getenv("RUBRIC_PATH"),
		ProjectScore:      envFloat("PROJECT_SCORE", 100),
		AuthSecret:        envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		AssessorUser:      envOr("ASSESSOR_USER", "assessor"),
		AssessorPassHash:  envOr("ASSESSOR_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),
		CORSOrigins:       csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

// Validate catches the configuration errors that must be fatal at startup
// rather than at first use.
func (c Config) Validate() error {
	if len(c.LLMAPIKeys) == 0 {
		return fmt.Errorf("config: LLM_API_KEYS is empty; grading cannot run without at least one credential")
	}
	if c.ProjectScore < 0 || c.ProjectScore > 100 {
		return fmt.Errorf("config: PROJECT_SCORE %v outside 0..100", c.ProjectScore)
	}
	return nil
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envFloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func csv(k string) []string {
	return splitCSV(os.Getenv(k))
}

func csvOr(k, def string) []string {
	return splitCSV(envOr(k, def))
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
