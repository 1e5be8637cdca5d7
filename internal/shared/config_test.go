package shared_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"code_reviewer/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env here
	for _, k := range []string{"HTTP_ADDR", "PORT", "ALLOWED_ORIGINS", "REVIEW_PATH", "PROVIDER_TIMEOUT_SECONDS",
		"REVIEW_INSTRUCTION", "REVIEW_INSTRUCTION_FILE", "GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_TRANSPORT"} {
		t.Setenv(k, "")
	}

	c := shared.Load()
	if c.HTTPAddr != ":3000" {
		t.Fatalf("HTTPAddr = %q", c.HTTPAddr)
	}
	if c.ReviewPath != "/api/review" {
		t.Fatalf("ReviewPath = %q", c.ReviewPath)
	}
	if len(c.AllowedOrigins) != 1 || c.AllowedOrigins[0] != "*" {
		t.Fatalf("AllowedOrigins = %v", c.AllowedOrigins)
	}
	if c.ProviderTimeout != 30*time.Second {
		t.Fatalf("ProviderTimeout = %v", c.ProviderTimeout)
	}
	if c.Instruction != shared.DefaultInstruction {
		t.Fatalf("expected default instruction")
	}
	if c.GeminiTransport != "rest" {
		t.Fatalf("GeminiTransport = %q", c.GeminiTransport)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8081")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("REVIEW_PATH", "review")
	t.Setenv("PROVIDER_TIMEOUT_SECONDS", "5")
	t.Setenv("REVIEW_INSTRUCTION", "  Be brief.  ")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-key")

	c := shared.Load()
	if c.HTTPAddr != ":8081" {
		t.Fatalf("HTTPAddr = %q", c.HTTPAddr)
	}
	if len(c.AllowedOrigins) != 2 || c.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("AllowedOrigins = %v", c.AllowedOrigins)
	}
	if c.ReviewPath != "/review" {
		t.Fatalf("ReviewPath = %q", c.ReviewPath)
	}
	if c.ProviderTimeout != 5*time.Second {
		t.Fatalf("ProviderTimeout = %v", c.ProviderTimeout)
	}
	if c.Instruction != "Be brief." {
		t.Fatalf("Instruction = %q", c.Instruction)
	}
	if c.GeminiKey != "google-key" {
		t.Fatalf("GeminiKey = %q", c.GeminiKey)
	}
}

func TestLoad_DotEnvAndInstructionFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	instr := filepath.Join(dir, "instruction.txt")
	if err := os.WriteFile(instr, []byte("From file.\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("OPENAI_MODEL=gpt-from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("REVIEW_INSTRUCTION", "")
	t.Setenv("REVIEW_INSTRUCTION_FILE", instr)
	t.Setenv("OPENAI_MODEL", "")
	os.Unsetenv("OPENAI_MODEL") // godotenv only fills unset variables

	c := shared.Load()
	if c.OpenAIModel != "gpt-from-dotenv" {
		t.Fatalf("OpenAIModel = %q", c.OpenAIModel)
	}
	if c.Instruction != "From file." {
		t.Fatalf("Instruction = %q", c.Instruction)
	}
}

func TestDefaultInstruction_Sections(t *testing.T) {
	for _, want := range []string{
		"### EVALUATION CRITERIA:",
		"**Security & Dependency Checks**",
		"**Scalability & Architecture**",
		"#### **Code Review Summary**",
		"#### **Detailed Feedback**",
		"#### **Overall Score (Optional)**",
		"### ADDITIONAL NOTES:",
	} {
		if !strings.Contains(shared.DefaultInstruction, want) {
			t.Fatalf("default instruction lacks %q", want)
		}
	}
}
