package gemini

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ryabchinskiymike/taro-bot/internal/domain"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &Config{
		BaseURL:        server.URL,
		ApiVersion:     "v1beta",
		ApiKey:         "test-key",
		TextModel:      "gemini-2.5-flash",
		ImageModel:     "imagen-4.0-generate-001",
		TimeoutSeconds: 5,
	}
	return NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func modelText(t *testing.T, payload interface{}) string {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	resp := generateContentResponse{
		Candidates: []candidate{
			{Content: content{Parts: []part{{Text: string(data)}}}},
		},
	}
	out, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return string(out)
}

func TestGeneratePrediction_Success(t *testing.T) {
	want := domain.Prediction{
		CardName:  "Звезда",
		Horoscope: "Ясный день.",
		Finance:   "Рост.",
		Relations: "Гармония.",
		Advice:    "Верь себе.",
	}

	var gotPath, gotKey string
	var gotReq generateContentRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		io.WriteString(w, modelText(t, want))
	})

	got, err := client.GeneratePrediction(context.Background(), "The Star", "Anna")
	if err != nil {
		t.Fatalf("GeneratePrediction() error = %v", err)
	}

	if *got != want {
		t.Errorf("prediction = %+v, want %+v", *got, want)
	}
	if gotPath != "/v1beta/models/gemini-2.5-flash:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("x-goog-api-key = %q, want test-key", gotKey)
	}
	if gotReq.GenerationConfig == nil || gotReq.GenerationConfig.ResponseMimeType != "application/json" {
		t.Error("request must demand a JSON response via generationConfig")
	}
	if len(gotReq.Contents) != 1 || len(gotReq.Contents[0].Parts) != 1 {
		t.Fatalf("contents = %+v, want a single prompt part", gotReq.Contents)
	}
	prompt := gotReq.Contents[0].Parts[0].Text
	if !strings.Contains(prompt, "The Star") || !strings.Contains(prompt, "Anna") {
		t.Errorf("prompt must mention the card and the user, got %q", prompt)
	}
}

func TestGeneratePrediction_InvalidJSON(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		resp := generateContentResponse{
			Candidates: []candidate{
				{Content: content{Parts: []part{{Text: "Сегодня вас ждёт удача!"}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})

	_, err := client.GeneratePrediction(context.Background(), "The Star", "Anna")
	if err == nil {
		t.Fatal("free-form model text must be rejected")
	}
}

func TestGeneratePrediction_MissingField(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, modelText(t, map[string]string{
			"cardName":  "Звезда",
			"horoscope": "Ясный день.",
			"finance":   "Рост.",
			"relations": "Гармония.",
			// advice отсутствует
		}))
	})

	_, err := client.GeneratePrediction(context.Background(), "The Star", "Anna")
	if err == nil {
		t.Fatal("prediction with a missing field must be rejected")
	}
}

func TestGeneratePrediction_NoCandidates(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"candidates":[]}`)
	})

	_, err := client.GeneratePrediction(context.Background(), "The Star", "Anna")
	if err == nil {
		t.Fatal("empty candidates must be rejected")
	}
}

func TestGeneratePrediction_HTTPError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":{"status":"RESOURCE_EXHAUSTED"}}`)
	})

	_, err := client.GeneratePrediction(context.Background(), "The Star", "Anna")
	if err == nil {
		t.Fatal("non-200 status must surface as an error")
	}
	if !strings.Contains(err.Error(), "status=429") {
		t.Errorf("error must carry the status code, got %v", err)
	}
}

func TestGenerateCardImage_Success(t *testing.T) {
	var gotPath string
	var gotReq predictRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		io.WriteString(w, `{"predictions":[{"bytesBase64Encoded":"/9j/4AAQ"}]}`)
	})

	b64, err := client.GenerateCardImage(context.Background(), "The Star")
	if err != nil {
		t.Fatalf("GenerateCardImage() error = %v", err)
	}

	if b64 != "/9j/4AAQ" {
		t.Errorf("b64 = %q, want raw payload without data URI prefix", b64)
	}
	if gotPath != "/v1beta/models/imagen-4.0-generate-001:predict" {
		t.Errorf("path = %q", gotPath)
	}
	if len(gotReq.Instances) != 1 || !strings.Contains(gotReq.Instances[0].Prompt, "The Star") {
		t.Errorf("instances = %+v, want one prompt naming the card", gotReq.Instances)
	}
	if gotReq.Parameters.SampleCount != 1 || gotReq.Parameters.AspectRatio != "3:4" {
		t.Errorf("parameters = %+v", gotReq.Parameters)
	}
}

func TestGenerateCardImage_NoPredictions(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"predictions":[]}`)
	})

	if _, err := client.GenerateCardImage(context.Background(), "The Star"); err == nil {
		t.Fatal("empty predictions must be rejected")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("empty api key must fail validation")
	}

	cfg.ApiKey = "key"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
