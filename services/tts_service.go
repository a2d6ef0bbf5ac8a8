package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/K-naman-T/techex-ai/models"
)

// TTSConfig carries provider credentials and the deployment default.
type TTSConfig struct {
	GoogleAPIKey     string
	ElevenLabsAPIKey string
	AzureKey         string
	AzureRegion      string
	DefaultProvider  string
}

// TTSService forwards text to a speech-synthesis vendor and returns the audio
// as base64, ready for the browser to decode into an AudioBuffer.
type TTSService interface {
	Synthesize(ctx context.Context, req models.TTSRequest) (*models.TTSResponse, error)
}

type ttsServiceImpl struct {
	httpClient *http.Client
	cfg        TTSConfig

	// Endpoints are fields so tests can point them at a local server.
	googleEndpoint     string
	elevenLabsEndpoint string
	azureEndpoint      string
}

// NewTTSService creates the TTS forwarder.
func NewTTSService(httpClient *http.Client, cfg TTSConfig) TTSService {
	if cfg.DefaultProvider == "" {
		cfg.DefaultProvider = "google"
	}
	return &ttsServiceImpl{
		httpClient:         httpClient,
		cfg:                cfg,
		googleEndpoint:     "https://texttospeech.googleapis.com/v1/text:synthesize",
		elevenLabsEndpoint: "https://api.elevenlabs.io/v1/text-to-speech",
		azureEndpoint:      fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", cfg.AzureRegion),
	}
}

func (s *ttsServiceImpl) Synthesize(ctx context.Context, req models.TTSRequest) (*models.TTSResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyMessage
	}

	provider := strings.ToLower(strings.TrimSpace(req.Provider))
	if provider == "" {
		provider = s.cfg.DefaultProvider
	}

	log.Printf("TTS: synthesizing %d chars via %s", len(req.Text), provider)

	var audio string
	var err error
	switch provider {
	case "google":
		audio, err = s.synthesizeGoogle(ctx, req)
	case "elevenlabs":
		audio, err = s.synthesizeElevenLabs(ctx, req)
	case "azure":
		audio, err = s.synthesizeAzure(ctx, req)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
	if err != nil {
		return nil, err
	}
	return &models.TTSResponse{AudioContent: audio, Provider: provider}, nil
}

// googleVoice picks a Neural2 voice for the requested language.
func googleVoice(req models.TTSRequest) (languageCode, name string) {
	if req.Language == LanguageHindi {
		languageCode, name = "hi-IN", "hi-IN-Neural2-A"
	} else {
		languageCode, name = "en-IN", "en-IN-Neural2-B"
	}
	if req.VoiceID != "" {
		name = req.VoiceID
	}
	return languageCode, name
}

func (s *ttsServiceImpl) synthesizeGoogle(ctx context.Context, req models.TTSRequest) (string, error) {
	if s.cfg.GoogleAPIKey == "" {
		return "", fmt.Errorf("%w: google tts", ErrMissingCredentials)
	}

	languageCode, voiceName := googleVoice(req)
	body, err := json.Marshal(map[string]any{
		"input":       map[string]string{"text": req.Text},
		"voice":       map[string]string{"languageCode": languageCode, "name": voiceName},
		"audioConfig": map[string]string{"audioEncoding": "MP3"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal google tts request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.googleEndpoint+"?key="+s.cfg.GoogleAPIKey, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create google tts request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: google tts: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", vendorError("google tts", resp)
	}

	var result struct {
		AudioContent string `json:"audioContent"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode google tts response: %w", err)
	}
	if result.AudioContent == "" {
		return "", fmt.Errorf("%w: google tts returned no audio content", ErrUpstreamRejected)
	}
	return result.AudioContent, nil
}

// defaultElevenLabsVoice is ElevenLabs' stock "Rachel" voice.
const defaultElevenLabsVoice = "21m00Tcm4TlvDq8ikWAM"

func (s *ttsServiceImpl) synthesizeElevenLabs(ctx context.Context, req models.TTSRequest) (string, error) {
	if s.cfg.ElevenLabsAPIKey == "" {
		return "", fmt.Errorf("%w: elevenlabs", ErrMissingCredentials)
	}

	voiceID := req.VoiceID
	if voiceID == "" {
		voiceID = defaultElevenLabsVoice
	}

	body, err := json.Marshal(map[string]any{
		"text":     req.Text,
		"model_id": "eleven_multilingual_v2",
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal elevenlabs request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.elevenLabsEndpoint+"/"+voiceID, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create elevenlabs request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", s.cfg.ElevenLabsAPIKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: elevenlabs: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", vendorError("elevenlabs", resp)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read elevenlabs audio: %w", err)
	}
	return base64.StdEncoding.EncodeToString(audio), nil
}

func azureVoice(req models.TTSRequest) (locale, name string) {
	if req.Language == LanguageHindi {
		locale, name = "hi-IN", "hi-IN-SwaraNeural"
	} else {
		locale, name = "en-US", "en-US-AndrewNeural"
	}
	if req.VoiceID != "" {
		name = req.VoiceID
	}
	return locale, name
}

func (s *ttsServiceImpl) synthesizeAzure(ctx context.Context, req models.TTSRequest) (string, error) {
	if s.cfg.AzureKey == "" {
		return "", fmt.Errorf("%w: azure speech", ErrMissingCredentials)
	}

	locale, voiceName := azureVoice(req)
	ssml := fmt.Sprintf(
		`<speak version='1.0' xml:lang='%s'><voice name='%s'>%s</voice></speak>`,
		locale, voiceName, escapeXML(req.Text))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.azureEndpoint, strings.NewReader(ssml))
	if err != nil {
		return "", fmt.Errorf("failed to create azure tts request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/ssml+xml")
	httpReq.Header.Set("Ocp-Apim-Subscription-Key", s.cfg.AzureKey)
	httpReq.Header.Set("X-Microsoft-OutputFormat", "audio-16khz-128kbitrate-mono-mp3")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: azure speech: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", vendorError("azure speech", resp)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read azure audio: %w", err)
	}
	return base64.StdEncoding.EncodeToString(audio), nil
}

func escapeXML(text string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(text)
}

func vendorError(vendor string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%w: %s returned status %d: %s",
		ErrUpstreamRejected, vendor, resp.StatusCode, strings.TrimSpace(string(body)))
}
