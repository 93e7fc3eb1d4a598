// JSON API handlers.

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/codepane/codepane/chat"
	"github.com/codepane/codepane/codeblock"
	"github.com/codepane/codepane/llm"
	"github.com/codepane/codepane/preview"
)

const maxRequestBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok"}
	if p := s.svc.Provider(); p != nil {
		resp["provider"] = p.Name()
		resp["model"] = p.Model()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, llm.Registry)
}

// configView is the redacted settings representation; the API key itself
// never leaves the process.
type configView struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	BaseURL  string `json:"base_url,omitempty"`
	HasKey   bool   `json:"has_key"`
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	settings := s.currentSettings()
	writeJSON(w, http.StatusOK, configView{
		Provider: settings.Provider.String(),
		Model:    settings.Model,
		BaseURL:  settings.BaseURL,
		HasKey:   settings.APIKey != "",
	})
}

type configRequest struct {
	Provider string            `json:"provider"`
	APIKey   string            `json:"api_key"`
	Model    string            `json:"model"`
	BaseURL  string            `json:"base_url"`
	Headers  map[string]string `json:"headers"`
}

// handlePutConfig swaps the active provider. The previous client is
// dropped; exactly one provider is instantiated at a time.
func (s *Server) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	var req configRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	providerType, err := llm.ParseProviderType(req.Provider)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	settings := s.currentSettings()
	settings.Provider = providerType
	settings.APIKey = req.APIKey
	settings.BaseURL = req.BaseURL
	settings.Headers = req.Headers
	settings.Model = req.Model
	if settings.Model == "" {
		settings.Model = providerType.DefaultModel()
	}

	if err := settings.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	provider, err := llm.New(settings.ProviderOptions())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.setSettings(settings)
	s.svc.SetProvider(provider)

	writeJSON(w, http.StatusOK, configView{
		Provider: settings.Provider.String(),
		Model:    settings.Model,
		BaseURL:  settings.BaseURL,
		HasKey:   true,
	})
}

// blockView augments a code block with its highlighted rendering for
// individual display.
type blockView struct {
	codeblock.CodeBlock
	Rendered string `json:"rendered"`
}

type messageView struct {
	chat.Message
	CodeBlocks []blockView `json:"code_blocks,omitempty"`
}

func toView(msg chat.Message) messageView {
	view := messageView{Message: msg}
	for _, block := range msg.CodeBlocks {
		view.CodeBlocks = append(view.CodeBlocks, blockView{
			CodeBlock: block,
			Rendered:  codeblock.Highlight(block),
		})
	}
	return view
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	messages := s.svc.Messages()
	views := make([]messageView, len(messages))
	for i, msg := range messages {
		views[i] = toView(msg)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"messages": views,
		"typing":   s.svc.Pending(),
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.svc.Clear()
	w.WriteHeader(http.StatusNoContent)
}

type chatRequest struct {
	Content string `json:"content"`
}

// handleChat runs one prompt through the pipeline. Configuration errors
// are 4xx; provider failures are not errors at this level, they come
// back as a synthetic assistant message with status 200.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	msg, err := s.svc.Send(r.Context(), req.Content)
	switch {
	case errors.Is(err, chat.ErrEmptyPrompt):
		writeError(w, http.StatusBadRequest, "prompt must not be empty")
	case errors.Is(err, chat.ErrNoProvider):
		writeError(w, http.StatusBadRequest, "no provider configured; set an API key first")
	case errors.Is(err, chat.ErrBusy):
		writeError(w, http.StatusConflict, "a request is already pending")
	case errors.Is(err, chat.ErrCleared):
		// The conversation was reset mid-flight; there is no reply to show.
		w.WriteHeader(http.StatusNoContent)
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, toView(msg))
	}
}

// handlePreview serves the composed document for the sandboxed iframe.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.svc.Preview()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Preview-Sandbox", preview.SandboxAttrs)
	_, _ = w.Write([]byte(doc))
}
