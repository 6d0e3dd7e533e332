package server

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Dileep2896/visapath/internal/llm"
	"github.com/Dileep2896/visapath/internal/prompts"
	"github.com/Dileep2896/visapath/internal/rag"
	"github.com/Dileep2896/visapath/internal/types"
)

// retrieveSources embeds the query and returns the most similar stored
// chunks. Missing DB or embedding failures degrade to no sources rather
// than failing the chat.
func (s *Server) retrieveSources(ctx context.Context, query string) []string {
	if s.db == nil || s.llmClient == nil {
		return nil
	}

	queryVec, err := s.llmClient.Embed(ctx, query)
	if err != nil {
		s.logger.Warn("query embedding failed", zap.Error(err))
		return nil
	}

	chunks, err := s.db.AllChunks(ctx)
	if err != nil {
		s.logger.Warn("failed to load knowledge base chunks", zap.Error(err))
		return nil
	}

	scored := rag.TopK(queryVec, chunks, rag.DefaultTopK, rag.DefaultMinScore)
	sources := make([]string, 0, len(scored))
	for _, sc := range scored {
		sources = append(sources, sc.Chunk.Content)
	}
	return sources
}

// handleChat answers a question, grounded in the knowledge base when
// relevant chunks exist.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.llmClient == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Chat is not configured")
		return
	}

	if err := s.aiBudget.Check(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		s.errorResponse(w, http.StatusBadRequest, "Message is required")
		return
	}

	sources := s.retrieveSources(r.Context(), req.Message)

	prompt, err := prompts.Chat(req.Message, req.UserContext, sources)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	prompt = prompts.ChatSystem() + "\n\n" + prompt

	answer, err := s.llmClient.GenerateText(r.Context(), prompt)
	if err != nil {
		if llm.IsRateLimited(err) {
			s.aiBudget.MarkExhausted()
			s.observeAI("chat", "rate_limited")
			s.errorResponse(w, http.StatusTooManyRequests,
				"AI rate limit reached. Please wait and try again.")
			return
		}
		s.logger.Error("chat generation failed", zap.Error(err))
		s.observeAI("chat", "error")
		s.errorResponse(w, http.StatusBadGateway, "Failed to generate a response. Please try again.")
		return
	}
	s.aiBudget.Record()
	s.observeAI("chat", "ok")

	s.jsonResponse(w, http.StatusOK, types.ChatResponse{
		Response:   answer,
		HasSources: len(sources) > 0,
	})
}
