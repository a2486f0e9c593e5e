package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rankreel/rankreel/internal/models"
)

const (
	defaultFreeAPIURL = "https://api.deepgram.com/v1/speak"
	defaultFreeVoice  = "aura-asteria-en"

	// Free-tier speak requests are capped, so longer scripts are chunked at
	// sentence boundaries and the chunk audio is concatenated in order.
	freeChunkLimit = 1800
)

// synthesizeFree renders text through the free-tier remote service. Any
// call or parse failure aborts the whole request; the router degrades it to
// mock rather than retrying chunk by chunk.
func (e *Engine) synthesizeFree(ctx context.Context, text, outputDir string) (models.SynthesisResult, error) {
	voice := e.cfg.Voice
	if voice == "" {
		voice = defaultFreeVoice
	}
	url := e.cfg.FreeAPIURL
	if url == "" {
		url = defaultFreeAPIURL
	}
	url += "?model=" + voice

	chunks := splitIntoChunks(text, freeChunkLimit)
	if len(chunks) == 0 {
		return models.SynthesisResult{}, fmt.Errorf("empty narration text")
	}

	chunkFiles := make([]string, 0, len(chunks))
	defer func() {
		for _, f := range chunkFiles {
			os.Remove(f)
		}
	}()

	for i, chunk := range chunks {
		audio, err := e.speakRequest(ctx, url, chunk)
		if err != nil {
			return models.SynthesisResult{}, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		chunkPath := filepath.Join(outputDir, fmt.Sprintf("tts_chunk_%03d.mp3", i))
		if err := os.WriteFile(chunkPath, audio, 0644); err != nil {
			return models.SynthesisResult{}, fmt.Errorf("write chunk %d: %w", i, err)
		}
		chunkFiles = append(chunkFiles, chunkPath)
	}

	outputPath := filepath.Join(outputDir, "narration.mp3")
	if len(chunkFiles) == 1 {
		if err := os.Rename(chunkFiles[0], outputPath); err != nil {
			return models.SynthesisResult{}, fmt.Errorf("move chunk: %w", err)
		}
		chunkFiles = nil
	} else if err := e.tool.ConcatAudio(ctx, chunkFiles, outputPath); err != nil {
		return models.SynthesisResult{}, err
	}

	return models.SynthesisResult{
		AudioPath: outputPath,
		Duration:  models.EstimateSpeechSeconds(len(strings.Fields(text))),
		Backend:   models.BackendFree,
	}, nil
}

func (e *Engine) speakRequest(ctx context.Context, url, text string) ([]byte, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+e.cfg.FreeAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("speak api status %d: %s", resp.StatusCode, strings.TrimSpace(string(rb)))
	}
	return io.ReadAll(resp.Body)
}

// splitIntoChunks breaks text into pieces no longer than limit, preferring
// sentence boundaries and falling back to word boundaries for any single
// sentence that exceeds the limit on its own.
func splitIntoChunks(text string, limit int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	for _, sentence := range splitSentences(text) {
		if len(sentence) > limit {
			if current.Len() > 0 {
				chunks = append(chunks, strings.TrimSpace(current.String()))
				current.Reset()
			}
			chunks = append(chunks, splitWords(sentence, limit)...)
			continue
		}
		if current.Len()+len(sentence)+1 > limit {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(sentence)
	}
	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}
	return chunks
}

func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			end := i + 1
			for end < len(text) && (text[end] == '.' || text[end] == '!' || text[end] == '?') {
				end++
			}
			if s := strings.TrimSpace(text[start:end]); s != "" {
				sentences = append(sentences, s)
			}
			start = end
			i = end - 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func splitWords(sentence string, limit int) []string {
	var chunks []string
	var current strings.Builder
	for _, word := range strings.Fields(sentence) {
		if current.Len()+len(word)+1 > limit && current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
