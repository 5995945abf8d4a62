package services

import "strings"

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText splits text on paragraph boundaries into chunks of at most
// maxChunkSize runes, carrying overlap runes from the tail of each chunk into
// the next so boundary context is not lost.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		chunks = append(chunks, current.String())
		tail := lastRunes(current.String(), overlap)
		current.Reset()
		if tail != "" {
			current.WriteString(tail)
			current.WriteString(" ")
		}
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		// Oversized paragraphs are split on hard boundaries.
		for len([]rune(para)) > maxChunkSize {
			runes := []rune(para)
			head := string(runes[:maxChunkSize])
			para = string(runes[maxChunkSize:])

			flush()
			current.WriteString(head)
			flush()
		}
		if para == "" {
			continue
		}

		if current.Len()+len(para)+2 > maxChunkSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}

	if strings.TrimSpace(current.String()) != "" {
		chunks = append(chunks, current.String())
	}

	return chunks
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
