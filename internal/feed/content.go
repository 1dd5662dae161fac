package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anonto42/fairnet/backend/internal/models"
)

// placeholderText renders for posts whose metadata carries no text under
// either schema generation.
const placeholderText = "No Text"

// postMeta is the post metadata object stored behind a content reference.
// Newer clients write the text under "description" (NFT metadata layout);
// records from the first schema generation used "content".
type postMeta struct {
	Description string `json:"description"`
	Content     string `json:"content"`
	Image       string `json:"image"`
}

// normalizeContent fetches a resolved content reference and shapes it into
// the canonical post body. The returned error disqualifies only the one post;
// the assembler logs and drops it.
func (s *Service) normalizeContent(ctx context.Context, ref string) (models.PostContent, error) {
	fctx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	defer cancel()
	data, err := s.store.Fetch(fctx, ref)
	if err != nil {
		return models.PostContent{}, err
	}

	var meta postMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return models.PostContent{}, fmt.Errorf("bad post metadata at %s: %w", ref, err)
	}

	text := meta.Description
	if text == "" {
		text = meta.Content
	}
	if text == "" {
		text = placeholderText
	}

	// Keep the content reachable. Best-effort: pinning failures never
	// affect the feed.
	_ = s.store.Pin(ctx, ref)
	if meta.Image != "" {
		_ = s.store.Pin(ctx, meta.Image)
	}

	return models.PostContent{Text: text, ImageRef: meta.Image}, nil
}
