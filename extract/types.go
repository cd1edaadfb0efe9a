package extract

import (
	"context"

	"github.com/tbxark/intentagent/types"
)

// Request asks for the arguments of Tool found in Text.
type Request struct {
	Tool types.ToolDescriptor
	Text string
}

// Extractor never reports "nothing found" as an error: that is a NoCall extraction.
type Extractor interface {
	Extract(ctx context.Context, req *Request) (*types.Extraction, error)
}

type ExtractorFunc func(ctx context.Context, req *Request) (*types.Extraction, error)

func (f ExtractorFunc) Extract(ctx context.Context, req *Request) (*types.Extraction, error) {
	return f(ctx, req)
}
