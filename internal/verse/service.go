package verse

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/askgrace/internal/domain"
	"github.com/MrSnakeDoc/askgrace/internal/logger"
)

// Passage is a looked-up verse ready for display.
type Passage struct {
	Reference string    `json:"reference"`
	Citation  *Citation `json:"-"`
	Text      string    `json:"text"`
}

// Lookup is what Service needs from the remote endpoint.
type Lookup interface {
	Fetch(ctx context.Context, ref string) (string, error)
}

// Service runs the verse pipeline: normalize, fetch, clean.
type Service struct {
	lookup Lookup
	logger logger.Logger
}

func NewService(lookup Lookup, log logger.Logger) *Service {
	return &Service{lookup: lookup, logger: log}
}

// Lookup resolves loose user input to a cleaned passage.
func (s *Service) Lookup(ctx context.Context, input string) (Passage, error) {
	ref, err := Normalize(input)
	if err != nil {
		s.logger.Debug("unparseable verse reference", logger.String("input", input))
		return Passage{}, err
	}

	cit, err := ParseCitation(ref)
	if err != nil {
		s.logger.Debug("rejected verse reference", logger.String("reference", ref), logger.Error(err))
		return Passage{}, domain.WrapError(domain.ErrInvalidReferenceFormat, domain.MsgInvalidReferenceFormat, err)
	}

	start := time.Now()
	raw, err := s.lookup.Fetch(ctx, ref)
	if err != nil {
		e := domain.AsError(err, domain.ErrVerseFetchFailed, domain.MsgVerseLoadFailed)
		s.logger.Error("verse lookup failed",
			logger.String("reference", ref),
			logger.String("kind", string(e.Kind)),
			logger.Error(err))
		return Passage{}, e
	}

	s.logger.Debug("verse fetched",
		logger.String("reference", ref),
		logger.Duration("elapsed", time.Since(start)))
	return Passage{Reference: ref, Citation: cit, Text: Clean(raw)}, nil
}

// GetVerseContent returns only the cleaned text for input.
func (s *Service) GetVerseContent(ctx context.Context, input string) (string, error) {
	p, err := s.Lookup(ctx, input)
	if err != nil {
		return "", err
	}
	return p.Text, nil
}
