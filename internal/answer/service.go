package answer

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/askgrace/internal/domain"
	"github.com/MrSnakeDoc/askgrace/internal/logger"
	"github.com/MrSnakeDoc/askgrace/internal/response"
)

// Completer submits one question and returns the model's raw text.
type Completer interface {
	Submit(ctx context.Context, question string) (string, error)
}

// Service runs the answer pipeline:
// completion -> extraction -> validation -> citation resolution.
type Service struct {
	completer Completer
	extractor *response.Extractor
	validator *response.Validator
	resolver  *domain.Resolver
	logger    logger.Logger
}

func NewService(
	completer Completer,
	extractor *response.Extractor,
	validator *response.Validator,
	resolver *domain.Resolver,
	log logger.Logger,
) *Service {
	return &Service{
		completer: completer,
		extractor: extractor,
		validator: validator,
		resolver:  resolver,
		logger:    log,
	}
}

// GetAnswer asks question and returns a validated answer whose references
// all point into the curated catalog.
//
// Every failure comes back as a *domain.Error carrying a display message.
// A model refusal keeps the model's own words as that message.
func (s *Service) GetAnswer(ctx context.Context, question string) (domain.Answer, error) {
	start := time.Now()

	ans, err := s.answer(ctx, question)
	if err != nil {
		e := domain.AsError(err, domain.ErrCompletionFailed, domain.MsgCompletionFailed)
		s.logger.Error("answer pipeline failed",
			logger.String("kind", string(e.Kind)),
			logger.Strings("issues", e.Issues),
			logger.Duration("elapsed", time.Since(start)),
			logger.Error(err))
		return domain.Answer{}, e
	}

	s.logger.Info("answer ready",
		logger.Int("references", len(ans.References)),
		logger.Duration("elapsed", time.Since(start)))
	return ans, nil
}

func (s *Service) answer(ctx context.Context, question string) (domain.Answer, error) {
	raw, err := s.completer.Submit(ctx, question)
	if err != nil {
		return domain.Answer{}, err
	}

	value, err := s.extractor.Decode(raw)
	if err != nil {
		return domain.Answer{}, err
	}

	v, err := s.validator.Validate(value)
	if err != nil {
		return domain.Answer{}, err
	}
	if v.Repaired {
		s.logger.Info("dropped invalid references from response", logger.Strings("issues", v.Issues))
	}

	kept, dropped := s.resolver.Resolve(v.Answer.References)
	for _, ref := range dropped {
		s.logger.Debug("dropped unresolvable reference",
			logger.String("type", string(ref.Kind)),
			logger.String("title", ref.Title),
			logger.String("link", ref.Link))
	}
	if len(kept) == 0 {
		return domain.Answer{}, domain.NewError(domain.ErrIncompleteAnswer, domain.MsgIncompleteAnswer)
	}

	return domain.Answer{Text: v.Answer.Text, References: kept}, nil
}
