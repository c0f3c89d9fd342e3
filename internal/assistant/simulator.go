package assistant

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pharmacare/showcase/internal/model"
)

var (
	ErrEmptyQuery      = errors.New("empty query")
	ErrUnknownLanguage = errors.New("unknown assistant language")
)

// Source records how a query was produced.
type Source int

const (
	SourceTyped Source = iota
	SourceUpload
	SourceCamera
)

func (s Source) String() string {
	switch s {
	case SourceUpload:
		return "upload"
	case SourceCamera:
		return "camera"
	default:
		return "typed"
	}
}

// Query is one request to the assistant: either text or an image.
type Query struct {
	Text   string
	Image  []byte
	Source Source
}

// Response carries the assistant's reply.
type Response struct {
	Message model.ChatMessage
}

// Config tunes the simulated latency and reply language.
type Config struct {
	Language      string
	TypingDelay   time.Duration
	ThinkingDelay time.Duration
	ImageDelay    time.Duration
}

// DefaultConfig returns Kurdish replies with the stock 1s + 1.5s text delay
// and 2s image delay.
func DefaultConfig() Config {
	return Config{
		Language:      model.DefaultAssistantLanguage,
		TypingDelay:   model.DefaultAssistantTypingDelay,
		ThinkingDelay: model.DefaultAssistantThinkingDelay,
		ImageDelay:    model.DefaultAssistantImageDelay,
	}
}

// Simulator answers queries with canned replies after a fixed delay.
// It is safe for concurrent use.
type Simulator struct {
	cfg   Config
	set   replySet
	log   zerolog.Logger
	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulator validates cfg. Zero delays are kept as zero.
func NewSimulator(cfg Config, log zerolog.Logger) (*Simulator, error) {
	if cfg.Language == "" {
		cfg.Language = model.DefaultAssistantLanguage
	}
	cfg.Language = strings.ToLower(cfg.Language)
	set, ok := replies[cfg.Language]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, cfg.Language)
	}
	return &Simulator{
		cfg:   cfg,
		set:   set,
		log:   log,
		sleep: sleepCtx,
		now:   time.Now,
		rng:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
	}, nil
}

// Config returns the active configuration.
func (s *Simulator) Config() Config { return s.cfg }

// Delay is the total simulated latency for q.
func (s *Simulator) Delay(q Query) time.Duration {
	if len(q.Image) > 0 {
		return s.cfg.ImageDelay
	}
	return s.cfg.TypingDelay + s.cfg.ThinkingDelay
}

// SubmitQuery waits out the simulated latency and returns a reply. Images
// are validated first; a cancelled ctx aborts the wait.
func (s *Simulator) SubmitQuery(ctx context.Context, q Query) (Response, error) {
	isImage := len(q.Image) > 0
	if isImage {
		if _, err := ValidateImage(q.Image); err != nil {
			return Response{}, err
		}
	} else if strings.TrimSpace(q.Text) == "" {
		return Response{}, ErrEmptyQuery
	}

	start := s.now()
	if isImage {
		if err := s.sleep(ctx, s.cfg.ImageDelay); err != nil {
			return Response{}, err
		}
	} else {
		if err := s.sleep(ctx, s.cfg.TypingDelay); err != nil {
			return Response{}, err
		}
		if err := s.sleep(ctx, s.cfg.ThinkingDelay); err != nil {
			return Response{}, err
		}
	}

	text := s.set.image
	if !isImage {
		text = s.pick()
	}
	s.log.Debug().
		Str("source", q.Source.String()).
		Bool("image", isImage).
		Dur("latency", s.now().Sub(start)).
		Msg("Assistant replied")

	return Response{Message: NewMessage(SenderAssistant, text, false, s.now())}, nil
}

func (s *Simulator) pick() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.text[s.rng.IntN(len(s.set.text))]
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
