package preference

import (
	"context"

	"github.com/georgemunganga/fellbacher-shop/internal/modules/storage"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Language is a UI language code.
type Language string

const (
	German  Language = "de"
	English Language = "en"

	DefaultLanguage = German
)

// ErrUnsupportedLanguage is returned for a language other than de or en.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Service stores the selected language per session.
type Service interface {
	Language(ctx context.Context, sid string) (Language, error)
	SetLanguage(ctx context.Context, sid string, lang Language) (Language, error)
}

type service struct {
	languages *storage.Collection[Language]
}

// NewService creates a preference service persisting under "language:<sid>".
func NewService(store storage.Store, logger log.FieldLogger) Service {
	return &service{languages: storage.NewCollection[Language](store, "language", logger)}
}

func (s *service) Language(ctx context.Context, sid string) (Language, error) {
	lang, err := s.languages.Get(ctx, sid)
	if err != nil {
		return "", err
	}
	if lang == "" {
		return DefaultLanguage, nil
	}
	return lang, nil
}

func (s *service) SetLanguage(ctx context.Context, sid string, lang Language) (Language, error) {
	if lang != German && lang != English {
		return "", errors.Wrapf(ErrUnsupportedLanguage, "%q", lang)
	}
	return s.languages.Update(ctx, sid, func(Language) (Language, error) { return lang, nil })
}
