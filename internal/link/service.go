package link

import (
	"context"
	"time"

	"gitlink/internal/domain"
	"gitlink/internal/forge"
	"gitlink/internal/logging"
	"gitlink/internal/model"
	"gitlink/internal/notify"
)

// Service generates a link and reports the outcome.
type Service struct {
	Gatherer  *Gatherer
	Resolver  *forge.Resolver
	Clipboard notify.Clipboard // nil leaves the clipboard alone
	Notifier  notify.Notifier
	OpenURL   notify.URLOpener // nil skips the browser
	Timeout   time.Duration    // bounds all git queries; zero means none
	Log       *logging.Logger
}

// Generate gathers, resolves and copies the link. It never notifies.
func (s *Service) Generate(ctx context.Context, ec model.EditorContext) (string, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	req, err := s.Gatherer.Gather(ctx, ec)
	if err != nil {
		return "", err
	}

	link, err := s.Resolver.Resolve(req)
	if err != nil {
		return "", err
	}

	if s.Clipboard != nil {
		if err := s.Clipboard.WriteAll(link); err != nil {
			return "", err
		}
	}
	return link, nil
}

// Run is Generate followed by exactly one notification.
func (s *Service) Run(ctx context.Context, ec model.EditorContext) (string, error) {
	log := s.log()

	link, err := s.Generate(ctx, ec)
	if err != nil {
		log.Debug().Err(err).Msg("link generation failed")
		s.Notifier.Error(domain.Message(err))
		return "", err
	}

	s.Notifier.Info(InfoMessage(link, s.Clipboard != nil))

	if s.OpenURL != nil {
		if err := s.OpenURL(link); err != nil {
			log.Warn().Err(err).Str("url", link).Msg("could not open browser")
		}
	}
	return link, nil
}

// InfoMessage is the success text for link.
func InfoMessage(link string, copied bool) string {
	if copied {
		return "Link copied to clipboard: " + link
	}
	return "Link: " + link
}

func (s *Service) log() *logging.Logger {
	if s.Log == nil {
		return logging.Nop()
	}
	return s.Log
}
