package mailer

import "github.com/rs/zerolog"

// LogMailer is the demo-mode delivery: instead of sending mail it writes
// the identifier and link to the operator-visible log and reports
// success. It never opens a network connection.
type LogMailer struct {
	log zerolog.Logger
}

var _ Mailer = (*LogMailer)(nil)

func NewLog(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) LoginEmail(to, loginURL string) error {
	m.log.Info().
		Str("email", to).
		Str("url", loginURL).
		Msg("magic link issued (demo mode, not emailed)")
	return nil
}
