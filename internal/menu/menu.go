// Package menu implements the interactive terminal client. Each role gets
// its own loop; the shared Menu handles login and dispatch.
package menu

import (
	"context"
	"os"

	"covid-booking/internal/session"
	"covid-booking/internal/usecase"

	"go.uber.org/zap"
)

type Menu struct {
	service *usecase.Service
	view    *View
	log     *zap.Logger
}

func New(service *usecase.Service, log *zap.Logger) *Menu {
	return &Menu{
		service: service,
		view:    NewView(os.Stdin, os.Stdout),
		log:     log.With(zap.String("component", "menu")),
	}
}

// Run loops login -> role menu until the user quits at the login prompt.
func (m *Menu) Run(ctx context.Context) {
	m.view.Say("COVID Testing Registration System")

	for {
		m.view.Say("")
		userName := m.view.Prompt("Username (blank to quit)")
		if userName == "" {
			m.view.Say("Goodbye.")
			return
		}
		password := m.view.Prompt("Password")

		sess, err := m.service.User.Login(ctx, &usecase.LoginInput{
			UserName: userName,
			Password: password,
		})
		if err != nil {
			m.view.ShowError(err)
			continue
		}

		m.view.Say("Welcome, %s.", sess.User.FullName())
		m.runFor(ctx, sess)
	}
}

func (m *Menu) runFor(ctx context.Context, sess *session.Session) {
	switch {
	case sess.User.IsCustomer:
		m.patientMenu(ctx, sess)
	case sess.User.IsReceptionist:
		m.receptionistMenu(ctx, sess)
	case sess.User.IsHealthcareWorker:
		m.workerMenu(ctx, sess)
	default:
		m.view.Say("No menu available for this account.")
		m.log.Warn("User has no usable role", zap.String("user_id", sess.UserID()))
	}
}
