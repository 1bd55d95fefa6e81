package auth

import (
	"konvyshop/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// RegisterPage creates a back-end account.
type RegisterPage struct {
	shared.Page
	Error    string
	Username string
}

func NewRegisterPage() RegisterPage {
	return RegisterPage{Page: shared.Page{Title: "Register - Konvy"}}
}

// Render generates the HTML for the registration page
func (p RegisterPage) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		p.Head(b),
		b.Body().R(
			b.DivClass("auth-container").R(
				b.DivClass("auth-card").R(
					b.DivClass("auth-logo").R(
						b.H1().T("KONVY"),
					),
					b.H2Class("auth-title").T("Create your account"),
					renderError(b, p.Error),
					credentialsForm{
						Action:       "/register",
						Username:     p.Username,
						Submit:       "Create Account",
						PasswordHint: "new-password",
					}.render(b),
					b.DivClass("auth-footer").R(
						b.Span().T("Already have an account? "),
						b.A("href", "/login").T("Sign in"),
					),
				),
			),
		),
	)

	return "<!DOCTYPE html>" + b.String()
}
