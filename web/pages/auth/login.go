package auth

import (
	"html"

	"konvyshop/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// LoginPage is the sign-in form proxied to the shop back-end.
type LoginPage struct {
	shared.Page
	Error    string
	Username string // prefilled after a failed attempt
}

// NewLoginPage returns an empty login page.
func NewLoginPage() LoginPage {
	return LoginPage{Page: shared.Page{Title: "Login - Konvy"}}
}

// Render generates the HTML for the login page
func (p LoginPage) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		p.Head(b),
		p.renderBody(b),
	)

	return "<!DOCTYPE html>" + b.String()
}

func (p LoginPage) renderBody(b *element.Builder) any {
	return b.Body().R(
		b.DivClass("auth-container").R(
			b.DivClass("auth-card").R(
				b.DivClass("auth-logo").R(
					b.H1().T("KONVY"),
				),
				b.H2Class("auth-title").T("Sign in to your account"),

				renderError(b, p.Error),

				credentialsForm{
					Action:       "/login",
					Username:     p.Username,
					Submit:       "Sign In",
					PasswordHint: "current-password",
				}.render(b),

				b.DivClass("auth-footer").R(
					b.Span().T("Don't have an account? "),
					b.A("href", "/register").T("Create one"),
					b.Br(),
					b.A("href", "/").T("Continue as guest"),
				),
			),
		),
	)
}

func renderError(b *element.Builder, msg string) any {
	if msg == "" {
		// Empty div needs R() termination
		return b.Div("class", "auth-error hidden", "id", "error-message").R()
	}
	return b.Div("class", "auth-error error", "id", "error-message").T(html.EscapeString(msg))
}

// credentialsForm is the username/password form shared by login and register.
type credentialsForm struct {
	Action       string
	Username     string
	Submit       string
	PasswordHint string
}

func (f credentialsForm) render(b *element.Builder) any {
	return b.Form("class", "auth-form", "method", "post", "action", f.Action).R(
		b.DivClass("form-group").R(
			b.LabelClass("form-label", "for", "username").T("Username"),
			b.Input("type", "text", "class", "form-input", "id", "username",
				"name", "username", "required", "required", "autocomplete", "username",
				"placeholder", "Enter your username", "value", html.EscapeString(f.Username)),
		),
		b.DivClass("form-group").R(
			b.LabelClass("form-label", "for", "password").T("Password"),
			b.Input("type", "password", "class", "form-input", "id", "password",
				"name", "password", "required", "required", "autocomplete", f.PasswordHint,
				"placeholder", "Enter your password"),
		),
		b.Button("type", "submit", "class", "auth-submit", "id", "submit-btn").T(f.Submit),
	)
}
