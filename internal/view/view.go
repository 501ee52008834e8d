// Package view renders the application's HTML pages. The pages are
// small form-driven templates compiled once at startup and served
// through Echo's Renderer interface.
package view

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// Renderer implements echo.Renderer over a parsed template set.
type Renderer struct {
	templates *template.Template
}

// New parses the built-in page templates. Parsing happens once; a bad
// template is a programming error and panics at startup.
func New() *Renderer {
	return &Renderer{templates: template.Must(template.New("pages").Parse(pages))}
}

// Render writes the named template with the given data.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// pages holds every page template. The markup is deliberately minimal:
// plain forms posting urlencoded bodies, no assets.
const pages = `
{{define "layout_head"}}<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>{{end}}

{{define "layout_foot"}}</body>
</html>{{end}}

{{define "index"}}{{template "layout_head" .}}
<p>Welcome. <a href="/register">Register</a> or <a href="/login">log in</a>.</p>
{{template "layout_foot" .}}{{end}}

{{define "register"}}{{template "layout_head" .}}
<form method="POST" action="/register">
  <input name="username" placeholder="Username" required>
  <input name="email" type="email" placeholder="Email" required>
  <input name="phoneNumber" placeholder="Phone number" required>
  <input name="password" type="password" placeholder="Password" required>
  <button type="submit">Register</button>
</form>
<p><a href="/login">Already have an account?</a></p>
{{template "layout_foot" .}}{{end}}

{{define "login"}}{{template "layout_head" .}}
<form method="POST" action="/login">
  <input name="email" type="email" placeholder="Email" required>
  <input name="password" type="password" placeholder="Password" required>
  <button type="submit">Log in</button>
</form>
<p><a href="/forgot-password">Forgot password?</a></p>
{{template "layout_foot" .}}{{end}}

{{define "forgot-password"}}{{template "layout_head" .}}
<form method="POST" action="/forgot-password">
  <input name="email" type="email" placeholder="Email" required>
  <button type="submit">Send reset link</button>
</form>
{{template "layout_foot" .}}{{end}}

{{define "reset-password"}}{{template "layout_head" .}}
<form method="POST" action="/reset-password">
  <input type="hidden" name="token" value="{{.Token}}">
  <input name="password" type="password" placeholder="New password" required>
  <input name="confirmPassword" type="password" placeholder="Confirm password" required>
  <button type="submit">Reset password</button>
</form>
{{template "layout_foot" .}}{{end}}

{{define "dashboard"}}{{template "layout_head" .}}
{{if .Flash}}<p class="flash">{{.Flash}}</p>{{end}}
<p>Hello, {{.Username}}.</p>
<p>Balance: {{printf "%.2f" .Balance}}</p>
<p><a href="/logout">Log out</a></p>
{{template "layout_foot" .}}{{end}}
`
