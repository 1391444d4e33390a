// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package mailer

import (
	"bytes"
	"html/template"
	"strings"

	"hostwise/internal/models"
)

var adminTmpl = template.Must(template.New("admin").Parse(`<!DOCTYPE html>
<html><body style="font-family:sans-serif;color:#1f2937">
<h2>New consulting request</h2>
<table cellpadding="6">
<tr><td><b>Company</b></td><td>{{.CompanyName}}</td></tr>
{{if .CompanyType}}<tr><td><b>Type</b></td><td>{{.CompanyType}}</td></tr>{{end}}
<tr><td><b>Location</b></td><td>{{.Location}}</td></tr>
<tr><td><b>Scale</b></td><td>{{.Scale}}</td></tr>
<tr><td><b>Contact</b></td><td>{{.ContactName}} / {{.ContactPhone}} / {{.ContactEmail}}</td></tr>
<tr><td><b>Services</b></td><td>{{.Services}}</td></tr>
{{if .CurrentChallenges}}<tr><td><b>Challenges</b></td><td>{{.CurrentChallenges}}</td></tr>{{end}}
{{if .DesiredOutcomes}}<tr><td><b>Outcomes</b></td><td>{{.DesiredOutcomes}}</td></tr>{{end}}
{{if .Message}}<tr><td><b>Message</b></td><td>{{.Message}}</td></tr>{{end}}
<tr><td><b>Submitted</b></td><td>{{.SubmittedAt}}</td></tr>
</table>
<p>Request ID: {{.RequestID}}</p>
</body></html>`))

var clientTmpl = template.Must(template.New("client").Parse(`<!DOCTYPE html>
<html><body style="font-family:sans-serif;color:#1f2937">
<h2>Thank you, {{.ContactName}}.</h2>
<p>We received your consulting request for <b>{{.CompanyName}}</b> and will
be in touch within two business days.</p>
<p>Requested services: {{.Services}}</p>
<p>Reference: {{.RequestID}}</p>
</body></html>`))

// templateData flattens a request for the email templates.
type templateData struct {
	CompanyName       string
	CompanyType       string
	Location          string
	Scale             string
	ContactName       string
	ContactPhone      string
	ContactEmail      string
	Services          string
	CurrentChallenges string
	DesiredOutcomes   string
	Message           string
	SubmittedAt       string
	RequestID         string
}

func dataFor(req *models.ServiceRequest) templateData {
	d := templateData{
		CompanyName:  req.CompanyName,
		Location:     req.Location,
		Scale:        req.Scale,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Services:     strings.Join(req.Services, ", "),
		SubmittedAt:  req.CreatedAt.Format("2006-01-02 15:04"),
		RequestID:    req.ID.String(),
	}
	if req.CompanyType != nil {
		d.CompanyType = *req.CompanyType
	}
	if req.CurrentChallenges != nil {
		d.CurrentChallenges = *req.CurrentChallenges
	}
	if req.DesiredOutcomes != nil {
		d.DesiredOutcomes = *req.DesiredOutcomes
	}
	if req.Message != nil {
		d.Message = *req.Message
	}
	return d
}

func renderAdminNotification(req *models.ServiceRequest) (string, error) {
	var buf bytes.Buffer
	if err := adminTmpl.Execute(&buf, dataFor(req)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderClientConfirmation(req *models.ServiceRequest) (string, error) {
	var buf bytes.Buffer
	if err := clientTmpl.Execute(&buf, dataFor(req)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
