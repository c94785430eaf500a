package email

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/jhoicas/wholesetail-admin-api/internal/application/ports"
)

// templateData valores disponibles en las plantillas.
type templateData struct {
	Name   string
	Notes  string
	AppURL string
	Year   int
}

const approvedHTML = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; color: #333333;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #4CAF50; margin-bottom: 5px;">Account Verification Approved</h1>
    <div style="height: 3px; background-color: #4CAF50; width: 100px; margin: 0 auto;"></div>
  </div>
  <p style="font-size: 16px; line-height: 1.5;">Dear {{.Name}},</p>
  <p style="font-size: 16px; line-height: 1.5;">We are pleased to inform you that your account verification for Wholesetail has been <strong>successfully approved</strong>.</p>
  <p style="font-size: 16px; line-height: 1.5;">You now have full access to all features and services offered by our platform. You can log in to your account using the email and password you provided during registration.</p>
  <div style="background-color: #f9f9f9; border-left: 4px solid #4CAF50; padding: 15px; margin: 20px 0;">
    <p style="margin: 0; font-size: 16px;"><strong>Next Steps:</strong></p>
    <ul style="margin-top: 10px; padding-left: 20px;">
      <li style="margin-bottom: 8px;">Log in to your account</li>
      <li style="margin-bottom: 8px;">Complete your profile information</li>
      <li style="margin-bottom: 8px;">Explore our platform features</li>
      <li style="margin-bottom: 0;">Start using our services</li>
    </ul>
  </div>
  {{if .AppURL}}<div style="text-align: center; margin: 30px 0;">
    <a href="{{.AppURL}}/login" style="background-color: #4CAF50; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px; font-weight: bold; display: inline-block;">Log In To Your Account</a>
  </div>{{end}}
  <p style="font-size: 16px; line-height: 1.5;">If you have any questions or need assistance, please don't hesitate to contact our support team.</p>
  <p style="font-size: 16px; line-height: 1.5;">Sincerely,<br>The Wholesetail Team</p>
  <div style="margin-top: 40px; padding-top: 20px; border-top: 1px solid #eeeeee; text-align: center; color: #777777; font-size: 12px;">
    <p>This is an automated message, please do not reply to this email.</p>
    <p>&copy; {{.Year}} Wholesetail. All rights reserved.</p>
  </div>
</div>`

const rejectedHTML = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #F44336; text-align: center;">Verification Rejected</h1>
  <p>Hello {{.Name}},</p>
  <p>We regret to inform you that your account verification has been rejected. This could be due to one of the following reasons:</p>
  <ul>
    <li>Incomplete or incorrect documentation</li>
    <li>Unclear images of your documents</li>
    <li>Information mismatch between your application and documents</li>
  </ul>
  {{if .Notes}}<div style="background-color: #f8f9fa; padding: 15px; border-radius: 5px; margin: 15px 0;">
    <p style="margin: 0; font-weight: bold;">Reviewer Notes:</p>
    <p style="margin: 10px 0 0 0;">{{.Notes}}</p>
  </div>{{end}}
  <p>You can reapply with the correct information and clear document images.</p>
  <p>If you have any questions, please contact our support team.</p>
  <p>Best regards,<br>The Wholesetail Team</p>
</div>`

const pendingHTML = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #FFC107; text-align: center;">Verification Pending</h1>
  <p>Hello {{.Name}},</p>
  <p>Thank you for registering with Wholesetail. Your account is currently pending verification.</p>
  <p>Our team will review your application and documents within 1-2 business days.</p>
  <p>You will receive an email notification once your account has been verified.</p>
  <p>Best regards,<br>The Wholesetail Team</p>
</div>`

const fallbackHTML = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="text-align: center;">Wholesetail Notification</h1>
  <p>Hello {{.Name}},</p>
  <p>Thank you for using Wholesetail.</p>
  <p>Best regards,<br>The Wholesetail Team</p>
</div>`

var templates = map[ports.EmailTemplate]*template.Template{
	ports.TemplateVerificationApproved: template.Must(template.New("approved").Parse(approvedHTML)),
	ports.TemplateVerificationRejected: template.Must(template.New("rejected").Parse(rejectedHTML)),
	ports.TemplateVerificationPending:  template.Must(template.New("pending").Parse(pendingHTML)),
}

var fallback = template.Must(template.New("fallback").Parse(fallbackHTML))

// Render genera el HTML de la plantilla. Una plantilla desconocida usa el mensaje genérico.
// html/template escapa Name y Notes.
func Render(tpl ports.EmailTemplate, data ports.TemplateData, appURL string) (string, error) {
	t, ok := templates[tpl]
	if !ok {
		t = fallback
	}
	var buf strings.Builder
	err := t.Execute(&buf, templateData{
		Name:   data.Name,
		Notes:  data.Notes,
		AppURL: strings.TrimRight(appURL, "/"),
		Year:   time.Now().Year(),
	})
	if err != nil {
		return "", fmt.Errorf("render %s: %w", tpl, err)
	}
	return buf.String(), nil
}
