package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"learnmate/internal/logger"
	"learnmate/internal/models"
)

// EmailSender is the part of the SES client the notifier uses
type EmailSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESNotifier emails milestones through Amazon SES
type SESNotifier struct {
	client     EmailSender
	fromEmail  string
	fromName   string
	appBaseURL string
	log        *logger.Logger
}

// NewSESNotifier loads the default AWS configuration for region
func NewSESNotifier(ctx context.Context, region, fromEmail, fromName, appBaseURL string, log *logger.Logger) (*SESNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewSESNotifierWithClient(sesv2.NewFromConfig(cfg), fromEmail, fromName, appBaseURL, log), nil
}

func NewSESNotifierWithClient(client EmailSender, fromEmail, fromName, appBaseURL string, log *logger.Logger) *SESNotifier {
	return &SESNotifier{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		log:        log.With("component", "ses"),
	}
}

func (n *SESNotifier) Welcome(ctx context.Context, account models.Account) error {
	subject := "Welcome to LearnMate!"
	text := fmt.Sprintf(`Hi %s,

Welcome to LearnMate! Pick your learning style, enter a topic, and we'll build a lesson around the way you learn best.

Start learning: %s

---
This is an automated email from LearnMate. Please do not reply.
`, account.Name, n.appBaseURL)
	html := fmt.Sprintf(`<p>Hi %s,</p>
<p>Welcome to LearnMate! Pick your learning style, enter a topic, and we'll build a lesson around the way you learn best.</p>
<p><a href="%s">Start learning</a></p>`, account.Name, n.appBaseURL)

	return n.send(ctx, account.Email, subject, html, text)
}

func (n *SESNotifier) LevelUp(ctx context.Context, account models.Account, level int) error {
	subject := fmt.Sprintf("You reached level %d!", level)
	text := fmt.Sprintf(`Hi %s,

Congratulations! You reached level %d with %d XP. Keep your %d-day streak going.

Continue learning: %s/dashboard
`, account.Name, level, account.XP, account.Streak, n.appBaseURL)
	html := fmt.Sprintf(`<p>Hi %s,</p>
<p>Congratulations! You reached <strong>level %d</strong> with %d XP. Keep your %d-day streak going.</p>
<p><a href="%s/dashboard">Continue learning</a></p>`, account.Name, level, account.XP, account.Streak, n.appBaseURL)

	return n.send(ctx, account.Email, subject, html, text)
}

func (n *SESNotifier) send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	from := n.fromEmail
	if n.fromName != "" {
		from = fmt.Sprintf("%s <%s>", n.fromName, n.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody), Charset: aws.String("UTF-8")},
					Text: &types.Content{Data: aws.String(textBody), Charset: aws.String("UTF-8")},
				},
			},
		},
	}

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	n.log.Info("email sent", "to", to, "subject", subject)
	return nil
}
