package email

import (
	"fmt"

	sp "github.com/SparkPost/gosparkpost"
)

type Client struct {
	client         sp.Client
	supportAddress string
	noReplyAddress string
	siteName       string
	siteHost       string
	urlProtocol    string
}

func NewClient(apiKey, supportAddress, noReplyAddress, siteName, siteHost, urlProtocol string) (Client, error) {
	var client sp.Client
	err := client.Init(&sp.Config{
		BaseUrl:    "https://api.sparkpost.com",
		ApiKey:     apiKey,
		ApiVersion: 1,
	})
	if err != nil {
		return Client{}, err
	}
	return Client{
		client:         client,
		supportAddress: supportAddress,
		noReplyAddress: noReplyAddress,
		siteName:       siteName,
		siteHost:       siteHost,
		urlProtocol:    urlProtocol,
	}, nil
}

func (e Client) SupportSenderAddress() string {
	return e.supportAddress
}

func (e Client) NoReplySenderAddress() string {
	return e.noReplyAddress
}

func (e Client) sendHTMLEmail(to, subject, html string) error {
	tx := &sp.Transmission{
		Recipients: []string{to},
		Content: sp.Content{
			From:    e.noReplyAddress,
			Subject: subject,
			HTML:    html,
		},
	}
	_, _, err := e.client.Send(tx)
	return err
}

// SendJobManageLink mails the employer the link holding the manage token.
// The token is the only way to edit or remove the posting later.
func (e Client) SendJobManageLink(to, title, slug, token string) error {
	return e.sendHTMLEmail(
		to,
		fmt.Sprintf("Manage your %s job post on %s", title, e.siteName),
		fmt.Sprintf(
			`<p>Your job post <b>%s</b> is live.</p><p>Use this link to edit or remove it. Keep it private, anyone with the link can manage the post.</p><p><a href="%s%s/jobs/%s/manage?token=%s">%s%s/jobs/%s/manage</a></p>`,
			title, e.urlProtocol, e.siteHost, slug, token, e.urlProtocol, e.siteHost, slug,
		),
	)
}

func (e Client) SendInstallerManageLink(to, name, slug, token string) error {
	return e.sendHTMLEmail(
		to,
		fmt.Sprintf("Manage your installer profile on %s", e.siteName),
		fmt.Sprintf(
			`<p>Hi %s, your installer profile is live.</p><p>Use this link to edit or remove it. Keep it private, anyone with the link can manage the profile.</p><p><a href="%s%s/installers/%s/manage?token=%s">%s%s/installers/%s/manage</a></p>`,
			name, e.urlProtocol, e.siteHost, slug, token, e.urlProtocol, e.siteHost, slug,
		),
	)
}

func (e Client) SendApplicationNotification(to, applicantName, applicantEmail, jobTitle, message string) error {
	return e.sendHTMLEmail(
		to,
		fmt.Sprintf("New application for %s", jobTitle),
		fmt.Sprintf(
			`<p><b>%s</b> (%s) applied to your job post <b>%s</b>:</p><blockquote>%s</blockquote>`,
			applicantName, applicantEmail, jobTitle, message,
		),
	)
}

func (e Client) SendApplicationConfirmation(to, jobTitle string) error {
	return e.sendHTMLEmail(
		to,
		fmt.Sprintf("Your application for %s", jobTitle),
		fmt.Sprintf(
			`<p>Your application for <b>%s</b> was sent to the employer. They will contact you directly if interested.</p>`,
			jobTitle,
		),
	)
}
