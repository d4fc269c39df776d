// Package contact models the contact form and its confirm-before-send
// modal, and builds the mailto link handed to the mail client.
package contact

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrNotConfirming = errors.New("contact: no message awaiting confirmation")
	ErrNoRecipient   = errors.New("contact: no recipient")
)

type State int

const (
	Editing State = iota
	Confirming
)

func (s State) String() string {
	if s == Confirming {
		return "confirming"
	}
	return "editing"
}

type Fields struct {
	Name    string
	Email   string
	Message string
}

// Form is the contact form plus its modal. Submitting only opens the
// modal; nothing is sent until Confirm.
type Form struct {
	Recipient string
	Subject   string
	Fields    Fields

	state State
	sent  []string
}

func NewForm(recipient, subject string) *Form {
	return &Form{Recipient: recipient, Subject: subject}
}

func (f *Form) State() State { return f.state }

// Submit opens the confirm modal.
func (f *Form) Submit() { f.state = Confirming }

// Cancel closes the modal and keeps the fields.
func (f *Form) Cancel() { f.state = Editing }

// ClickOutside closes the modal the same way Cancel does.
func (f *Form) ClickOutside() { f.Cancel() }

// Confirm builds the mailto link, clears the form and closes the modal.
func (f *Form) Confirm() (string, error) {
	if f.state != Confirming {
		return "", ErrNotConfirming
	}
	link, err := Mailto(f.Recipient, f.Subject, f.Fields)
	if err != nil {
		return "", err
	}
	f.sent = append(f.sent, link)
	f.Fields = Fields{}
	f.state = Editing
	return link, nil
}

// Sent lists the links produced so far.
func (f *Form) Sent() []string { return append([]string(nil), f.sent...) }

func Body(fl Fields) string {
	return fmt.Sprintf("Hello, I'm %s\nYou can reach me at %s\n\nI'm reaching out regarding:\n%s",
		fl.Name, fl.Email, fl.Message)
}

// Mailto returns mailto:<recipient>?subject=<subject>: <name>&body=<body>
// with both query values percent-encoded.
func Mailto(recipient, subject string, fl Fields) (string, error) {
	if strings.TrimSpace(recipient) == "" {
		return "", ErrNoRecipient
	}
	if subject == "" {
		subject = "Portfolio Contact"
	}
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		recipient,
		EncodeComponent(subject+": "+fl.Name),
		EncodeComponent(Body(fl))), nil
}

var unreserved = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s the way browsers encode a URI
// component: spaces become %20 and !'()* stay literal.
func EncodeComponent(s string) string {
	return unreserved.Replace(url.QueryEscape(s))
}
