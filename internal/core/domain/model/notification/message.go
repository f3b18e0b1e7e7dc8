package notification

import (
	"errors"
	"fmt"
	"time"

	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/pkg/errs"
)

var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage or RestoreMessage")

// Kind selects the template a message is rendered with.
type Kind string

const (
	OrderConfirmation  Kind = "order_confirmation"
	StatusUpdate       Kind = "status_update"
	DeliveryAssignment Kind = "delivery_assignment"
)

func (k Kind) Validate() error {
	switch k {
	case OrderConfirmation, StatusUpdate, DeliveryAssignment:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("unknown message kind %q", string(k)))
	}
}

// State is where a message is in the outbox.
type State string

const (
	Pending State = "pending"
	Sent    State = "sent"
	Failed  State = "failed"
)

// MaxAttempts is how many times sending is tried before a message is given up on.
const MaxAttempts = 3

// Message is an email waiting in, or already sent from, the notification outbox.
type Message struct {
	id        kernel.UUID
	kind      Kind
	toName    string
	toEmail   string
	subject   string
	data      map[string]string
	state     State
	attempts  int
	lastError string
	createdAt time.Time
	sentAt    *time.Time

	isConstructed bool
}

func NewMessage(kind Kind, toName, toEmail, subject string, data map[string]string, now time.Time) (*Message, error) {
	return RestoreMessage(MessageState{
		ID:        kernel.NewUUID(),
		Kind:      kind,
		ToName:    toName,
		ToEmail:   toEmail,
		Subject:   subject,
		Data:      data,
		State:     Pending,
		CreatedAt: now,
	})
}

// MessageState is the persisted form of a Message.
type MessageState struct {
	ID        kernel.UUID
	Kind      Kind
	ToName    string
	ToEmail   string
	Subject   string
	Data      map[string]string
	State     State
	Attempts  int
	LastError string
	CreatedAt time.Time
	SentAt    *time.Time
}

func RestoreMessage(s MessageState) (*Message, error) {
	var emailErr error
	if s.ToEmail == "" {
		emailErr = errs.NewValueIsRequiredError("to_email")
	}
	if err := errors.Join(s.ID.Validate(), s.Kind.Validate(), emailErr); err != nil {
		return nil, err
	}

	data := make(map[string]string, len(s.Data))
	for k, v := range s.Data {
		data[k] = v
	}

	return &Message{
		id:            s.ID,
		kind:          s.Kind,
		toName:        s.ToName,
		toEmail:       s.ToEmail,
		subject:       s.Subject,
		data:          data,
		state:         s.State,
		attempts:      s.Attempts,
		lastError:     s.LastError,
		createdAt:     s.CreatedAt,
		sentAt:        s.SentAt,
		isConstructed: true,
	}, nil
}

func (m *Message) ID() kernel.UUID      { return m.id }
func (m *Message) Kind() Kind           { return m.kind }
func (m *Message) ToName() string       { return m.toName }
func (m *Message) ToEmail() string      { return m.toEmail }
func (m *Message) Subject() string      { return m.subject }
func (m *Message) State() State         { return m.state }
func (m *Message) Attempts() int        { return m.attempts }
func (m *Message) LastError() string    { return m.lastError }
func (m *Message) CreatedAt() time.Time { return m.createdAt }
func (m *Message) SentAt() *time.Time   { return m.sentAt }

// Data returns a copy of the template values.
func (m *Message) Data() map[string]string {
	out := make(map[string]string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}

func (m *Message) MarkSent(at time.Time) {
	m.state = Sent
	m.attempts++
	m.lastError = ""
	m.sentAt = &at
}

// MarkAttemptFailed records a failed send. After MaxAttempts the message is failed for good.
func (m *Message) MarkAttemptFailed(cause error) {
	m.attempts++
	if cause != nil {
		m.lastError = cause.Error()
	}
	if m.attempts >= MaxAttempts {
		m.state = Failed
	}
}

func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}
