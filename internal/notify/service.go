package notify

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks RecordCreator,ChatPublisher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"deskwatch/internal/deskapi"
	"deskwatch/internal/overdue"
	"deskwatch/internal/platform/metrics"
	"deskwatch/pkg/platform/audit"
)

// Address used when no directory entry matches the borrower. The message is
// still logged so the host copy and the audit trail stay complete.
const fallbackRecipient = "unknown.recipient@frontdesk.local"

const timeLayout = "Mon, 02 Jan 2006 15:04"

// RecordCreator persists notification-log records on the kiosk data service.
type RecordCreator interface {
	CreateNotification(ctx context.Context, record deskapi.NotificationRecord) error
}

// ChatAlert is the payload mirrored to the ops chat channel.
type ChatAlert struct {
	Trigger  string `json:"trigger"`
	Kind     string `json:"kind"`
	LoanID   string `json:"loanId"`
	Borrower string `json:"borrower"`
	Message  string `json:"message"`
}

// ChatPublisher mirrors alerts to a chat channel. Publishing is best-effort
// and never affects the email path.
type ChatPublisher interface {
	Publish(ctx context.Context, alert ChatAlert) error
}

// Failure describes one notification that could not be persisted.
type Failure struct {
	LoanID string
	Role   string
	Err    error
}

// Result summarizes one dispatch pass.
type Result struct {
	Delivered int
	Failed    []Failure
}

// Clock supplies the current time, injected for testability.
type Clock func() time.Time

// Dispatcher turns violations into rendered notifications and persists one
// record per recipient role. Failures are isolated per record: a persist
// error is captured in the Result and the remaining violations still run.
type Dispatcher struct {
	records RecordCreator
	chat    ChatPublisher
	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor audit.Publisher
	clock   Clock
}

// Option configures the Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithChatPublisher enables the chat-channel mirror.
func WithChatPublisher(chat ChatPublisher) Option {
	return func(d *Dispatcher) {
		d.chat = chat
	}
}

// WithAuditPublisher enables the local audit trail.
func WithAuditPublisher(auditor audit.Publisher) Option {
	return func(d *Dispatcher) {
		d.auditor = auditor
	}
}

// WithClock sets the clock function for testability.
func WithClock(clock Clock) Option {
	return func(d *Dispatcher) {
		if clock != nil {
			d.clock = clock
		}
	}
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(records RecordCreator, opts ...Option) (*Dispatcher, error) {
	if records == nil {
		return nil, fmt.Errorf("record creator is required")
	}

	d := &Dispatcher{
		records: records,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Dispatch renders and persists two notifications per violation: the host
// copy first, then the borrower copy. Ordering within a violation is strict
// so the notification log reads host-then-borrower; violations themselves are
// independent of each other.
func (d *Dispatcher) Dispatch(ctx context.Context, settings *deskapi.Settings, hosts []deskapi.Host, violations []overdue.Violation) *Result {
	result := &Result{}

	for _, violation := range violations {
		borrowerEmail := resolveRecipient(hosts, violation)
		hostTmpl, borrowerTmpl := d.templates(settings, violation.Kind)
		fields := d.fields(settings, violation)

		deliveries := []struct {
			role      string
			recipient string
			message   string
		}{
			{deskapi.RoleHost, settings.Kiosk.SupportEmail, Render(hostTmpl, fields)},
			{deskapi.RoleBorrower, borrowerEmail, Render(borrowerTmpl, fields)},
		}

		for _, delivery := range deliveries {
			record := deskapi.NotificationRecord{
				Recipient: delivery.recipient,
				Sender:    settings.Kiosk.SenderEmail,
				Role:      delivery.role,
				Trigger:   deskapi.TriggerOverdueAlert,
				Message:   delivery.message,
				Channel:   deskapi.ChannelEmail,
				Timestamp: d.clock(),
				Status:    deskapi.StatusSent,
			}

			if err := d.records.CreateNotification(ctx, record); err != nil {
				result.Failed = append(result.Failed, Failure{
					LoanID: violation.LoanID(),
					Role:   delivery.role,
					Err:    err,
				})
				d.observeFailure(ctx, violation, delivery.role, delivery.recipient, err)
				continue
			}

			result.Delivered++
			d.observeDelivery(ctx, violation, delivery.role, delivery.recipient)
		}

		d.mirrorToChat(ctx, violation, fields)
	}

	return result
}

// templates resolves the configured-or-default template pair for a rule kind.
func (d *Dispatcher) templates(settings *deskapi.Settings, kind overdue.Kind) (host, borrower string) {
	if kind == overdue.KindAsset {
		return Resolve(settings.Templates.HostAssetOverdue, DefaultHostAssetOverdue),
			Resolve(settings.Templates.BorrowerAssetOverdue, DefaultBorrowerAssetOverdue)
	}
	return Resolve(settings.Templates.HostKeyOverdue, DefaultHostKeyOverdue),
		Resolve(settings.Templates.BorrowerKeyOverdue, DefaultBorrowerKeyOverdue)
}

func (d *Dispatcher) fields(settings *deskapi.Settings, violation overdue.Violation) map[string]string {
	now := d.clock()
	fields := map[string]string{
		"borrowerName": violation.BorrowerName(),
		"companyName":  settings.Kiosk.CompanyName,
		"currentTime":  now.Format(timeLayout),
	}

	switch violation.Kind {
	case overdue.KindAsset:
		fields["equipmentName"] = violation.Asset.EquipmentName
		fields["assetId"] = violation.Asset.ID
		fields["duration"] = violation.Duration()
		fields["staffInCharge"] = violation.Asset.StaffInCharge
		fields["location"] = violation.Asset.TargetLocation
	case overdue.KindKey:
		fields["keyNumber"] = violation.Key.KeyNumber
		fields["purpose"] = violation.Key.Purpose
		fields["borrowedAt"] = violation.Key.BorrowedAt.Format(timeLayout)
	}

	return fields
}

// resolveRecipient finds the borrower's email in the host directory by name,
// or for key loans also by borrower identifier. Inactive entries never match.
func resolveRecipient(hosts []deskapi.Host, violation overdue.Violation) string {
	name := violation.BorrowerName()
	borrowerID := ""
	if violation.Kind == overdue.KindKey {
		borrowerID = violation.Key.BorrowerID
	}

	for _, host := range hosts {
		if host.Status != deskapi.HostStatusActive {
			continue
		}
		if strings.EqualFold(host.FullName, name) || (borrowerID != "" && host.ID == borrowerID) {
			return host.Email
		}
	}
	return fallbackRecipient
}

func (d *Dispatcher) mirrorToChat(ctx context.Context, violation overdue.Violation, fields map[string]string) {
	if d.chat == nil {
		return
	}

	alert := ChatAlert{
		Trigger:  deskapi.TriggerOverdueAlert,
		Kind:     string(violation.Kind),
		LoanID:   violation.LoanID(),
		Borrower: violation.BorrowerName(),
		Message:  Render(DefaultHostAssetOverdue, fields),
	}
	if violation.Kind == overdue.KindKey {
		alert.Message = Render(DefaultHostKeyOverdue, fields)
	}

	if err := d.chat.Publish(ctx, alert); err != nil {
		if d.metrics != nil {
			d.metrics.ChatMirrorFailures.Inc()
		}
		if d.logger != nil {
			d.logger.WarnContext(ctx, "chat mirror failed", "loan_id", alert.LoanID, "error", err)
		}
	}
}

func (d *Dispatcher) observeDelivery(ctx context.Context, violation overdue.Violation, role, recipient string) {
	if d.metrics != nil {
		d.metrics.NotificationsSent.Inc()
	}
	if d.auditor != nil {
		d.auditor.Emit(ctx, audit.Event{
			Action:    audit.ActionNotificationSent,
			Subject:   violation.LoanID(),
			Recipient: recipient,
			Channel:   deskapi.ChannelEmail,
			Decision:  "sent",
		})
	}
	if d.logger != nil {
		d.logger.InfoContext(ctx, "overdue notification sent",
			"loan_id", violation.LoanID(),
			"kind", violation.Kind,
			"role", role,
			"recipient", recipient,
		)
	}
}

func (d *Dispatcher) observeFailure(ctx context.Context, violation overdue.Violation, role, recipient string, err error) {
	if d.metrics != nil {
		d.metrics.NotificationsFailed.Inc()
	}
	if d.auditor != nil {
		d.auditor.Emit(ctx, audit.Event{
			Action:    audit.ActionNotificationFailed,
			Subject:   violation.LoanID(),
			Recipient: recipient,
			Channel:   deskapi.ChannelEmail,
			Decision:  "failed",
			Reason:    err.Error(),
		})
	}
	if d.logger != nil {
		d.logger.ErrorContext(ctx, "overdue notification failed",
			"loan_id", violation.LoanID(),
			"kind", violation.Kind,
			"role", role,
			"recipient", recipient,
			"error", err,
		)
	}
}
