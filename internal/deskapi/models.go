package deskapi

import "time"

// Asset loan statuses as the kiosk backend reports them. A loan is
// outstanding while its status is anything other than on-site.
const (
	AssetStatusOffSite   = "off-site"
	AssetStatusInTransit = "in-transit"
	AssetStatusOnSite    = "on-site"
)

// Key loan statuses. A key loan is outstanding while its status is out.
const (
	KeyStatusOut      = "out"
	KeyStatusIn       = "in"
	KeyStatusReturned = "returned"
)

// Host directory statuses.
const (
	HostStatusActive   = "active"
	HostStatusInactive = "inactive"
)

// AssetLoan is one equipment checkout record.
type AssetLoan struct {
	ID              string     `json:"id"`
	EquipmentName   string     `json:"equipmentName"`
	BorrowerName    string     `json:"borrowerName"`
	BorrowerContact string     `json:"borrowerContact"`
	StaffInCharge   string     `json:"staffInCharge"`
	Reason          string     `json:"reason"`
	TargetLocation  string     `json:"targetLocation"`
	Status          string     `json:"status"`
	CheckedOutAt    time.Time  `json:"checkedOutAt"`
	ReturnedAt      *time.Time `json:"returnedAt,omitempty"`

	// LastOverdueNotifiedAt exists on the backend record but the monitor
	// never reads or writes it: every scan re-notifies standing violations.
	LastOverdueNotifiedAt *time.Time `json:"lastOverdueNotificationTime,omitempty"`
}

// Outstanding reports whether the asset has not yet arrived on-site.
func (l AssetLoan) Outstanding() bool {
	return l.Status != AssetStatusOnSite
}

// KeyLoan is one key checkout record.
type KeyLoan struct {
	ID           string     `json:"id"`
	KeyNumber    string     `json:"keyNumber"`
	BorrowerID   string     `json:"borrowerId"`
	BorrowerName string     `json:"borrowerName"`
	Purpose      string     `json:"purpose"`
	Status       string     `json:"status"`
	BorrowedAt   time.Time  `json:"borrowedAt"`
	ReturnedAt   *time.Time `json:"returnedAt,omitempty"`

	LastOverdueNotifiedAt *time.Time `json:"lastOverdueNotificationTime,omitempty"`
}

// Outstanding reports whether the key is still checked out.
func (l KeyLoan) Outstanding() bool {
	return l.Status == KeyStatusOut
}

// Host is a directory entry used for recipient resolution only.
type Host struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Status   string `json:"status"`
}

// Settings is the global kiosk configuration consumed by the monitor.
type Settings struct {
	NotificationsEnabled bool                  `json:"notificationsEnabled"`
	Kiosk                KioskSettings         `json:"kiosk"`
	Templates            NotificationTemplates `json:"templates"`
}

// KioskSettings carries sender and branding strings.
type KioskSettings struct {
	SenderEmail  string `json:"senderEmail"`
	SupportEmail string `json:"supportEmail"`
	CompanyName  string `json:"companyName"`
}

// NotificationTemplates holds the configured message templates, keyed by
// (trigger, recipient role). Blank entries fall back to built-in defaults.
type NotificationTemplates struct {
	HostAssetOverdue     string `json:"hostAssetOverdueTemplate"`
	BorrowerAssetOverdue string `json:"borrowerAssetOverdueTemplate"`
	HostKeyOverdue       string `json:"hostKeyOverdueTemplate"`
	BorrowerKeyOverdue   string `json:"borrowerKeyOverdueTemplate"`
}

// Notification delivery metadata.
const (
	RoleHost     = "host"
	RoleBorrower = "borrower"

	ChannelEmail = "email"
	ChannelChat  = "chat"

	StatusSent   = "Sent"
	StatusFailed = "Failed"

	TriggerOverdueAlert = "Overdue Alert"
)

// NotificationRecord is one append-only audit entry per dispatched message.
type NotificationRecord struct {
	Recipient string    `json:"recipient"`
	Sender    string    `json:"sender"`
	Role      string    `json:"role"`
	Trigger   string    `json:"trigger"`
	Message   string    `json:"message"`
	Channel   string    `json:"channel"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}
