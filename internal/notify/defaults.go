package notify

// Built-in default templates, one per (trigger, recipient role) pair. Used
// whenever the corresponding configured template is blank.
const (
	DefaultHostAssetOverdue = `⚠️ Overdue Equipment Alert

{{equipmentName}} checked out by {{borrowerName}} for a campus move has been outstanding for {{duration}}.
Staff in charge: {{staffInCharge}}
Destination: {{location}}

{{companyName}} Front Desk — {{currentTime}}`

	DefaultBorrowerAssetOverdue = `Hi {{borrowerName}},

{{equipmentName}} has now been out for {{duration}}. Please return it to the front desk or confirm its arrival at {{location}}.

Thank you,
{{companyName}} Front Desk`

	DefaultHostKeyOverdue = `🔑 Overdue Key Alert

Key {{keyNumber}} borrowed by {{borrowerName}} at {{borrowedAt}} has not been returned.
Purpose: {{purpose}}

{{companyName}} Front Desk — {{currentTime}}`

	DefaultBorrowerKeyOverdue = `Hi {{borrowerName}},

Key {{keyNumber}} you borrowed at {{borrowedAt}} is still checked out. Keys must be returned before 6pm on the day they are borrowed.

Thank you,
{{companyName}} Front Desk`
)
