package notify

// FallbackRecipientForTest exposes fallbackRecipient to external tests.
const FallbackRecipientForTest = fallbackRecipient
