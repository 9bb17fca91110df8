package notify

// TextNotifier is a minimal outbound text-message capability. It is
// intentionally small so components can depend on it without importing a
// concrete transport. Delivery is fire-and-forget from the caller's
// perspective: a failure never rolls back the operation that triggered the
// message.
type TextNotifier interface {
	SendText(text string) error
}

// Discard is a no-op notifier used when no transport is configured.
type Discard struct{}

func (Discard) SendText(string) error { return nil }
