package ports

// Notifier receives ephemeral, non-authoritative success notices. A Post must
// never block: the store calls it while holding its write lock.
type Notifier interface {
	Post(title, message, kind string)
}
