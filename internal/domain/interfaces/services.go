package interfaces

// LoginGate is the local, network-free check run before any data load.
type LoginGate interface {
	IsLoggedIn() bool
}
