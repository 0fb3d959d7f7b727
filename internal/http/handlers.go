package http

// Handlers agrupa los handlers y el guard que monta NewRouter.
type Handlers struct {
	Guard    *SessionGuard
	Sessions *SessionHandler
	Teams    *TeamHandler
	Players  *PlayerHandler
	Games    *GameHandler
	Users    *UserHandler
}
