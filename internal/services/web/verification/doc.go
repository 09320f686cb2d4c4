// Package verification runs token verification links and the deferred
// invitation acceptance that follows sign-in.
//
// A verification link lands on a Controller. The controller asks a Requester
// once, persists a verified invitation when there is one, and navigates to
// the next page. After the user authenticates, a Coordinator reads the
// pending invitation, accepts it, clears it and navigates into the
// organization.
//
// Transitions are computed by Step, a pure function over State and Event;
// the Controller only executes the effects Step returns.
package verification
