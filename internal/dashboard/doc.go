// Package dashboard assembles the protected view.
//
// Controller.Load fetches the profile, experience and progress data
// concurrently and turns each into a section view. Sections fail
// independently: a section that could not be loaded carries its own error
// and the rest stay intact. The one exception is an authentication
// failure, which Load returns so the caller can drop the session.
//
// Resolve is the navigation contract shared by the web server and the
// terminal client.
package dashboard
