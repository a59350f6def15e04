package dashboard

type View string

const (
	// Entry is the sign-in view.
	Entry View = "entry"
	// Protected is the dashboard itself.
	Protected View = "protected"
)

// Resolve returns the view to show for a request of view and whether that
// differs from the request, in which case the caller redirects.
func Resolve(view View, authenticated bool) (View, bool) {
	switch {
	case view == Protected && !authenticated:
		return Entry, true
	case view == Entry && authenticated:
		return Protected, true
	}
	return view, false
}
