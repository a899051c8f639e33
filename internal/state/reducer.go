package state

// State is the application state.
type State struct {
	ActiveSection string
	DarkMode      bool
	// MobileMenuOpen is the expanded sidebar in narrow layouts.
	MobileMenuOpen bool
}

// Initial returns the starting state for the given theme preference.
func Initial(darkMode bool) State {
	return State{ActiveSection: HomeSection, DarkMode: darkMode}
}

// Action is a state transition. The set is closed to this package.
type Action interface {
	isAction()
}

// ToggleDarkMode flips the theme.
type ToggleDarkMode struct{}

// SetActiveSection navigates to Section. Unknown ids are ignored.
type SetActiveSection struct {
	Section string
}

// ToggleMobileMenu flips the sidebar.
type ToggleMobileMenu struct{}

// SetMobileMenu opens or closes the sidebar.
type SetMobileMenu struct {
	Open bool
}

func (ToggleDarkMode) isAction()   {}
func (SetActiveSection) isAction() {}
func (ToggleMobileMenu) isAction() {}
func (SetMobileMenu) isAction()    {}

// Reduce returns the state after applying a. It has no side effects.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case ToggleDarkMode:
		s.DarkMode = !s.DarkMode
	case SetActiveSection:
		if IsSection(a.Section) {
			s.ActiveSection = a.Section
		}
	case ToggleMobileMenu:
		s.MobileMenuOpen = !s.MobileMenuOpen
	case SetMobileMenu:
		s.MobileMenuOpen = a.Open
	}
	return s
}
