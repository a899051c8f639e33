// Package state holds the hub's navigation and theme state.
//
// State changes only through Reduce, a pure transition function over a
// closed set of actions. Store wraps the reducer and persists the dark mode
// preference to a kv.Store.
//
//	st, _ := state.NewStore(store, logger)
//	st.Dispatch(state.SetActiveSection{Section: "ai-assistant"})
//	st.Dispatch(state.ToggleDarkMode{})
package state
