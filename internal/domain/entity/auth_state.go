package entity

// AuthStatus enumerates the process-wide authentication states.
type AuthStatus string

const (
	// AuthStatusLoading is the initial state and the state during any
	// in-flight auth operation.
	AuthStatusLoading AuthStatus = "loading"
	// AuthStatusAuthenticated means a valid session is held.
	AuthStatusAuthenticated AuthStatus = "authenticated"
	// AuthStatusUnauthenticated means no valid session is held.
	AuthStatusUnauthenticated AuthStatus = "unauthenticated"
	// AuthStatusError means the last auth operation failed; the state is
	// re-enterable by retrying the action.
	AuthStatusError AuthStatus = "error"
)

// AuthState is the single observable authentication state. Every transition
// is a full value replacement, never a partial mutation.
type AuthState struct {
	Status AuthStatus
	// Message carries a human-readable reason and is only set when
	// Status is AuthStatusError.
	Message string
}

// Loading returns the initial state.
func Loading() AuthState {
	return AuthState{Status: AuthStatusLoading}
}

// Authenticated returns the signed-in state.
func Authenticated() AuthState {
	return AuthState{Status: AuthStatusAuthenticated}
}

// Unauthenticated returns the signed-out state.
func Unauthenticated() AuthState {
	return AuthState{Status: AuthStatusUnauthenticated}
}

// ErrorState returns the failed state with a human-readable reason.
func ErrorState(message string) AuthState {
	return AuthState{Status: AuthStatusError, Message: message}
}
