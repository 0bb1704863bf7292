package entity

// FederatedOutcome enumerates the possible results of a native federated
// sign-in flow. The flow itself runs outside this core; only its result is
// consumed here.
type FederatedOutcome string

const (
	// FederatedSuccess means the provider token was already exchanged for a
	// backend session by the external flow.
	FederatedSuccess FederatedOutcome = "success"
	// FederatedError means the flow failed for a non-network reason.
	FederatedError FederatedOutcome = "error"
	// FederatedNetworkError means the flow failed due to connectivity.
	FederatedNetworkError FederatedOutcome = "network_error"
	// FederatedCancelled means the user dismissed the native sign-in UI.
	FederatedCancelled FederatedOutcome = "cancelled_by_user"
)

// FederatedResult is the tagged result handed over by the external federated
// sign-in collaborator. Session is set only for FederatedSuccess; Message is
// set only for the two failure outcomes.
type FederatedResult struct {
	Outcome FederatedOutcome
	Session *Session
	Message string
}
