// Package profilesdk is the Go client SDK for the readspace profiles
// service.
//
// # Overview
//
// The SDK has three layers:
//
//   - Client: unauthenticated operations (signup, login, health).
//   - Session: authenticated operations carrying a bearer token
//     (me, profile CRUD, switch, documents).
//   - Synchronizer: the client-resident session synchronizer. It decides
//     which profile a device should act as, reconciling the local pointer,
//     the server-persisted default pointer, and the profile list, and it
//     keeps working (degraded) when the backend is unreachable.
//
// # Quick start
//
//	client := profilesdk.NewClient("https://profiles.example.com")
//	session, err := client.Login(ctx, "alice@example.com", "s3cret")
//	if err != nil { ... }
//
//	sync, err := profilesdk.NewSynchronizer(session, profilesdk.SynchronizerOptions{
//		StateDir: cfgDir,
//	})
//	if err != nil { ... }
//
//	profile, err := sync.Resolve(ctx)
//	// profile.Transient reports a degraded, never-persisted placeholder.
//
// # Error handling
//
// All API failures surface as *APIError with a stable machine-readable
// Code. Backend unreachability during Resolve is not an error: the
// synchronizer degrades to a transient profile instead.
package profilesdk
