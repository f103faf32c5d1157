// Package flanks is the entry point for the Flanks banking-aggregation API
// client. It resolves credentials, owns the shared transport connection,
// and exposes one sub-client per API domain.
//
// Example usage:
//
//	client, err := flanks.New(flanks.Config{})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	entities, err := client.Entities.List(ctx)
//
// Credentials come from Config or, when absent, from the
// FLANKS_CLIENT_ID and FLANKS_CLIENT_SECRET environment variables.
package flanks
