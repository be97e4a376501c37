// Package nasa provides a client for the primary api.nasa.gov host: APOD,
// Mars rover photos and manifests, the NeoWs asteroid feed, InSight Mars
// weather, the TechTransfer catalogs, and EPIC Earth imagery.
//
// Every operation issues a single GET, sends only the parameters that were
// actually supplied, and classifies failures into the apierror taxonomy with
// messages specific enough to display directly. Optional filter values are
// passed through unvalidated; the upstream service is the source of truth and
// is trusted to answer BadRequest or NotFound.
//
// The client performs no caching, no deduplication and no retries. Rate-limit
// headers are surfaced through WithRateLimitObserver so the caller can record
// them; the client keeps no snapshot of its own.
//
//	client, err := nasa.NewClient(store.Key(), logger,
//		nasa.WithRateLimitObserver(store.RecordRateLimit))
//	if err != nil {
//		return err
//	}
//	apod, err := client.APOD(ctx, nasa.APODRequest{Date: "2024-03-05"})
package nasa
