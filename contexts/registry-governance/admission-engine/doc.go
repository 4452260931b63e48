// Package admissionengine implements the factory and vault admission tracks
// inside the registry-governance context.
//
// The module owns the deposit-backed admission lifecycle: fee-charged
// submissions, per-round support/oppose deposits, strict-majority
// finalization with a quorum floor, escalating challenges, the lame-duck
// grace period, downstream registration of survivors, and post-resolution
// deposit withdrawal. Business rules live in the application/domain layers;
// chain, storage, and transport concerns sit behind ports and adapters.
package admissionengine
