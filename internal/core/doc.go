// Package core provides the data access and query layer for the Pokémon dataset.
//
// The package has no transport dependencies. It is used by the HTTP server,
// the CLI, and tests without modification.
//
// # Architecture
//
// Data flows one way through four stages:
//
//   - Row parsing: [ParseRow] turns an untyped CSV record into a typed [Row],
//     failing with a row- and column-indexed [DataLoadError].
//   - Mapping: [ToPokemon] resolves elemental types, damage multipliers,
//     boolean-like flags and abilities into a [Pokemon].
//   - Loading: [Loader] reads the whole file into an immutable [Dataset]
//     and caches it. Concurrent loads are coalesced and the cached
//     snapshot is swapped atomically.
//   - Querying: [List], [GetByID], [GetDetail] and the stat aggregates are
//     pure functions over a snapshot.
//
// [Repository] is the facade the outer layers call; [CSVRepository] implements it.
//
// # Usage
//
//	repo := core.NewCSVRepository("data/pokemon.csv", core.LoaderOptions{ValidateStats: true})
//	if err := repo.Init(ctx); err != nil {
//	    return err
//	}
//	page, err := repo.List(ctx, core.ListParams{Sort: "bst:desc", PageSize: 10})
//
// # Error Handling
//
// Load failures are *[DataLoadError] values wrapping a sentinel such as
// [ErrUnknownType] or [ErrIllegalMultiplier]. Lookups of absent ids return
// *[NotFoundError], which matches [ErrNotFound]. Boundary layers report
// unparseable parameters with [NewInvalidInput]. [MapError] turns any of
// these into a coded [UserMessage].
package core
