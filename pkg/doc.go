// Package pkg holds the foldserver libraries.
//
// # Overview
//
// foldserver runs the nuss3d RNA folding solver for submitted sequences and
// serves the result as an upper-triangular square matrix document,
// {"S": [[...]]}. The pkg directory is organized into three areas:
//
//  1. Domain: [normalize] turns solver text into matrices, [solver] runs the
//     solver process, [job] ties validation, workspaces, caching and
//     persistence into one fold operation.
//  2. Infrastructure: [cache] (file, Redis), [store] (file, MongoDB),
//     [config], [errors], [observability] and [httputil].
//  3. Surfaces: [api] serves the HTTP endpoints, [client] calls them.
//
// # Data flow
//
//	POST /api/v1/fold
//	         ↓
//	    [job] validate, write input.fasta, check cache
//	         ↓
//	    [solver] run nuss3d in the job directory
//	         ↓
//	    [normalize] pick the dominant block, build S
//	         ↓
//	    S.json + meta.json, cache entry
//
// [normalize]: github.com/nuss3d/foldserver/pkg/normalize
// [solver]: github.com/nuss3d/foldserver/pkg/solver
// [job]: github.com/nuss3d/foldserver/pkg/job
// [cache]: github.com/nuss3d/foldserver/pkg/cache
// [store]: github.com/nuss3d/foldserver/pkg/store
// [config]: github.com/nuss3d/foldserver/pkg/config
// [errors]: github.com/nuss3d/foldserver/pkg/errors
// [observability]: github.com/nuss3d/foldserver/pkg/observability
// [httputil]: github.com/nuss3d/foldserver/pkg/httputil
// [api]: github.com/nuss3d/foldserver/pkg/api
// [client]: github.com/nuss3d/foldserver/pkg/client
package pkg
