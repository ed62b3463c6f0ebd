// Package surfcmp classifies pairs of planes and quadric surfaces, given as
// coefficient vectors, as the same entity, opposite orientations of one entity,
// or different entities.
//
// Planes are compared up to a nonzero scale factor. Surfaces are compared as
// given. Objects are only compared with objects of the same kind and
// coefficient count.
//
//	client, _ := surfcmp.New(surfcmp.WithWorkers(8))
//	defer client.Close()
//
//	matches, err := client.Compare(ctx, map[int64]surfcmp.Record{
//	    1: {Kind: "plane", Coefficients: []float64{1, 2, 3, 4}},
//	    2: {Kind: "plane", Coefficients: []float64{-2, -4, -6, -8}},
//	}, surfcmp.ModeDynamic)
//	// matches == map[int64]int64{2: -1}
//
// The result maps an id to partner_id * code, where code is +1 for Same and -1
// for Opposite. When an id matches several partners the pair that comes last in
// ascending (partner, id) order wins, planes before surfaces.
//
// Results can be cached in Valkey or Redis with WithCache.
package surfcmp
