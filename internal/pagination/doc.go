// Package pagination provides the pure page arithmetic shared by every list in the console.
//
// This package contains:
//   - Paginate / TotalPages: slicing a filtered collection into fixed-size pages
//   - PageWindow: the compact page selector (numbers plus ellipsis markers)
//   - Meta: response metadata for paginated results
//   - Params: CLI flag parsing and validation for --page and --page-size
//
// Nothing here clamps or mutates; callers (see internal/liststate) own the
// current-page invariants so these helpers stay reusable outside the UI.
package pagination
