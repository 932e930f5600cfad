package utils

import "time"

// AvailabilityCachePrefix is the prefix used for availability cache keys.
const AvailabilityCachePrefix = "availability:"

// AvailabilityCacheTTL is the time-to-live for cached availability responses.
// Short on purpose: a stale entry may show a slot that was just taken, and the
// conflict guard is the authority anyway.
const AvailabilityCacheTTL = 30 * time.Second

// PreviewCachePrefix is the prefix used for price-preview cache keys.
const PreviewCachePrefix = "preview:"

// PreviewCacheTTL is the time-to-live for cached price previews.
const PreviewCacheTTL = 10 * time.Minute
