package utils

import "time"

// AuthCachePrefix is the prefix used for authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL bounds how long a hash refilled from the database stays
// cached.
const AuthCacheTTL = 10 * time.Minute
