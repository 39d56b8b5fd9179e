package events

import (
	"path"
	"testing"
)

// Every mutation handler invalidates by pattern, so the keys written by the
// month view must always fall under it.
func TestMonthCacheKeyMatchesInvalidationPattern(t *testing.T) {
	cases := []struct{ year, month int }{
		{2025, 6},
		{1970, 1},
		{3000, 12},
	}
	for _, tc := range cases {
		key := monthCacheKey(tc.year, tc.month)
		ok, err := path.Match(monthCachePattern, key)
		if err != nil {
			t.Fatalf("bad pattern %q: %v", monthCachePattern, err)
		}
		if !ok {
			t.Errorf("key %q does not match invalidation pattern %q", key, monthCachePattern)
		}
	}

	if monthCacheKey(2025, 6) != "events:month:2025:06" {
		t.Errorf("monthCacheKey(2025, 6) = %q", monthCacheKey(2025, 6))
	}
}
