package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-platform/internal/domain/course"
	"course-platform/internal/domain/entitlement"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func paidCourse() course.Course {
	return course.Course{ID: "c1", ContentType: course.ContentFixedCourse, ProductAccess: course.AccessPaid}
}

func TestHasAccessFreeCourseNeedsNoGrant(t *testing.T) {
	free := course.Course{ID: "c1", ProductAccess: course.AccessFree}
	assert.True(t, HasAccess(time.Now(), free, nil))
}

func TestHasAccessNoGrant(t *testing.T) {
	assert.False(t, HasAccess(time.Now(), paidCourse(), nil))
}

func TestHasAccessExpiryMonotonicity(t *testing.T) {
	expires := date(t, "2024-06-15T00:00:00Z")
	grant := &entitlement.Grant{ExpiresAt: &expires}

	assert.True(t, HasAccess(date(t, "2024-06-01T00:00:00Z"), paidCourse(), grant))
	assert.True(t, HasAccess(expires, paidCourse(), grant), "expiry instant itself still grants access")
	assert.False(t, HasAccess(date(t, "2024-06-16T00:00:00Z"), paidCourse(), grant))
}

func TestHasAccessUnlimitedWhenNoExpiry(t *testing.T) {
	grant := &entitlement.Grant{}
	assert.True(t, HasAccess(date(t, "2034-01-01T00:00:00Z"), paidCourse(), grant))
}

func TestHasAccessFreezeGatesEveryInstantInside(t *testing.T) {
	expires := date(t, "2024-12-31T00:00:00Z")
	start := date(t, "2024-06-03T00:00:00Z")
	end := date(t, "2024-06-09T00:00:00Z")
	grant := &entitlement.Grant{
		ExpiresAt: &expires,
		Freezes: entitlement.FreezeList{
			{ID: "f1", Start: start, End: end},
		},
	}

	for at := start; !at.After(end); at = at.Add(6 * time.Hour) {
		assert.False(t, HasAccess(at, paidCourse(), grant), "frozen at %s", at)
	}
	assert.True(t, HasAccess(start.Add(-time.Second), paidCourse(), grant))
	assert.True(t, HasAccess(end.Add(time.Second), paidCourse(), grant))
}
