package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"referral-platform/internal/models"
)

func strPtr(s string) *string { return &s }

func TestForRole(t *testing.T) {
	assert.Equal(t, Scope{All: true}, ForRole("admin", "u-1"))
	assert.Equal(t, Scope{Business: "u-1"}, ForRole("business", "u-1"))
	assert.Equal(t, Scope{Referrer: "u-1"}, ForRole("referrer", "u-1"))
	assert.Equal(t, Scope{Referrer: "u-1"}, ForRole("", "u-1"), "unknown roles get the narrowest scope")
}

func TestScopeOwns(t *testing.T) {
	admin := ForRole("admin", "a-1")
	assert.True(t, admin.Owns(strPtr("anyone")))
	assert.True(t, admin.Owns(nil))

	referrer := ForRole("referrer", "r-1")
	assert.True(t, referrer.Owns(strPtr("r-1")))
	assert.False(t, referrer.Owns(strPtr("r-2")))
	assert.False(t, referrer.Owns(nil), "orphaned rows are invisible to non-admins")

	business := ForRole("business", "b-1")
	assert.True(t, business.Owns(strPtr("b-1")))
	assert.False(t, business.Owns(strPtr("r-1")))
}

func TestBucketStatuses(t *testing.T) {
	assert.Equal(t, []string{DisputePending, DisputeEscalated}, BucketStatuses(BucketPending))
	assert.Equal(t, []string{DisputeResolved}, BucketStatuses(BucketResolved))
	assert.Nil(t, BucketStatuses(BucketAll))
	assert.Nil(t, BucketStatuses("nonsense"))
}

func TestDisputeBucketExclusive(t *testing.T) {
	resolvedAt := time.Now()

	cases := []struct {
		name    string
		dispute models.Dispute
		want    string
	}{
		{"pending", models.Dispute{Status: DisputePending}, BucketPending},
		{"escalated", models.Dispute{Status: DisputeEscalated}, BucketPending},
		{"resolved", models.Dispute{Status: DisputeResolved, ResolvedAt: &resolvedAt}, BucketResolved},
		{"resolved timestamp wins over stale status", models.Dispute{Status: DisputePending, ResolvedAt: &resolvedAt}, BucketResolved},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DisputeBucket(tc.dispute))
		})
	}
}

func TestIsConversion(t *testing.T) {
	assert.True(t, IsConversion(LeadApproved))
	assert.True(t, IsConversion(LeadCompleted))
	assert.True(t, IsConversion("successful"))
	assert.False(t, IsConversion(LeadPending))
	assert.False(t, IsConversion(LeadRejected))
}
