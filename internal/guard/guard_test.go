package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ymgs-pharma/storefront/internal/guard"
	"github.com/ymgs-pharma/storefront/pkg/api"
	"github.com/ymgs-pharma/storefront/pkg/enums"
)

type fakeSession struct {
	authenticated bool
	profile       *api.UserProfile
}

func (f fakeSession) IsAuthenticated() bool     { return f.authenticated }
func (f fakeSession) Profile() *api.UserProfile { return f.profile }

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		sess fakeSession
		rule guard.Rule
		want guard.Decision
	}{
		{
			name: "anonymous goes to login",
			sess: fakeSession{},
			rule: guard.Rule{},
			want: guard.Decision{Verdict: guard.Redirect, Target: guard.PathLogin},
		},
		{
			name: "authenticated without profile goes to login",
			sess: fakeSession{authenticated: true},
			rule: guard.Rule{},
			want: guard.Decision{Verdict: guard.Redirect, Target: guard.PathLogin},
		},
		{
			name: "customer enters customer views",
			sess: fakeSession{authenticated: true, profile: &api.UserProfile{Role: enums.RoleCustomer}},
			rule: guard.Rule{},
			want: guard.Decision{Verdict: guard.Allow},
		},
		{
			name: "customer blocked from admin dashboard",
			sess: fakeSession{authenticated: true, profile: &api.UserProfile{Role: enums.RoleCustomer}},
			rule: guard.Rule{Role: enums.RoleAdmin},
			want: guard.Decision{Verdict: guard.Redirect, Target: guard.PathHome},
		},
		{
			name: "admin enters without onboarding profile",
			sess: fakeSession{authenticated: true, profile: &api.UserProfile{Role: enums.RoleAdmin}},
			rule: guard.Rule{Role: enums.RoleAdmin, RequiresProfile: true},
			want: guard.Decision{Verdict: guard.Allow},
		},
		{
			name: "pharmacist without pharmacy goes to registration",
			sess: fakeSession{authenticated: true, profile: &api.UserProfile{Role: enums.RolePharmacist}},
			rule: guard.Rule{Role: enums.RolePharmacist, RequiresProfile: true},
			want: guard.Decision{Verdict: guard.Redirect, Target: guard.PathPharmacyRegistration},
		},
		{
			name: "pharmacist with pharmacy enters",
			sess: fakeSession{authenticated: true, profile: &api.UserProfile{Role: enums.RolePharmacist, HasPharmacy: true}},
			rule: guard.Rule{Role: enums.RolePharmacist, RequiresProfile: true},
			want: guard.Decision{Verdict: guard.Allow},
		},
		{
			name: "delivery without profile goes to registration",
			sess: fakeSession{authenticated: true, profile: &api.UserProfile{Role: enums.RoleDelivery}},
			rule: guard.Rule{Role: enums.RoleDelivery, RequiresProfile: true},
			want: guard.Decision{Verdict: guard.Redirect, Target: guard.PathDeliveryRegistration},
		},
		{
			name: "delivery with profile enters",
			sess: fakeSession{authenticated: true, profile: &api.UserProfile{Role: enums.RoleDelivery, HasDeliveryProfile: true}},
			rule: guard.Rule{Role: enums.RoleDelivery, RequiresProfile: true},
			want: guard.Decision{Verdict: guard.Allow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, guard.Decide(tt.sess, tt.rule))
		})
	}
}

func TestAllowed(t *testing.T) {
	sess := fakeSession{authenticated: true, profile: &api.UserProfile{Role: enums.RoleCustomer}}
	assert.True(t, guard.Allowed(sess, guard.Rule{}))
	assert.False(t, guard.Allowed(sess, guard.Rule{Role: enums.RoleAdmin}))
	assert.False(t, guard.Allowed(nil, guard.Rule{}))
}
