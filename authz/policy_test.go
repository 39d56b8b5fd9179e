package authz

import "testing"

func TestAllow(t *testing.T) {
	tests := []struct {
		name     string
		roles    []string
		action   Action
		resource string
		want     bool
	}{
		{"anonymous reads events", nil, ActionRead, ResourceEvents, true},
		{"anonymous reads catalog", nil, ActionRead, ResourceCatalog, true},
		{"anonymous cannot read notices", nil, ActionRead, ResourceNotices, false},
		{"user reads notices", []string{"user"}, ActionRead, ResourceNotices, true},
		{"user reads purchases", []string{"user"}, ActionRead, ResourcePurchases, true},
		{"user cannot write events", []string{"user"}, ActionWrite, ResourceEvents, false},
		{"user cannot manage notices", []string{"user"}, ActionManage, ResourceNotices, false},
		{"admin writes events", []string{"admin"}, ActionWrite, ResourceEvents, true},
		{"superadmin manages catalog", []string{"superadmin"}, ActionManage, ResourceCatalog, true},
		{"legacy admingranted writes", []string{"user", "admingranted"}, ActionWrite, ResourceCatalog, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allow(tt.roles, tt.action, tt.resource); got != tt.want {
				t.Errorf("Allow(%v, %s, %s) = %v, want %v", tt.roles, tt.action, tt.resource, got, tt.want)
			}
		})
	}
}

func TestIsAdmin(t *testing.T) {
	if IsAdmin([]string{"user"}) {
		t.Error("plain user must not be admin")
	}
	if !IsAdmin([]string{"user", "admin"}) {
		t.Error("admin role must grant admin")
	}
	if !IsAdmin([]string{"admingranted"}) {
		t.Error("legacy admingranted must grant admin")
	}
}
