package entitlement

import (
	"reflect"
	"testing"

	"milonga/models"
)

func TestHasVideoAccess(t *testing.T) {
	purchases := []models.VideoPurchase{
		{Status: models.PurchaseStatusCompleted, PurchaseType: models.PurchaseTypeVideo, VideoIDs: []string{"play1"}},
		{Status: models.PurchaseStatusPending, PurchaseType: models.PurchaseTypeVideo, VideoIDs: []string{"play2"}},
	}

	if !HasVideoAccess(purchases, "play1") {
		t.Error("completed purchase must grant access")
	}
	if HasVideoAccess(purchases, "play2") {
		t.Error("pending purchase must not grant access")
	}
	if HasVideoAccess(purchases, "play3") {
		t.Error("unpurchased video must not grant access")
	}
}

func TestModuleAccessRequiresModulePurchase(t *testing.T) {
	// Owning every video of a module individually is not module access.
	allVideos := []models.VideoPurchase{
		{Status: models.PurchaseStatusCompleted, PurchaseType: models.PurchaseTypeVideo, ModuleID: "m1", VideoIDs: []string{"play1"}},
		{Status: models.PurchaseStatusCompleted, PurchaseType: models.PurchaseTypeVideo, ModuleID: "m1", VideoIDs: []string{"play2"}},
		{Status: models.PurchaseStatusCompleted, PurchaseType: models.PurchaseTypeVideo, ModuleID: "m1", VideoIDs: []string{"play3"}},
	}
	if HasModuleAccess(allVideos, "m1") {
		t.Error("individual video purchases must not grant module access")
	}

	modulePurchase := append(allVideos, models.VideoPurchase{
		Status:       models.PurchaseStatusCompleted,
		PurchaseType: models.PurchaseTypeModule,
		ModuleID:     "m1",
		VideoIDs:     []string{"play1", "play2", "play3"},
	})
	if !HasModuleAccess(modulePurchase, "m1") {
		t.Error("explicit module purchase must grant module access")
	}

	refunded := []models.VideoPurchase{
		{Status: models.PurchaseStatusRefunded, PurchaseType: models.PurchaseTypeModule, ModuleID: "m1"},
	}
	if HasModuleAccess(refunded, "m1") {
		t.Error("refunded module purchase must not grant access")
	}
}

func TestAccessibleVideoIDs(t *testing.T) {
	purchases := []models.VideoPurchase{
		{Status: models.PurchaseStatusCompleted, VideoIDs: []string{"play1", "play2"}},
		{Status: models.PurchaseStatusCompleted, VideoIDs: []string{"play2", "play3"}},
		{Status: models.PurchaseStatusFailed, VideoIDs: []string{"play9"}},
	}

	got := AccessibleVideoIDs(purchases)
	want := []string{"play1", "play2", "play3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AccessibleVideoIDs = %v, want %v", got, want)
	}
}

func TestAccessibleModuleIDs(t *testing.T) {
	purchases := []models.VideoPurchase{
		{Status: models.PurchaseStatusCompleted, PurchaseType: models.PurchaseTypeModule, ModuleID: "m1"},
		{Status: models.PurchaseStatusCompleted, PurchaseType: models.PurchaseTypeVideo, ModuleID: "m2", VideoIDs: []string{"play5"}},
		{Status: models.PurchaseStatusCompleted, PurchaseType: models.PurchaseTypeVideo, VideoIDs: []string{"play6"}},
		{Status: models.PurchaseStatusCompleted, PurchaseType: models.PurchaseTypeModule, ModuleID: "m1"},
	}

	got := AccessibleModuleIDs(purchases)
	want := []string{"m1", "m2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AccessibleModuleIDs = %v, want %v", got, want)
	}
}

func TestSummarize(t *testing.T) {
	purchases := []models.VideoPurchase{
		{Status: models.PurchaseStatusCompleted, PurchaseType: models.PurchaseTypeModule, ModuleID: "m1", VideoIDs: []string{"play1", "play2"}},
		{Status: models.PurchaseStatusCompleted, PurchaseType: models.PurchaseTypeVideo, ModuleID: "m2", VideoIDs: []string{"play3"}},
		{Status: models.PurchaseStatusPending, PurchaseType: models.PurchaseTypeVideo, ModuleID: "m2", VideoIDs: []string{"play4"}},
	}

	s := Summarize(purchases)
	if !reflect.DeepEqual(s.ModulesPurchased, []string{"m1"}) {
		t.Errorf("ModulesPurchased = %v, want [m1]", s.ModulesPurchased)
	}
	if !reflect.DeepEqual(s.VideosByModule["m1"], []string{"play1", "play2"}) {
		t.Errorf("VideosByModule[m1] = %v", s.VideosByModule["m1"])
	}
	if !reflect.DeepEqual(s.VideosByModule["m2"], []string{"play3"}) {
		t.Errorf("VideosByModule[m2] = %v", s.VideosByModule["m2"])
	}
	if len(s.TotalVideosAccess) != 3 {
		t.Errorf("TotalVideosAccess = %v, want 3 entries", s.TotalVideosAccess)
	}
}

func TestSummarizeSkipsUntaggedModuleBucket(t *testing.T) {
	purchases := []models.VideoPurchase{
		{Status: models.PurchaseStatusCompleted, PurchaseType: models.PurchaseTypeVideo, VideoIDs: []string{"play1"}},
		{Status: models.PurchaseStatusCompleted, PurchaseType: models.PurchaseTypeVideo, ModuleID: "m1", VideoIDs: []string{"play2"}},
	}

	s := Summarize(purchases)
	if _, ok := s.VideosByModule[""]; ok {
		t.Errorf("VideosByModule must not contain an empty module key: %v", s.VideosByModule)
	}
	if !reflect.DeepEqual(s.VideosByModule["m1"], []string{"play2"}) {
		t.Errorf("VideosByModule[m1] = %v", s.VideosByModule["m1"])
	}
	if !reflect.DeepEqual(s.TotalVideosAccess, []string{"play1", "play2"}) {
		t.Errorf("TotalVideosAccess = %v, untagged videos must still count", s.TotalVideosAccess)
	}
}
