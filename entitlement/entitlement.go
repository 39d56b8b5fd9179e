// Package entitlement answers "what content may this user watch" from the
// purchase ledger. Only completed purchases grant anything.
package entitlement

import (
	"milonga/models"
)

// HasVideoAccess reports whether any completed purchase unlocks videoID.
func HasVideoAccess(purchases []models.VideoPurchase, videoID string) bool {
	for _, p := range purchases {
		if p.Status != models.PurchaseStatusCompleted {
			continue
		}
		for _, vid := range p.VideoIDs {
			if vid == videoID {
				return true
			}
		}
	}
	return false
}

// HasModuleAccess reports whether the user bought the module as a whole.
// Owning every constituent video individually does not count; module-level
// access requires an explicit module-type purchase.
func HasModuleAccess(purchases []models.VideoPurchase, moduleID string) bool {
	for _, p := range purchases {
		if p.Status == models.PurchaseStatusCompleted &&
			p.PurchaseType == models.PurchaseTypeModule &&
			p.ModuleID == moduleID {
			return true
		}
	}
	return false
}

// AccessibleVideoIDs returns the de-duplicated union of video ids across all
// completed purchases, in first-seen order.
func AccessibleVideoIDs(purchases []models.VideoPurchase) []string {
	seen := make(map[string]bool)
	ids := []string{}
	for _, p := range purchases {
		if p.Status != models.PurchaseStatusCompleted {
			continue
		}
		for _, vid := range p.VideoIDs {
			if !seen[vid] {
				seen[vid] = true
				ids = append(ids, vid)
			}
		}
	}
	return ids
}

// AccessibleModuleIDs returns the distinct module ids tagged on completed
// purchases. Video purchases carrying a moduleId count too.
func AccessibleModuleIDs(purchases []models.VideoPurchase) []string {
	seen := make(map[string]bool)
	ids := []string{}
	for _, p := range purchases {
		if p.Status != models.PurchaseStatusCompleted || p.ModuleID == "" {
			continue
		}
		if !seen[p.ModuleID] {
			seen[p.ModuleID] = true
			ids = append(ids, p.ModuleID)
		}
	}
	return ids
}

// Summarize condenses a purchase history into the per-module access shape
// the account page renders.
func Summarize(purchases []models.VideoPurchase) models.PurchasesSummary {
	summary := models.PurchasesSummary{
		ModulesPurchased:  []string{},
		VideosByModule:    make(map[string][]string),
		TotalVideosAccess: []string{},
	}
	seenVideos := make(map[string]bool)
	for _, p := range purchases {
		if p.Status != models.PurchaseStatusCompleted {
			continue
		}
		if p.PurchaseType == models.PurchaseTypeModule {
			summary.ModulesPurchased = append(summary.ModulesPurchased, p.ModuleID)
		}
		for _, vid := range p.VideoIDs {
			if seenVideos[vid] {
				continue
			}
			seenVideos[vid] = true
			// Untagged purchases still grant playback but have no module
			// bucket to land in.
			if p.ModuleID != "" {
				summary.VideosByModule[p.ModuleID] = append(summary.VideosByModule[p.ModuleID], vid)
			}
			summary.TotalVideosAccess = append(summary.TotalVideosAccess, vid)
		}
	}
	return summary
}
