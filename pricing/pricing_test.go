package pricing

import (
	"testing"

	"milonga/models"
)

func testModule() models.Module {
	return models.Module{
		ModuleID:  "m1",
		Titulo:    "Tango",
		Subtitulo: "Nivel 1",
		PrecioARS: 15000,
		PrecioUSD: 15,
	}
}

func testVideos() []models.Video {
	videos := make([]models.Video, 4)
	for i := range videos {
		videos[i] = models.Video{
			ID:        "v" + string(rune('1'+i)),
			VideoID:   "play" + string(rune('1'+i)),
			ModuleID:  "m1",
			PrecioARS: 5000,
			PrecioUSD: 5,
		}
	}
	return videos
}

func completedPurchase(videoIDs ...string) models.VideoPurchase {
	return models.VideoPurchase{
		UserID:       "u1",
		PurchaseType: models.PurchaseTypeVideo,
		VideoIDs:     videoIDs,
		Status:       models.PurchaseStatusCompleted,
	}
}

func TestCalculateSampleScenario(t *testing.T) {
	// Four $5000 videos, module priced at $15000, user owns one video.
	b := Calculate(testModule(), testVideos(), []models.VideoPurchase{completedPurchase("play1")})

	if b.TotalSpentOnVideosARS != 5000 {
		t.Errorf("TotalSpentOnVideosARS = %v, want 5000", b.TotalSpentOnVideosARS)
	}
	if b.DiscountedPriceARS != 10000 {
		t.Errorf("DiscountedPriceARS = %v, want 10000", b.DiscountedPriceARS)
	}
	if b.UnpurchasedVideos != 3 {
		t.Errorf("UnpurchasedVideos = %v, want 3", b.UnpurchasedVideos)
	}
	if !b.CanPurchaseModule {
		t.Error("CanPurchaseModule = false, want true")
	}
	if b.HasFullAccess {
		t.Error("HasFullAccess = true, want false")
	}
	if b.DiscountedPrice != b.DiscountedPriceARS {
		t.Error("legacy discountedPrice must mirror ARS value")
	}
}

func TestCalculateDiscountMonotonicity(t *testing.T) {
	module := testModule()
	videos := testVideos()
	playbackIDs := []string{"play1", "play2", "play3", "play4"}

	prev := -1.0
	for k := 0; k <= len(playbackIDs); k++ {
		var purchases []models.VideoPurchase
		if k > 0 {
			purchases = []models.VideoPurchase{completedPurchase(playbackIDs[:k]...)}
		}
		b := Calculate(module, videos, purchases)
		if b.DiscountedPriceARS < 0 {
			t.Errorf("k=%d: discounted price went negative: %v", k, b.DiscountedPriceARS)
		}
		if prev >= 0 && b.DiscountedPriceARS > prev {
			t.Errorf("k=%d: discounted price increased from %v to %v", k, prev, b.DiscountedPriceARS)
		}
		prev = b.DiscountedPriceARS
	}
}

func TestCalculateAntiArbitrage(t *testing.T) {
	module := testModule()
	videos := testVideos()

	// Three of four owned: exactly one left, bundle purchase disallowed.
	b := Calculate(module, videos, []models.VideoPurchase{completedPurchase("play1", "play2", "play3")})
	if b.UnpurchasedVideos != 1 {
		t.Fatalf("UnpurchasedVideos = %d, want 1", b.UnpurchasedVideos)
	}
	if b.CanPurchaseModule {
		t.Error("CanPurchaseModule must be false with one video remaining")
	}

	// Two left: allowed.
	b = Calculate(module, videos, []models.VideoPurchase{completedPurchase("play1", "play2")})
	if !b.CanPurchaseModule {
		t.Error("CanPurchaseModule must be true with two videos remaining")
	}
}

func TestCalculateFullAccess(t *testing.T) {
	b := Calculate(testModule(), testVideos(), []models.VideoPurchase{
		completedPurchase("play1", "play2", "play3", "play4"),
	})
	if b.DiscountedPriceARS != 0 {
		t.Errorf("DiscountedPriceARS = %v, want 0", b.DiscountedPriceARS)
	}
	if !b.HasFullAccess {
		t.Error("HasFullAccess = false, want true")
	}
	if b.Message != "Ya tienes acceso completo al módulo por haber comprado todos los videos" {
		t.Errorf("unexpected message: %q", b.Message)
	}
}

func TestCalculateIgnoresIncompletePurchases(t *testing.T) {
	pending := completedPurchase("play1")
	pending.Status = models.PurchaseStatusPending

	b := Calculate(testModule(), testVideos(), []models.VideoPurchase{pending})
	if b.PurchasedVideos != 0 {
		t.Errorf("pending purchase counted: PurchasedVideos = %d", b.PurchasedVideos)
	}
	if b.Message != "Aún no has comprado ningún video de este módulo" {
		t.Errorf("unexpected message: %q", b.Message)
	}
}

func TestPriceFallbacks(t *testing.T) {
	if got := PriceARS(0, 8000); got != 8000 {
		t.Errorf("PriceARS fallback = %v, want 8000", got)
	}
	if got := PriceARS(9000, 8000); got != 9000 {
		t.Errorf("PriceARS explicit = %v, want 9000", got)
	}
	if got := PriceUSD(0, 8000); got != 8 {
		t.Errorf("PriceUSD fallback = %v, want 8", got)
	}
	if got := PriceUSD(12, 8000); got != 12 {
		t.Errorf("PriceUSD explicit = %v, want 12", got)
	}
}

func TestCalculateSavings(t *testing.T) {
	// Four videos at 5000 each vs a 15000 bundle: 5000 saved.
	b := Calculate(testModule(), testVideos(), nil)
	if b.SavingsARS != 5000 {
		t.Errorf("SavingsARS = %v, want 5000", b.SavingsARS)
	}
	if b.SavingsUSD != 5 {
		t.Errorf("SavingsUSD = %v, want 5", b.SavingsUSD)
	}
}
