// Package pricing computes the discounted bundle price for a module, giving
// credit for the module videos a user has already bought individually.
package pricing

import (
	"fmt"

	"milonga/models"
)

// FallbackUSDDivisor converts the legacy single price into a USD figure when
// no explicit precioUSD exists. The constant predates this codebase and does
// not track a real exchange rate; keep it in one place.
const FallbackUSDDivisor = 1000

// PriceARS resolves an ARS price, falling back to the legacy single price.
func PriceARS(precioARS, precio float64) float64 {
	if precioARS != 0 {
		return precioARS
	}
	return precio
}

// PriceUSD resolves a USD price, falling back to legacy price / 1000.
func PriceUSD(precioUSD, precio float64) float64 {
	if precioUSD != 0 {
		return precioUSD
	}
	return precio / FallbackUSDDivisor
}

// PurchasedVideoRef is the slim video shape echoed back in a quote.
type PurchasedVideoRef struct {
	ID        string  `json:"id"`
	VideoID   string  `json:"videoId"`
	Titulo    string  `json:"titulo"`
	Precio    float64 `json:"precio"`
	PrecioARS float64 `json:"precioARS"`
	PrecioUSD float64 `json:"precioUSD"`
}

// Breakdown is the full price quote for one module and one user. The
// single-currency fields mirror the ARS values for older clients.
type Breakdown struct {
	ModuleID   string `json:"moduleId"`
	ModuleName string `json:"moduleName"`

	OriginalPrice      float64 `json:"originalPrice"`
	DiscountedPrice    float64 `json:"discountedPrice"`
	TotalSpentOnVideos float64 `json:"totalSpentOnVideos"`
	Savings            float64 `json:"savings"`

	OriginalPriceARS        float64 `json:"originalPriceARS"`
	OriginalPriceUSD        float64 `json:"originalPriceUSD"`
	DiscountedPriceARS      float64 `json:"discountedPriceARS"`
	DiscountedPriceUSD      float64 `json:"discountedPriceUSD"`
	TotalIndividualPriceARS float64 `json:"totalIndividualPriceARS"`
	TotalIndividualPriceUSD float64 `json:"totalIndividualPriceUSD"`
	TotalSpentOnVideosARS   float64 `json:"totalSpentOnVideosARS"`
	TotalSpentOnVideosUSD   float64 `json:"totalSpentOnVideosUSD"`
	SavingsARS              float64 `json:"savingsARS"`
	SavingsUSD              float64 `json:"savingsUSD"`

	VideosInModule      int                 `json:"videosInModule"`
	PurchasedVideos     int                 `json:"purchasedVideos"`
	UnpurchasedVideos   int                 `json:"unpurchasedVideos"`
	PurchasedVideosList []PurchasedVideoRef `json:"purchasedVideosList"`

	HasFullAccess     bool   `json:"hasFullAccess"`
	CanPurchaseModule bool   `json:"canPurchaseModule"`
	Message           string `json:"message"`
}

// Calculate builds the quote from the module, its active videos, and the
// user's completed purchases. Purchases match against the video's playback
// id, which is what purchase records store.
func Calculate(module models.Module, moduleVideos []models.Video, purchases []models.VideoPurchase) Breakdown {
	owned := make(map[string]bool)
	for _, p := range purchases {
		if p.Status != models.PurchaseStatusCompleted {
			continue
		}
		for _, vid := range p.VideoIDs {
			owned[vid] = true
		}
	}

	var purchased []models.Video
	for _, v := range moduleVideos {
		if owned[v.VideoID] {
			purchased = append(purchased, v)
		}
	}
	unpurchasedCount := len(moduleVideos) - len(purchased)

	var totalIndividualARS, totalIndividualUSD float64
	for _, v := range moduleVideos {
		totalIndividualARS += PriceARS(v.PrecioARS, v.Precio)
		totalIndividualUSD += PriceUSD(v.PrecioUSD, v.Precio)
	}

	var spentARS, spentUSD float64
	purchasedList := make([]PurchasedVideoRef, 0, len(purchased))
	for _, v := range purchased {
		spentARS += PriceARS(v.PrecioARS, v.Precio)
		spentUSD += PriceUSD(v.PrecioUSD, v.Precio)
		purchasedList = append(purchasedList, PurchasedVideoRef{
			ID:        v.ID,
			VideoID:   v.VideoID,
			Titulo:    v.Titulo,
			Precio:    v.Precio,
			PrecioARS: v.PrecioARS,
			PrecioUSD: v.PrecioUSD,
		})
	}

	originalARS := PriceARS(module.PrecioARS, module.Precio)
	originalUSD := PriceUSD(module.PrecioUSD, module.Precio)

	discountedARS := max(0, originalARS-spentARS)
	discountedUSD := max(0, originalUSD-spentUSD)

	hasFullAccess := discountedARS == 0
	canPurchaseModule := unpurchasedCount >= 2

	b := Breakdown{
		ModuleID:   module.ModuleID,
		ModuleName: fmt.Sprintf("%s - %s", module.Titulo, module.Subtitulo),

		OriginalPrice:      originalARS,
		DiscountedPrice:    discountedARS,
		TotalSpentOnVideos: spentARS,
		Savings:            totalIndividualARS - originalARS,

		OriginalPriceARS:        originalARS,
		OriginalPriceUSD:        originalUSD,
		DiscountedPriceARS:      discountedARS,
		DiscountedPriceUSD:      discountedUSD,
		TotalIndividualPriceARS: totalIndividualARS,
		TotalIndividualPriceUSD: totalIndividualUSD,
		TotalSpentOnVideosARS:   spentARS,
		TotalSpentOnVideosUSD:   spentUSD,
		SavingsARS:              totalIndividualARS - originalARS,
		SavingsUSD:              totalIndividualUSD - originalUSD,

		VideosInModule:      len(moduleVideos),
		PurchasedVideos:     len(purchased),
		UnpurchasedVideos:   unpurchasedCount,
		PurchasedVideosList: purchasedList,

		HasFullAccess:     hasFullAccess,
		CanPurchaseModule: canPurchaseModule,
	}
	b.Message = message(b)
	return b
}

func message(b Breakdown) string {
	switch {
	case b.HasFullAccess:
		return "Ya tienes acceso completo al módulo por haber comprado todos los videos"
	case !b.CanPurchaseModule && b.UnpurchasedVideos == 1:
		return "Solo queda 1 video sin comprar. Puedes comprarlo individualmente."
	case b.DiscountedPriceARS < b.OriginalPriceARS:
		return fmt.Sprintf("Se aplicó un descuento de $%.0f ARS / $%g USD por videos previamente comprados",
			b.TotalSpentOnVideosARS, b.TotalSpentOnVideosUSD)
	default:
		return "Aún no has comprado ningún video de este módulo"
	}
}
