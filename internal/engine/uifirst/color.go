package uifirst

import "go.trai.ch/uifirst/internal/core/domain"

// ColorSync resolves the color gamut and HDR state a cached surface is
// rendered with.
type ColorSync struct {
	cfg domain.Config
}

// NewColorSync creates a ColorSync for cfg.
func NewColorSync(cfg domain.Config) *ColorSync {
	return &ColorSync{cfg: cfg}
}

// EffectiveGamut returns the gamut node should be rendered in on screen.
func EffectiveGamut(node *domain.SurfaceNode, screen domain.Screen) domain.ColorGamut {
	if node.ColorGamut == domain.GamutBT2020 {
		return screen.Gamut
	}
	return node.ColorGamut
}

// Sync stamps the screen, HDR and gamut onto sub and reports whether the
// cached surface had to be dropped because its format no longer matches.
func (c *ColorSync) Sync(sub *Subtree, node *domain.SurfaceNode, screen domain.Screen) bool {
	sub.HDRPresent = screen.HDROn

	effective := EffectiveGamut(node, screen)
	changed := sub.TargetGamut != effective
	if !screen.HDROn && !screen.ScRGB && !changed {
		return false
	}

	needFP16 := node.HDRPresent || screen.ScRGB
	if changed && !needFP16 && c.cfg.AdaptiveGamut &&
		sub.TargetGamut.WiderThan(effective) && !screen.GamutAuthoritative {
		effective = sub.TargetGamut
		changed = false
	}

	cleared := false
	if changed && !needFP16 && c.cfg.AdaptiveGamut && sub.Surface != nil {
		sub.Surface = nil
		sub.SurfaceValid = false
		sub.ReuseCount = 0
		cleared = true
	}
	sub.ScreenID = screen.ID
	sub.TargetGamut = effective
	return cleared
}
