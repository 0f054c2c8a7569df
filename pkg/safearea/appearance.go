package safearea

import "github.com/go-drift/safearea/pkg/sdk"

// ChangeSystemBarsIconsAppearance handles the bridge method of the same name.
// It reads the optional isLight argument (default false) and always resolves.
func (p *Plugin) ChangeSystemBarsIconsAppearance(call *Call) {
	p.SetSystemBarsIconsAppearance(call.GetBool("isLight", false))
	call.Resolve(nil)
}

// SetSystemBarsIconsAppearance switches the status and navigation bar icons.
// Light bars get dark icons and dark bars get light icons. It is a no-op when
// the host cannot change bar appearance.
func (p *Plugin) SetSystemBarsIconsAppearance(isLight bool) {
	if p.caps.Appearance == sdk.AppearanceUnsupported {
		p.log.Debug("system bars appearance unsupported", "capabilities", p.caps.String())
		return
	}

	p.runOnUI("safearea.changeSystemBarsIconsAppearance", func() error {
		log := p.barsLog
		log.Debug("setting system bars appearance", "isLight", isLight, "api", p.caps.APILevel)

		if p.caps.Appearance == sdk.AppearanceExplicitColors {
			if err := p.applyExplicitColors(isLight); err != nil {
				return err
			}
			log.Debug("explicit bar colors applied")
			return nil
		}

		win := p.host.Window()
		ctrl, err := win.InsetsController()
		if err != nil {
			return err
		}
		if ctrl == nil {
			return ErrNoInsetsController
		}
		if err := ctrl.SetSystemBarsAppearance(appearanceFor(isLight), AllBars); err != nil {
			return err
		}
		if err := win.RequestApplyInsets(); err != nil {
			return err
		}
		log.Debug("insets controller updated")
		return nil
	})
}

// applyExplicitColors paints opaque bars, then sets icon appearance through the
// controller (when present) and the legacy visibility flags. The first failing
// call aborts the rest.
func (p *Plugin) applyExplicitColors(isLight bool) error {
	win := p.host.Window()
	bars := p.opts.palette.For(isLight)

	if err := win.SetStatusBarColor(bars.StatusBar); err != nil {
		return err
	}
	if err := win.SetNavigationBarColor(bars.NavigationBar); err != nil {
		return err
	}

	ctrl, err := win.InsetsController()
	if err != nil {
		return err
	}
	if ctrl != nil {
		if err := ctrl.SetSystemBarsAppearance(appearanceFor(isLight), AllBars); err != nil {
			return err
		}
	}

	flags, err := win.SystemUIVisibility()
	if err != nil {
		return err
	}
	return win.SetSystemUIVisibility(legacyFlags(flags, isLight))
}

func appearanceFor(isLight bool) Appearance {
	if isLight {
		return AllBars
	}
	return 0
}

func legacyFlags(flags int, isLight bool) int {
	const light = FlagLightStatusBar | FlagLightNavigationBar
	if isLight {
		return flags | light
	}
	return flags &^ light
}
