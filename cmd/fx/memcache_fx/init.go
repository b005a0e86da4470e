package memcache_fx

import (
	"go.uber.org/fx"

	mem "mindcaddy/pkg/memcache"
)

var Module = fx.Provide(
	provideResetTokens, provideDenylist, providePendingTiers)

func provideResetTokens() mem.ResetTokenStore {
	return mem.NewResetTokens()
}

func provideDenylist() mem.TokenDenylist {
	return mem.NewDenyList()
}

func providePendingTiers() mem.PendingTierStore {
	return mem.NewPendingTiers()
}
