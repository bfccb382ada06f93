package enrichment

import (
	"context"
	"errors"
	"fmt"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/walletgraph/walletgraph/internal/domain"
	"github.com/walletgraph/walletgraph/internal/logger"
)

// fallbackAvatarTemplate derives an identicon URL from the lowercased address.
// Derivation is pure string formatting so tests can assert exact output.
const fallbackAvatarTemplate = "https://api.dicebear.com/7.x/identicon/svg?seed=%s"

// Source provides the single external call used to resolve a display profile
//
//go:generate mockgen -source=resolver.go -destination=../mocks/enrichment_source.go -package=mocks -mock_names=Source=MockEnrichmentSource
type Source interface {
	GetProfile(ctx context.Context, address string) (*domain.Profile, error)
}

// Resolution is the outcome of resolving one address. A resolution never
// fails: provider errors and missing profiles yield the fallback identity.
type Resolution struct {
	Address  string
	Profile  *domain.Profile
	Fallback bool
}

// Resolver resolves display profiles for wallet addresses, falling back to a
// deterministic placeholder identity when the provider fails or has nothing.
type Resolver struct {
	source Source
	pool   pond.ResultPool[*Resolution]
}

// NewResolver creates a resolver with a bounded fan-out pool
func NewResolver(source Source, poolSize int) *Resolver {
	if poolSize <= 0 {
		poolSize = 8
	}
	return &Resolver{
		source: source,
		pool:   pond.NewResultPool[*Resolution](poolSize),
	}
}

// Resolve resolves one address. ProfileNotFound and provider failures are not
// errors at this layer; both produce the fallback entity.
func (r *Resolver) Resolve(ctx context.Context, address string) *Resolution {
	addr := domain.NormalizeAddress(address)

	profile, err := r.source.GetProfile(ctx, addr)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			logger.WarnCtx(ctx, "profile enrichment failed, using fallback",
				zap.String("address", addr),
				zap.Error(err),
			)
		}
		return &Resolution{Address: addr, Profile: FallbackProfile(addr), Fallback: true}
	}

	// Providers may answer with an empty shell for unknown wallets
	if profile.DisplayName == "" {
		profile.DisplayName = TruncateAddress(addr)
	}
	if profile.AvatarURL == "" {
		profile.AvatarURL = FallbackAvatarURL(addr)
	}
	profile.Address = addr
	return &Resolution{Address: addr, Profile: profile}
}

// ResolveBatch resolves a batch of addresses concurrently. Each address's
// outcome is independent; one failure never blocks the others. The result
// order matches the input order.
func (r *Resolver) ResolveBatch(ctx context.Context, addresses []string) []*Resolution {
	if len(addresses) == 0 {
		return nil
	}

	group := r.pool.NewGroup()
	for _, address := range addresses {
		addr := address
		group.SubmitErr(func() (*Resolution, error) {
			return r.Resolve(ctx, addr), nil
		})
	}

	results, err := group.Wait()
	if err != nil {
		// Tasks never return errors; this is pool shutdown only
		logger.WarnCtx(ctx, "enrichment batch aborted", zap.Error(err))
	}
	return results
}

// Close stops the fan-out pool and waits for in-flight resolutions
func (r *Resolver) Close() {
	r.pool.StopAndWait()
}

// FallbackProfile builds the deterministic placeholder identity for an
// address: truncated-address display name and an identicon avatar seeded by
// the lowercased address. No network dependency.
func FallbackProfile(address string) *domain.Profile {
	addr := domain.NormalizeAddress(address)
	return &domain.Profile{
		Address:     addr,
		DisplayName: TruncateAddress(addr),
		AvatarURL:   FallbackAvatarURL(addr),
	}
}

// FallbackAvatarURL returns the deterministic identicon URL for an address
func FallbackAvatarURL(address string) string {
	return fmt.Sprintf(fallbackAvatarTemplate, domain.NormalizeAddress(address))
}

// TruncateAddress shortens an address to the familiar 0x1234...abcd form
func TruncateAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
