package services

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/partner"
	"medshop/internal/pkg/errs"
)

// DefaultDistributorSetting names the configuration key of the fallback distributor.
const DefaultDistributorSetting = "DEFAULT_DISTRIBUTOR_EMAIL"

// ErrNoDefaultDistributor is the cause of the ConfigurationError returned
// when neither a regional nor a default distributor can take an order.
var ErrNoDefaultDistributor = errors.New("no approved default distributor")

// DistributorResolver chooses the distributor for an order's delivery region.
//
// Business rules:
//   - only approved distributors serving the normalized region qualify
//   - among several, the oldest application wins, ties broken by email
//   - with no regional match the configured default distributor is used
//   - with no usable default the result is a ConfigurationError
//
// Example usage:
//
//	resolver := services.NewDistributorResolver(cfg.DefaultDistributorEmail)
//	p, err := resolver.Resolve(region, regional, fallback)
//	if errors.Is(err, errs.ErrConfiguration) {
//	    // create the order unassigned and alert customer care
//	}
type DistributorResolver struct {
	defaultEmail string
}

func NewDistributorResolver(defaultEmail string) DistributorResolver {
	return DistributorResolver{defaultEmail: strings.ToLower(strings.TrimSpace(defaultEmail))}
}

// DefaultEmail is the email of the fallback distributor, empty when unset.
func (r DistributorResolver) DefaultEmail() string {
	return r.defaultEmail
}

// Resolve returns the distributor for region. candidates may hold any
// partners; the ones that do not qualify are ignored. fallback is the
// partner registered under DefaultEmail, or nil when it does not exist. An
// empty region goes straight to the fallback.
func (r DistributorResolver) Resolve(region kernel.Region, candidates []*partner.Partner, fallback *partner.Partner) (*partner.Partner, error) {
	if region != "" {
		var matches []*partner.Partner
		for _, p := range candidates {
			if err := p.Validate(); err != nil {
				return nil, err
			}
			if p.IsApprovedDistributor() && p.Serves(region) {
				matches = append(matches, p)
			}
		}
		if len(matches) > 0 {
			slices.SortFunc(matches, func(a, b *partner.Partner) int {
				if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
					return c
				}
				return strings.Compare(a.Email(), b.Email())
			})
			return matches[0], nil
		}
	}

	switch {
	case r.defaultEmail == "":
		return nil, errs.NewConfigurationErrorWithCause(DefaultDistributorSetting, fmt.Errorf("%w: not configured, region %q unserved", ErrNoDefaultDistributor, region))
	case fallback == nil || fallback.Email() != r.defaultEmail:
		return nil, errs.NewConfigurationErrorWithCause(DefaultDistributorSetting, fmt.Errorf("%w: %s is not registered", ErrNoDefaultDistributor, r.defaultEmail))
	case !fallback.IsApprovedDistributor():
		return nil, errs.NewConfigurationErrorWithCause(DefaultDistributorSetting, fmt.Errorf("%w: %s is a %s %s", ErrNoDefaultDistributor, r.defaultEmail, fallback.Status(), fallback.Type()))
	}
	return fallback, nil
}
